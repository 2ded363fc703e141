package classify

import (
	"math"

	"dexpath/internal/domain"
	"dexpath/internal/numeric"
)

// ClassifyModeFit picks the trading style a row is best suited for.
// SNIPER is reserved for very young micro-caps that are already moving;
// SCALPER for heavy churn; everything else defaults to SWING.
func ClassifyModeFit(row domain.TokenRow, nowMs int64) domain.TradingMode {
	marketCap := numeric.Value(row.MarketCapUSD)
	liquidity := numeric.Value(row.LiquidityUSD)
	volume24h := numeric.Value(row.Volume24hUSD)
	change24h := numeric.Value(row.PriceChange24hPct)
	absChange := math.Abs(change24h)
	volumeToMC := volume24h / math.Max(marketCap, 1)

	age, ageKnown := ageMinutes(row, nowMs)
	if marketCap > 0 && marketCap < 50_000 &&
		ageKnown && age <= 90 &&
		change24h > 3 && volumeToMC > 0.5 {
		return domain.ModeSniper
	}

	if (volume24h >= 750_000 || volumeToMC > 2) && absChange >= 15 {
		return domain.ModeScalper
	}
	if marketCap > 0 && marketCap < 200_000 && absChange >= 20 {
		return domain.ModeScalper
	}

	if marketCap >= 1_000_000 && liquidity >= 50_000 && absChange <= 10 && volume24h >= 100_000 {
		return domain.ModeSwing
	}

	return domain.ModeSwing
}

// ageMinutes derives the token age from CreatedAtMs, falling back to
// UpdatedAtMs. The second return is false when neither timestamp is known.
func ageMinutes(row domain.TokenRow, nowMs int64) (float64, bool) {
	ref := row.CreatedAtMs
	if ref == 0 {
		ref = row.UpdatedAtMs
	}
	if ref == 0 || nowMs < ref {
		return 0, false
	}
	return float64(nowMs-ref) / 60_000, true
}
