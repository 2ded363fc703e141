package classify

import (
	"math"

	"dexpath/internal/domain"
	"dexpath/internal/numeric"
)

// RowConfidence scores a row 0-100 from its coarse daily attributes.
// This is intentionally a different, simpler formula than the analyzer's
// confidence: it only sees pulse-row fields and feeds the BUY/WATCH/SKIP
// decision thresholds (70/55).
func RowConfidence(row domain.TokenRow) int {
	marketCap := numeric.Value(row.MarketCapUSD)
	liquidity := numeric.Value(row.LiquidityUSD)
	volume24h := numeric.Value(row.Volume24hUSD)
	change24h := numeric.Value(row.PriceChange24hPct)
	top10 := numeric.NormalizePct(numeric.NonNegative(row.Top10HoldingsPct))
	dev := numeric.NormalizePct(numeric.NonNegative(row.DevHoldingsPct))

	score := 50.0
	if change24h > 0 {
		score += 15
	}
	if volume24h/math.Max(marketCap, 1) > 0.5 {
		score += 10
	}
	if liquidity >= 100_000 {
		score += 10
	}
	if marketCap >= 1_000_000 {
		score += 10
	}
	if numeric.Value(row.SniperCount) > 0 ||
		numeric.Value(row.InsiderCount) > 0 ||
		numeric.Value(row.BundlerCount) > 0 {
		score -= 15
	}
	if top10 >= 25 || dev >= 15 {
		score -= 10
	}

	return int(numeric.Clamp(score, 0, 100))
}
