package classify

import (
	"math"

	"dexpath/internal/domain"
	"dexpath/internal/numeric"
)

// ClassifyRisk buckets a row into LOW / MEDIUM / HIGH structural risk.
// HIGH conditions are evaluated first as an ordered cascade; any single hit
// decides. Missing numeric fields default to zero, which means a row without
// a market cap or liquidity figure is treated as high risk.
func ClassifyRisk(row domain.TokenRow) domain.RiskLevel {
	change24h := math.Abs(numeric.Value(row.PriceChange24hPct))
	marketCap := numeric.Value(row.MarketCapUSD)
	liquidity := numeric.Value(row.LiquidityUSD)
	top10 := numeric.NormalizePct(numeric.NonNegative(row.Top10HoldingsPct))
	dev := numeric.NormalizePct(numeric.NonNegative(row.DevHoldingsPct))

	switch {
	case numeric.Value(row.SniperCount) > 0,
		numeric.Value(row.InsiderCount) > 0,
		numeric.Value(row.BundlerCount) > 0:
		return domain.RiskHigh
	case top10 >= 25:
		return domain.RiskHigh
	case dev >= 15:
		return domain.RiskHigh
	case marketCap < 100_000:
		return domain.RiskHigh
	case liquidity < 50_000:
		return domain.RiskHigh
	case change24h >= 50:
		return domain.RiskHigh
	}

	if marketCap < 1_000_000 || change24h >= 20 {
		return domain.RiskMedium
	}

	return domain.RiskLow
}
