// Package analyzer computes the momentum & liquidity profile of a token
// snapshot: nine derived scores rolled into a 0-100 confidence score, a
// qualitative label, a recommended trading mode and a short deterministic
// summary. Analyze is a total function: it never fails, and every missing
// input degrades to a neutral default.
package analyzer

import (
	"fmt"
	"math"

	"dexpath/internal/domain"
	"dexpath/internal/numeric"
)

// Confidence component weights. Momentum dominates, trend is a tiebreaker.
const (
	weightMomentum      = 0.25
	weightBuySell       = 0.20
	weightOrganic       = 0.15
	weightLiquidity     = 0.15
	weightConcentration = 0.15
	weightTrend         = 0.10
)

// Mode selection thresholds. Branch order is significant: SNIPER is checked
// before SCALPER, SCALPER before SWING.
const (
	sniperMomentumMin  = 20.0
	sniperLiquidityMax = 5000.0
	scalperMomentumMin = 10.0
	scalperOrganicMin  = 0.4
	swingTrendMin      = 20.0
	swingHoldersMin    = 100.0
)

// Analyze derives TokenMetrics from a TokenFacts snapshot.
func Analyze(facts domain.TokenFacts) domain.TokenMetrics {
	priceChange1m := numeric.Value(facts.PriceChange1mPct)
	priceChange5m := numeric.Value(facts.PriceChange5mPct)
	volume5m := numeric.NonNegative(facts.Volume5mUSD)
	volumeBuy := numeric.NonNegative(facts.VolumeBuy5mUSD)
	volumeSell := numeric.NonNegative(facts.VolumeSell5mUSD)
	buys := numeric.NonNegative(facts.Buys5m)
	sells := numeric.NonNegative(facts.Sells5m)
	liquidity := numeric.NonNegative(facts.LiquidityUSD)
	liquidityMax := numeric.NonNegative(facts.LiquidityMaxUSD)
	marketCap := numeric.NonNegative(facts.MarketCapUSD)
	holders := numeric.NonNegative(facts.HoldersCount)
	price := numeric.NonNegative(facts.PriceUSD)
	ath := numeric.NonNegative(facts.ATHPriceUSD)
	atl := numeric.NonNegative(facts.ATLPriceUSD)

	momentum := (priceChange1m*0.4 + priceChange5m*0.6) * math.Log10(volume5m+1)
	buySellRatio := volumeBuy / math.Max(volumeSell, 1)
	tradeBias := buys / math.Max(sells, 1)
	liquidityRatio := liquidity / math.Max(marketCap, 1)
	bondingProgress := liquidity / math.Max(liquidityMax, 1)

	concentration := numeric.NormalizeRatio(numeric.NonNegative(facts.Top10HoldingsPct)) +
		numeric.NormalizeRatio(numeric.NonNegative(facts.DevHoldingsPct)) +
		numeric.NormalizeRatio(numeric.NonNegative(facts.SnipersHoldingsPct))

	// A payload without an organic/total volume split carries no wash-trading
	// signal; that absence is neutral, not damning, so the ratio defaults to
	// fully organic rather than to zero.
	organicRatio := 1.0
	if facts.OrganicVolume5mUSD != nil {
		organicRatio = numeric.NonNegative(facts.OrganicVolume5mUSD) / math.Max(volume5m, 1)
	} else if volume5m == 0 {
		organicRatio = 0
	}

	spikePosition := (price - atl) / math.Max(ath-atl, 1e-9)

	trendStrength := numeric.Value(facts.TrendingScore1m)*0.5 +
		numeric.Value(facts.TrendingScore5m)*0.3 +
		numeric.Value(facts.TrendingScore4h)*0.2

	confidence01 := numeric.Norm(momentum, 0, 50)*weightMomentum +
		numeric.Norm(buySellRatio, 0, 3)*weightBuySell +
		numeric.Norm(organicRatio, 0, 1)*weightOrganic +
		numeric.Norm(liquidityRatio, 0, 1)*weightLiquidity +
		numeric.Norm(1-concentration, 0, 1)*weightConcentration +
		numeric.Norm(trendStrength, 0, 50)*weightTrend
	confidence := int(math.Round(numeric.Clamp(confidence01*100, 0, 100)))

	mode := selectMode(momentum, liquidity, organicRatio, trendStrength, holders)

	metrics := domain.TokenMetrics{
		MomentumScore:      momentum,
		BuySellRatio:       buySellRatio,
		TradeBias:          tradeBias,
		LiquidityRatio:     liquidityRatio,
		BondingProgress:    bondingProgress,
		ConcentrationScore: concentration,
		OrganicVolumeRatio: organicRatio,
		SpikePosition:      spikePosition,
		TrendStrength:      trendStrength,
		ConfidenceScore:    confidence,
		ConfidenceLabel:    LabelFor(confidence),
		Mode:               mode,
	}
	metrics.Summary = buildSummary(facts, metrics)
	return metrics
}

// LabelFor maps a 0-100 confidence score onto its qualitative tier.
// Boundaries are strict: 29 is still Avoid, 30 is Risky.
func LabelFor(score int) domain.ConfidenceLabel {
	switch {
	case score < 30:
		return domain.ConfidenceAvoid
	case score < 50:
		return domain.ConfidenceRisky
	case score < 70:
		return domain.ConfidenceTradeable
	case score < 85:
		return domain.ConfidenceStrong
	default:
		return domain.ConfidenceHighConviction
	}
}

func selectMode(momentum, liquidity, organicRatio, trend, holders float64) domain.TradingMode {
	switch {
	case momentum > sniperMomentumMin && liquidity < sniperLiquidityMax:
		return domain.ModeSniper
	case momentum > scalperMomentumMin && organicRatio > scalperOrganicMin:
		return domain.ModeScalper
	case trend > swingTrendMin && holders > swingHoldersMin:
		return domain.ModeSwing
	default:
		return domain.ModeWait
	}
}

// buildSummary appends one sentence per firing condition in a fixed order and
// truncates to 4 entries. The mode recommendation is always the last entry.
func buildSummary(facts domain.TokenFacts, m domain.TokenMetrics) []string {
	summary := make([]string, 0, 5)

	if m.MomentumScore > 20 {
		summary = append(summary, "Strong short-term momentum backed by volume.")
	} else if m.MomentumScore < -10 {
		summary = append(summary, "Negative short-term momentum, price is bleeding.")
	}

	hasFlow := numeric.NonNegative(facts.VolumeBuy5mUSD) > 0 ||
		numeric.NonNegative(facts.VolumeSell5mUSD) > 0 ||
		numeric.NonNegative(facts.Buys5m) > 0 ||
		numeric.NonNegative(facts.Sells5m) > 0
	if hasFlow {
		if m.BuySellRatio >= 1.25 || m.TradeBias >= 1.25 {
			summary = append(summary, "Buy pressure leads the tape.")
		} else if m.BuySellRatio <= 0.8 || m.TradeBias <= 0.8 {
			summary = append(summary, "Sell pressure leads the tape.")
		}
	}

	liquidity := numeric.NonNegative(facts.LiquidityUSD)
	marketCap := numeric.NonNegative(facts.MarketCapUSD)
	if liquidity > 0 && marketCap > 0 && m.LiquidityRatio < 0.02 {
		summary = append(summary, "Liquidity is thin relative to market cap.")
	} else if m.LiquidityRatio > 0.1 {
		summary = append(summary, "Liquidity is strong relative to market cap.")
	}

	ath := numeric.NonNegative(facts.ATHPriceUSD)
	atl := numeric.NonNegative(facts.ATLPriceUSD)
	if ath > 0 && atl > 0 && ath > atl && m.SpikePosition >= 0.6 && m.SpikePosition <= 0.8 {
		pct := int(math.Round(m.SpikePosition * 100))
		summary = append(summary, fmt.Sprintf("Price is at %d%% of the ATH-ATL range.", pct))
	}

	summary = append(summary, fmt.Sprintf("Recommended mode: %s.", m.Mode))

	if len(summary) > 4 {
		summary = summary[:4]
	}
	return summary
}
