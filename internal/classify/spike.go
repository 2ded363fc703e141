package classify

import (
	"math"

	"dexpath/internal/domain"
	"dexpath/internal/numeric"
)

// Spike proxy component weights. The weighted sum lives in [0,1] before the
// buy/sell bonus and the x100 scaling.
const (
	spikeWeightMomentum  = 0.35
	spikeWeightVolume    = 0.25
	spikeWeightLiquidity = 0.20
	spikeWeightMCBias    = 0.10
	spikeWeightRecency   = 0.10
	spikeBuyBonusMax     = 0.15
)

// SpikeProbability estimates short-term spike likelihood on a 0-100 scale.
// This is a heuristic proxy, not a calibrated probability.
func SpikeProbability(row domain.TokenRow, nowMs int64) float64 {
	sum := spikeWeightMomentum*priceMomentum(row) +
		spikeWeightVolume*volumeAcceleration(row) +
		spikeWeightLiquidity*numeric.Clamp01(liquidityRatio(row)) +
		spikeWeightMCBias*marketCapBias(numeric.Value(row.MarketCapUSD)) +
		spikeWeightRecency*recencyFactor(row, nowMs) +
		buySellBonus(row)

	return numeric.Clamp(sum*100, 0, 100)
}

// SpikeBand is the interpretation label for a spike probability.
func SpikeBand(p float64) string {
	switch {
	case p < 40:
		return "Random/dead"
	case p < 60:
		return "Speculative"
	case p <= 80:
		return "High-probability momentum"
	default:
		return "Overheated/dump risk"
	}
}

// priceMomentum maps the short-term change into [0,1]. The 1-minute change
// is scaled by 10, the 5-minute fallback by 30; when a 15-minute change is
// also present the short component blends with it 30/70.
func priceMomentum(row domain.TokenRow) float64 {
	var short float64
	switch {
	case row.PriceChange1mPct != nil:
		short = *row.PriceChange1mPct / 10
	case row.PriceChange5mPct != nil:
		short = *row.PriceChange5mPct / 30
	default:
		return 0
	}
	short = numeric.Clamp01(short)

	if row.PriceChange15mPct != nil {
		mid := numeric.Clamp01(*row.PriceChange15mPct / 30)
		return numeric.Clamp01(short*0.3 + mid*0.7)
	}
	return short
}

// volumeAcceleration compares the 1h volume run-rate against the 24h total:
// a rate above 1x means the last hour outpaces the daily average. Neutral 0.5
// when the windows are not both known.
func volumeAcceleration(row domain.TokenRow) float64 {
	if row.Volume1hUSD == nil || row.Volume24hUSD == nil {
		return 0.5
	}
	volume24h := numeric.NonNegative(row.Volume24hUSD)
	if volume24h == 0 {
		return 0.5
	}
	rate := numeric.NonNegative(row.Volume1hUSD) * 24 / volume24h
	return numeric.Clamp01(rate / 2)
}

func liquidityRatio(row domain.TokenRow) float64 {
	return numeric.NonNegative(row.LiquidityUSD) / math.Max(numeric.Value(row.MarketCapUSD), 1)
}

func marketCapBias(marketCap float64) float64 {
	switch {
	case marketCap <= 0:
		return 0.6
	case marketCap <= 1_000_000:
		return 1.0
	case marketCap <= 5_000_000:
		return 0.8
	case marketCap <= 20_000_000:
		return 0.6
	default:
		return 0.4
	}
}

func recencyFactor(row domain.TokenRow, nowMs int64) float64 {
	age, known := ageMinutes(row, nowMs)
	if !known {
		return 0.7
	}
	switch {
	case age < 60:
		return 1.0
	case age < 360:
		return 0.8
	default:
		return 0.6
	}
}

// buySellBonus adds up to +0.15 when 24h buys clearly outnumber sells.
func buySellBonus(row domain.TokenRow) float64 {
	buys := numeric.NonNegative(row.Buys24h)
	sells := numeric.NonNegative(row.Sells24h)
	if buys+sells == 0 {
		return 0
	}
	ratio := buys / math.Max(sells, 1)
	return numeric.Clamp01((ratio-1)/2) * spikeBuyBonusMax
}
