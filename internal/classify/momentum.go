package classify

import (
	"dexpath/internal/domain"
	"dexpath/internal/numeric"
)

// Momentum thresholds. The 1-minute window reacts on much smaller moves than
// the 5-minute fallback; the divisor scales the relative 1h comparison to the
// window actually used.
const (
	accel1mPct = 1.2
	cool1mPct  = -0.8
	accel5mPct = 8.0
	cool5mPct  = -5.0
	divisor1m  = 60.0
	divisor5m  = 12.0
)

// ClassifyMomentum buckets a row into ACCELERATING / STABLE / COOLING.
// The 1-minute change is preferred; the 5-minute change is the fallback with
// proportionally wider thresholds. A row whose short, 1h and 24h changes are
// all positive and whose short change outruns its per-window share of the 1h
// move also counts as accelerating.
func ClassifyMomentum(row domain.TokenRow) domain.MomentumState {
	var short, accelAt, coolAt, divisor float64
	switch {
	case row.PriceChange1mPct != nil:
		short, accelAt, coolAt, divisor = *row.PriceChange1mPct, accel1mPct, cool1mPct, divisor1m
	case row.PriceChange5mPct != nil:
		short, accelAt, coolAt, divisor = *row.PriceChange5mPct, accel5mPct, cool5mPct, divisor5m
	default:
		return domain.MomentumStable
	}

	if short >= accelAt {
		return domain.MomentumAccelerating
	}
	if short <= coolAt {
		return domain.MomentumCooling
	}

	change1h := numeric.Value(row.PriceChange1hPct)
	change24h := numeric.Value(row.PriceChange24hPct)
	if short > 0 && change1h > 0 && change24h > 0 && short > change1h/divisor {
		return domain.MomentumAccelerating
	}

	return domain.MomentumStable
}
