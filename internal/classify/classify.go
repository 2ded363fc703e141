// Package classify implements the per-row token classifiers used for the
// live table: momentum state, risk level, trade-mode fit, trade decision and
// a spike-probability proxy. The heuristics here are deliberately simpler
// than (and independent from) the analyzer package; the two score sets feed
// different surfaces and are tuned separately.
package classify

import "dexpath/internal/domain"

// Assess runs every row classifier against one token row. nowMs anchors the
// age-dependent classifiers (trade-mode fit, spike recency).
func Assess(row domain.TokenRow, nowMs int64) domain.RowAssessment {
	confidence := RowConfidence(row)
	momentum := ClassifyMomentum(row)
	risk := ClassifyRisk(row)
	spike := SpikeProbability(row, nowMs)

	return domain.RowAssessment{
		ConfidenceScore:  confidence,
		Momentum:         momentum,
		Risk:             risk,
		ModeFit:          ClassifyModeFit(row, nowMs),
		Action:           Decide(confidence, risk, momentum),
		SpikeProbability: spike,
		SpikeBand:        SpikeBand(spike),
	}
}

// Decide maps confidence, risk and momentum onto the trade decision.
func Decide(confidence int, risk domain.RiskLevel, momentum domain.MomentumState) domain.TradeAction {
	switch {
	case confidence >= 70 && risk != domain.RiskHigh && momentum == domain.MomentumAccelerating:
		return domain.ActionBuy
	case confidence >= 55 && risk != domain.RiskHigh:
		return domain.ActionWatch
	default:
		return domain.ActionSkip
	}
}
