// Package summarize turns a small attribute subset into a short, fully
// deterministic token summary: a verdict line, momentum and risk bullets, a
// 3-way trade mode and a confidence tier. Unlike the analyzer and the row
// classifiers, a missing field here means the rule simply does not fire;
// absence never counts as zero.
package summarize

import "dexpath/internal/domain"

// Input is the attribute subset the summary rules consume. All fields are
// optional; nil disables every rule that reads the field.
type Input struct {
	PriceChange1mPct *float64
	PriceChange5mPct *float64
	Volume1mUSD      *float64
	Volume5mUSD      *float64
	LiquidityUSD     *float64
	MarketCapUSD     *float64
	SpikeProbability *float64
	ConfidenceScore  *float64
	TokenAgeMinutes  *float64
}

// Bullet texts. Fixed strings: the UI keys styling off them.
const (
	bulletAcceleration = "Price acceleration in first 5 minutes"
	bulletVolume       = "Volume expanding confirms move"
	bulletSpike        = "High early spike probability"
	bulletThin         = "Thin liquidity increases dump risk"
	bulletOverheated   = "Overheated spike zone"
	bulletNewToken     = "Extremely new token"
)

// Verdicts keyed by mode.
const (
	verdictSniper  = "Early momentum detected. Candidate for a fast sniper entry."
	verdictScalper = "Constructive momentum. Suitable for short scalps with tight exits."
	verdictNoTrade = "No actionable setup. Stay out."
)

// Generate builds the TokenSummary for one input snapshot.
func Generate(in Input) domain.TokenSummary {
	momentum := momentumBullets(in)
	risks := riskBullets(in)
	mode := selectMode(in, len(momentum))

	return domain.TokenSummary{
		Verdict:    verdictFor(mode),
		Momentum:   momentum,
		Risks:      risks,
		Mode:       mode,
		Confidence: confidenceTier(in),
	}
}

func momentumBullets(in Input) []string {
	var bullets []string
	if in.PriceChange1mPct != nil && in.PriceChange5mPct != nil &&
		*in.PriceChange1mPct > 0 && *in.PriceChange5mPct > *in.PriceChange1mPct {
		bullets = append(bullets, bulletAcceleration)
	}
	if in.Volume1mUSD != nil && in.Volume5mUSD != nil &&
		*in.Volume1mUSD > 0 && *in.Volume5mUSD >= 1.5**in.Volume1mUSD {
		bullets = append(bullets, bulletVolume)
	}
	if in.SpikeProbability != nil && *in.SpikeProbability >= 60 {
		bullets = append(bullets, bulletSpike)
	}
	return bullets
}

func riskBullets(in Input) []string {
	var bullets []string
	if in.LiquidityUSD != nil && in.MarketCapUSD != nil && *in.MarketCapUSD > 0 &&
		*in.LiquidityUSD / *in.MarketCapUSD < 0.05 {
		bullets = append(bullets, bulletThin)
	}
	if in.SpikeProbability != nil && *in.SpikeProbability > 80 {
		bullets = append(bullets, bulletOverheated)
	}
	if in.TokenAgeMinutes != nil && *in.TokenAgeMinutes < 2 {
		bullets = append(bullets, bulletNewToken)
	}
	return bullets
}

func selectMode(in Input, momentumBullets int) domain.SummaryMode {
	spike := 0.0
	if in.SpikeProbability != nil {
		spike = *in.SpikeProbability
	}
	switch {
	case spike >= 60 && momentumBullets >= 2:
		return domain.SummarySniper
	case spike >= 40 && momentumBullets >= 1:
		return domain.SummaryScalper
	default:
		return domain.SummaryNoTrade
	}
}

func confidenceTier(in Input) domain.ConfidenceTier {
	score := 0.0
	if in.ConfidenceScore != nil {
		score = *in.ConfidenceScore
	}
	switch {
	case score >= 70:
		return domain.TierHigh
	case score >= 40:
		return domain.TierMedium
	default:
		return domain.TierLow
	}
}

func verdictFor(mode domain.SummaryMode) string {
	switch mode {
	case domain.SummarySniper:
		return verdictSniper
	case domain.SummaryScalper:
		return verdictScalper
	default:
		return verdictNoTrade
	}
}
