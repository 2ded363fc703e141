package domain

// SummaryMode is the 3-way trade mode of the deterministic token summary.
type SummaryMode string

const (
	SummarySniper  SummaryMode = "SNIPER"
	SummaryScalper SummaryMode = "SCALPER"
	SummaryNoTrade SummaryMode = "NO_TRADE"
)

// ConfidenceTier is the 3-way confidence bucket of the token summary.
type ConfidenceTier string

const (
	TierHigh   ConfidenceTier = "HIGH"
	TierMedium ConfidenceTier = "MEDIUM"
	TierLow    ConfidenceTier = "LOW"
)

// TokenSummary is a short rule-engine verdict over a small attribute subset.
// It is independent of TokenMetrics and uses its own thresholds.
type TokenSummary struct {
	Verdict    string
	Momentum   []string // momentum bullet list, insertion order
	Risks      []string // risk bullet list, insertion order
	Mode       SummaryMode
	Confidence ConfidenceTier
}
