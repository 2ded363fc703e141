package domain

// ScorePoint is one historical scoring observation for a token. Assessments
// are replaced in place per mint; score points are append-only and keep the
// trail of how a token's scores evolved.
type ScorePoint struct {
	Mint             string
	TimestampMs      int64
	ConfidenceScore  int     // row confidence, 0-100
	SpikeProbability float64 // 0-100
	Momentum         MomentumState
	Risk             RiskLevel
	Action           TradeAction
}
