package domain

// ConfidenceLabel is the qualitative tier for an analyzer confidence score.
type ConfidenceLabel string

const (
	ConfidenceAvoid          ConfidenceLabel = "Avoid"
	ConfidenceRisky          ConfidenceLabel = "Risky"
	ConfidenceTradeable      ConfidenceLabel = "Tradeable"
	ConfidenceStrong         ConfidenceLabel = "Strong"
	ConfidenceHighConviction ConfidenceLabel = "High Conviction"
)

// TradingMode is the analyzer's recommended way to trade a token.
type TradingMode string

const (
	ModeSniper  TradingMode = "SNIPER"
	ModeScalper TradingMode = "SCALPER"
	ModeSwing   TradingMode = "SWING"
	ModeWait    TradingMode = "WAIT"
)

// TokenMetrics is the output of the momentum & liquidity analyzer.
// All derived scores are computed from a single TokenFacts snapshot;
// the record has no identity and is recomputed on every refresh tick.
type TokenMetrics struct {
	// Derived scores
	MomentumScore      float64
	BuySellRatio       float64
	TradeBias          float64
	LiquidityRatio     float64
	BondingProgress    float64
	ConcentrationScore float64
	OrganicVolumeRatio float64
	SpikePosition      float64
	TrendStrength      float64

	// Rolled-up confidence
	ConfidenceScore int // 0-100
	ConfidenceLabel ConfidenceLabel

	// Recommendation
	Mode TradingMode

	// Summary holds at most 4 deterministic human-readable sentences,
	// appended in a fixed condition order with the mode recommendation last.
	Summary []string
}
