package domain

// MomentumState classifies a token row's short-term momentum.
type MomentumState string

const (
	MomentumAccelerating MomentumState = "ACCELERATING"
	MomentumStable       MomentumState = "STABLE"
	MomentumCooling      MomentumState = "COOLING"
)

// RiskLevel classifies a token row's structural risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// TradeAction is the row-level trade decision.
type TradeAction string

const (
	ActionBuy   TradeAction = "BUY"
	ActionWatch TradeAction = "WATCH"
	ActionSkip  TradeAction = "SKIP"
)

// TokenRow is one entry of the pulse/list payload: the basic market row for
// a token as delivered by the upstream pool scanner. Mint is the unique
// identity key across all token collections. Optional numeric attributes are
// pointers for the same reason as in TokenFacts.
type TokenRow struct {
	Mint    string
	Name    string
	Symbol  string
	LogoURI string

	PriceUSD *float64

	// Time-windowed percentage changes
	PriceChange1mPct  *float64
	PriceChange5mPct  *float64
	PriceChange15mPct *float64
	PriceChange1hPct  *float64
	PriceChange24hPct *float64

	MarketCapUSD *float64
	LiquidityUSD *float64
	Volume1hUSD  *float64
	Volume24hUSD *float64

	Buys24h  *float64
	Sells24h *float64

	// Holder red flags
	SniperCount      *float64
	InsiderCount     *float64
	BundlerCount     *float64
	Top10HoldingsPct *float64
	DevHoldingsPct   *float64

	// Unix ms timestamps; 0 means unknown
	CreatedAtMs int64
	UpdatedAtMs int64

	Signals []string
}

// RowAssessment extends a TokenRow with the row classification outputs.
type RowAssessment struct {
	ConfidenceScore  int // 0-100, row heuristic (distinct from analyzer confidence)
	Momentum         MomentumState
	Risk             RiskLevel
	ModeFit          TradingMode
	Action           TradeAction
	SpikeProbability float64 // 0-100
	SpikeBand        string
}

// TokenAssessment is the full scored record for one token snapshot: the raw
// row plus every engine output computed from it. Stored keyed by Mint and
// replaced on every refresh.
type TokenAssessment struct {
	Row        TokenRow
	Assessment RowAssessment
	Metrics    *TokenMetrics // nil when no token-details payload was available
	Summary    *TokenSummary // nil when no summary inputs were available
	Trust      *TrustScore   // nil when no rugcheck report was available
	ObservedAt int64         // Unix ms
}
