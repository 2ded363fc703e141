package domain

// TokenFacts holds the normalized numeric attributes of a single token
// snapshot, extracted from an upstream token-details payload. Every field is
// optional: nil means the upstream payload did not carry the attribute in any
// of its known spellings. Consumers decide how to treat a missing value
// (zero-default in the analyzer and row classifiers, rule-does-not-fire in
// the summary generator).
type TokenFacts struct {
	// Prices (USD)
	PriceUSD    *float64
	ATHPriceUSD *float64
	ATLPriceUSD *float64

	// Short-window percentage price changes
	PriceChange1mPct *float64
	PriceChange5mPct *float64

	// 5-minute volume split (USD)
	Volume5mUSD        *float64
	VolumeBuy5mUSD     *float64
	VolumeSell5mUSD    *float64
	OrganicVolume5mUSD *float64

	// 5-minute trade counts
	Buys5m  *float64
	Sells5m *float64

	// Liquidity and valuation (USD)
	LiquidityUSD    *float64
	LiquidityMaxUSD *float64
	MarketCapUSD    *float64

	// Holder distribution
	HoldersCount       *float64
	Top10HoldingsPct   *float64 // percent or 0-1 ratio, see numeric.NormalizeRatio
	DevHoldingsPct     *float64
	SnipersHoldingsPct *float64

	// Provider trending scores per window
	TrendingScore1m *float64
	TrendingScore5m *float64
	TrendingScore4h *float64
}
