package domain

// RugcheckReport mirrors the shape of an upstream rugcheck report payload.
// Pointer fields distinguish "explicitly null/zero" from "absent"; absent
// fields never contribute to the trust score.
type RugcheckReport struct {
	MintAuthority   *string       `json:"mintAuthority"`
	FreezeAuthority *string       `json:"freezeAuthority"`
	TokenMeta       *TokenMeta    `json:"tokenMeta"`
	TransferFee     *TransferFee  `json:"transferFee"`
	Markets         []Market      `json:"markets"`
	TotalLiquidity  float64       `json:"totalMarketLiquidity"`
	TotalLPProvider int           `json:"totalLPProviders"`
	TotalHolders    int           `json:"totalHolders"`
	TopHolders      []TopHolder   `json:"topHolders"`
	CreatorBalance  float64       `json:"creatorBalance"`
	GraphInsiders   *int          `json:"graphInsidersDetected"`
	Risks           []RiskFlag    `json:"risks"`
	ScoreNormalised *float64      `json:"score_normalised"`
	Launchpad       *LaunchpadRef `json:"launchpad"`
}

// TokenMeta carries on-chain metadata flags.
type TokenMeta struct {
	Mutable bool `json:"mutable"`
}

// TransferFee carries the token-2022 transfer fee configuration.
type TransferFee struct {
	Pct float64 `json:"pct"`
}

// Market is one liquidity market of the token.
type Market struct {
	LP *LPInfo `json:"lp"`
}

// LPInfo carries LP lock information for a market.
type LPInfo struct {
	LPLockedPct float64 `json:"lpLockedPct"`
}

// TopHolder is one entry of the top-holder list.
type TopHolder struct {
	Pct float64 `json:"pct"`
}

// RiskFlag is one upstream risk annotation.
type RiskFlag struct {
	Name  string `json:"name"`
	Level string `json:"level"` // "warn" or "danger"
}

// LaunchpadRef names the launchpad the token originated from.
type LaunchpadRef struct {
	Platform string `json:"platform"`
}

// TrustLabel is the qualitative tier for a rugcheck trust score.
type TrustLabel string

const (
	TrustVeryDangerous TrustLabel = "Very Dangerous"
	TrustRisky         TrustLabel = "Risky"
	TrustModerate      TrustLabel = "Moderate"
	TrustSafe          TrustLabel = "Safe"
	TrustVerySafe      TrustLabel = "Very Safe"
)

// TrustBreakdown holds the five capped category sub-scores.
// The sub-scores always sum to the total score.
type TrustBreakdown struct {
	Contract  int // 0-25
	Liquidity int // 0-25
	Holders   int // 0-20
	Creator   int // 0-15
	Market    int // 0-15
}

// TrustScore is the 100-point weighted checklist result for a rugcheck report.
type TrustScore struct {
	Score     int // 0-100
	Label     TrustLabel
	Breakdown TrustBreakdown
}
