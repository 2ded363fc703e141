// Package reporting renders scan reports over the stored token assessments.
package reporting

import (
	"time"

	"dexpath/internal/domain"
)

// Report is one scan report over the current assessment set.
type Report struct {
	GeneratedAt time.Time
	TokenCount  int

	Summary ScanSummary

	// Rows sorted by confidence DESC, then mint for determinism.
	Rows []TokenReportRow
}

// ScanSummary aggregates the assessment set.
type ScanSummary struct {
	BuyCount   int
	WatchCount int
	SkipCount  int

	AcceleratingCount int
	HighRiskCount     int
	TrustRatedCount   int
}

// TokenReportRow is one token line of the report.
type TokenReportRow struct {
	Mint             string
	Symbol           string
	ConfidenceScore  int
	Momentum         domain.MomentumState
	Risk             domain.RiskLevel
	ModeFit          domain.TradingMode
	Action           domain.TradeAction
	SpikeProbability float64
	SpikeBand        string

	// Trust fields are empty when no rugcheck report was scored.
	TrustScore *int
	TrustLabel domain.TrustLabel

	Verdict string
}
