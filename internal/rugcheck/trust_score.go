// Package rugcheck scores a rugcheck report on a 100-point weighted
// checklist: contract safety (25), liquidity safety (25), holder
// distribution (20), creator risk (15) and market risk flags (15).
// Each category is independently capped and the caps sum to 100; a report
// passing every check scores exactly 100. Missing report fields never
// contribute: the corresponding checks simply do not fire.
package rugcheck

import (
	"math"

	"dexpath/internal/domain"
	"dexpath/internal/numeric"
)

// Category caps.
const (
	capContract  = 25
	capLiquidity = 25
	capHolders   = 20
	capCreator   = 15
	capMarket    = 15
)

// TrustScore computes the weighted checklist for a rugcheck report.
func TrustScore(report *domain.RugcheckReport) domain.TrustScore {
	if report == nil {
		report = &domain.RugcheckReport{}
	}

	breakdown := domain.TrustBreakdown{
		Contract:  contractScore(report),
		Liquidity: liquidityScore(report),
		Holders:   holdersScore(report),
		Creator:   creatorScore(report),
		Market:    marketScore(report),
	}

	total := breakdown.Contract + breakdown.Liquidity + breakdown.Holders +
		breakdown.Creator + breakdown.Market
	score := int(math.Round(numeric.Clamp(float64(total), 0, 100)))

	return domain.TrustScore{
		Score:     score,
		Label:     LabelFor(score),
		Breakdown: breakdown,
	}
}

// LabelFor maps a trust score onto its 5-tier label. Ties resolve downward:
// exactly 25 is still Very Dangerous, exactly 85 is still Safe.
func LabelFor(score int) domain.TrustLabel {
	switch {
	case score <= 25:
		return domain.TrustVeryDangerous
	case score <= 50:
		return domain.TrustRisky
	case score <= 70:
		return domain.TrustModerate
	case score <= 85:
		return domain.TrustSafe
	default:
		return domain.TrustVerySafe
	}
}

// contractScore: revoked authorities and immutable metadata.
func contractScore(r *domain.RugcheckReport) int {
	score := 0
	if r.MintAuthority == nil {
		score += 8
	}
	if r.FreezeAuthority == nil {
		score += 8
	}
	if r.TokenMeta != nil && !r.TokenMeta.Mutable {
		score += 5
	}
	if r.TransferFee != nil && r.TransferFee.Pct == 0 {
		score += 4
	}
	return clampInt(score, 0, capContract)
}

// liquidityScore: LP lock percentage, pooled liquidity depth and provider
// spread. A near-empty provider set is penalized below zero before clamping.
func liquidityScore(r *domain.RugcheckReport) int {
	score := 0

	lpLocked := 0.0
	for _, m := range r.Markets {
		if m.LP != nil && m.LP.LPLockedPct > lpLocked {
			lpLocked = m.LP.LPLockedPct
		}
	}
	switch {
	case lpLocked >= 95:
		score += 12
	case lpLocked >= 80:
		score += 8
	case lpLocked >= 50:
		score += 4
	}

	switch {
	case r.TotalLiquidity >= 500_000:
		score += 8
	case r.TotalLiquidity >= 150_000:
		score += 6
	case r.TotalLiquidity >= 50_000:
		score += 4
	case r.TotalLiquidity >= 20_000:
		score += 2
	}

	switch {
	case r.TotalLPProvider >= 50:
		score += 5
	case r.TotalLPProvider >= 20:
		score += 3
	case r.TotalLPProvider >= 5:
		score += 1
	default:
		score -= 5
	}

	return clampInt(score, 0, capLiquidity)
}

// holdersScore: single-whale exposure, top-10 concentration and breadth.
func holdersScore(r *domain.RugcheckReport) int {
	score := 0

	if len(r.TopHolders) > 0 {
		top := r.TopHolders[0].Pct
		switch {
		case top < 2:
			score += 8
		case top < 5:
			score += 5
		case top < 10:
			score += 2
		}

		top10 := 0.0
		for i, h := range r.TopHolders {
			if i >= 10 {
				break
			}
			top10 += h.Pct
		}
		switch {
		case top10 < 15:
			score += 6
		case top10 < 25:
			score += 4
		case top10 < 40:
			score += 2
		}
	}

	switch {
	case r.TotalHolders >= 10_000:
		score += 6
	case r.TotalHolders >= 5_000:
		score += 4
	case r.TotalHolders >= 1_000:
		score += 2
	}

	return clampInt(score, 0, capHolders)
}

// creatorScore: a fully-exited creator and a clean insider graph.
func creatorScore(r *domain.RugcheckReport) int {
	score := 0
	if r.CreatorBalance == 0 {
		score += 10
	}
	if r.GraphInsiders != nil && *r.GraphInsiders == 0 {
		score += 5
	}
	return clampInt(score, 0, capCreator)
}

// marketScore starts from the full 15 and deducts per upstream risk flag.
func marketScore(r *domain.RugcheckReport) int {
	score := capMarket
	for _, risk := range r.Risks {
		switch risk.Level {
		case "warn":
			score -= 3
		case "danger":
			score -= 6
		}
	}
	if r.ScoreNormalised != nil && *r.ScoreNormalised < 20 {
		score -= 5
	}
	if r.Launchpad != nil && r.Launchpad.Platform == "pump_fun" {
		score -= 3
	}
	return clampInt(score, 0, capMarket)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
