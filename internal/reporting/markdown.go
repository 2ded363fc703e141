package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders a scan report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Token Scan Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Tokens assessed: %d\n\n", r.TokenCount))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| BUY | %d |\n", r.Summary.BuyCount))
	sb.WriteString(fmt.Sprintf("| WATCH | %d |\n", r.Summary.WatchCount))
	sb.WriteString(fmt.Sprintf("| SKIP | %d |\n", r.Summary.SkipCount))
	sb.WriteString(fmt.Sprintf("| Accelerating | %d |\n", r.Summary.AcceleratingCount))
	sb.WriteString(fmt.Sprintf("| High Risk | %d |\n", r.Summary.HighRiskCount))
	sb.WriteString(fmt.Sprintf("| Trust Rated | %d |\n", r.Summary.TrustRatedCount))
	sb.WriteString("\n")

	// Token table
	sb.WriteString("## Tokens\n\n")
	if len(r.Rows) > 0 {
		sb.WriteString("| Mint | Symbol | Conf | Momentum | Risk | Mode | Action | Spike | Band | Trust |\n")
		sb.WriteString("|------|--------|------|----------|------|------|--------|-------|------|-------|\n")
		for _, row := range r.Rows {
			trust := "-"
			if row.TrustScore != nil {
				trust = fmt.Sprintf("%d (%s)", *row.TrustScore, row.TrustLabel)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %s | %s | %s | %s | %.1f | %s | %s |\n",
				row.Mint, row.Symbol, row.ConfidenceScore,
				row.Momentum, row.Risk, row.ModeFit, row.Action,
				row.SpikeProbability, row.SpikeBand, trust))
		}
	} else {
		sb.WriteString("No tokens assessed.\n")
	}
	sb.WriteString("\n")

	// Verdicts
	verdicts := false
	for _, row := range r.Rows {
		if row.Verdict == "" {
			continue
		}
		if !verdicts {
			sb.WriteString("## Verdicts\n\n")
			verdicts = true
		}
		sb.WriteString(fmt.Sprintf("- **%s**: %s\n", row.Mint, row.Verdict))
	}
	if verdicts {
		sb.WriteString("\n")
	}

	return sb.String()
}
