package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders report rows as a CSV string.
func RenderCSV(rows []TokenReportRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("mint,symbol,confidence_score,momentum,risk,mode_fit,action,")
	sb.WriteString("spike_probability,spike_band,trust_score,trust_label\n")

	// Rows
	for _, r := range rows {
		trustScore := ""
		if r.TrustScore != nil {
			trustScore = fmt.Sprintf("%d", *r.TrustScore)
		}
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%s,%s,%s,%s,%.2f,%s,%s,%s\n",
			r.Mint,
			csvEscape(r.Symbol),
			r.ConfidenceScore,
			r.Momentum,
			r.Risk,
			r.ModeFit,
			r.Action,
			r.SpikeProbability,
			csvEscape(r.SpikeBand),
			trustScore,
			csvEscape(string(r.TrustLabel)),
		))
	}

	return sb.String()
}

// csvEscape quotes fields containing commas or quotes.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
