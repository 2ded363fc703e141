package reporting

import (
	"context"
	"sort"
	"time"

	"dexpath/internal/domain"
	"dexpath/internal/storage"
)

// Generator produces scan reports from stored assessments.
type Generator struct {
	assessments storage.AssessmentStore
	now         func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(assessments storage.AssessmentStore) *Generator {
	return &Generator{
		assessments: assessments,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a report over every stored assessment.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	all, err := g.assessments.ListLatest(ctx, 0)
	if err != nil {
		return nil, err
	}

	report := &Report{
		GeneratedAt: g.now(),
		TokenCount:  len(all),
	}

	for _, a := range all {
		row := TokenReportRow{
			Mint:             a.Row.Mint,
			Symbol:           a.Row.Symbol,
			ConfidenceScore:  a.Assessment.ConfidenceScore,
			Momentum:         a.Assessment.Momentum,
			Risk:             a.Assessment.Risk,
			ModeFit:          a.Assessment.ModeFit,
			Action:           a.Assessment.Action,
			SpikeProbability: a.Assessment.SpikeProbability,
			SpikeBand:        a.Assessment.SpikeBand,
		}
		if a.Summary != nil {
			row.Verdict = a.Summary.Verdict
		}
		if a.Trust != nil {
			score := a.Trust.Score
			row.TrustScore = &score
			row.TrustLabel = a.Trust.Label
			report.Summary.TrustRatedCount++
		}

		switch a.Assessment.Action {
		case domain.ActionBuy:
			report.Summary.BuyCount++
		case domain.ActionWatch:
			report.Summary.WatchCount++
		case domain.ActionSkip:
			report.Summary.SkipCount++
		}
		if a.Assessment.Momentum == domain.MomentumAccelerating {
			report.Summary.AcceleratingCount++
		}
		if a.Assessment.Risk == domain.RiskHigh {
			report.Summary.HighRiskCount++
		}

		report.Rows = append(report.Rows, row)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		if report.Rows[i].ConfidenceScore != report.Rows[j].ConfidenceScore {
			return report.Rows[i].ConfidenceScore > report.Rows[j].ConfidenceScore
		}
		return report.Rows[i].Mint < report.Rows[j].Mint
	})

	return report, nil
}
