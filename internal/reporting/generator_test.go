package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"dexpath/internal/domain"
	"dexpath/internal/storage/memory"
)

func seedStore(t *testing.T) *memory.AssessmentStore {
	t.Helper()

	store := memory.NewAssessmentStore()
	ctx := context.Background()

	assessments := []*domain.TokenAssessment{
		{
			Row: domain.TokenRow{Mint: "mintA", Symbol: "AAA"},
			Assessment: domain.RowAssessment{
				ConfidenceScore:  85,
				Momentum:         domain.MomentumAccelerating,
				Risk:             domain.RiskLow,
				ModeFit:          domain.ModeSniper,
				Action:           domain.ActionBuy,
				SpikeProbability: 72,
				SpikeBand:        "High-probability momentum",
			},
			Summary: &domain.TokenSummary{
				Verdict: "Early momentum detected. Candidate for a fast sniper entry.",
			},
			Trust: &domain.TrustScore{
				Score: 88,
				Label: domain.TrustVerySafe,
			},
			ObservedAt: 3000,
		},
		{
			Row: domain.TokenRow{Mint: "mintB", Symbol: "BBB"},
			Assessment: domain.RowAssessment{
				ConfidenceScore:  40,
				Momentum:         domain.MomentumCooling,
				Risk:             domain.RiskHigh,
				ModeFit:          domain.ModeWait,
				Action:           domain.ActionSkip,
				SpikeProbability: 20,
				SpikeBand:        "Random/dead",
			},
			ObservedAt: 2000,
		},
		{
			Row: domain.TokenRow{Mint: "mintC", Symbol: "CCC"},
			Assessment: domain.RowAssessment{
				ConfidenceScore:  60,
				Momentum:         domain.MomentumStable,
				Risk:             domain.RiskMedium,
				ModeFit:          domain.ModeScalper,
				Action:           domain.ActionWatch,
				SpikeProbability: 45,
				SpikeBand:        "Speculative",
			},
			ObservedAt: 1000,
		},
	}
	for _, a := range assessments {
		if err := store.Upsert(ctx, a); err != nil {
			t.Fatal(err)
		}
	}
	return store
}

func testClock() time.Time {
	return time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
}

func TestGenerate(t *testing.T) {
	gen := NewGenerator(seedStore(t)).WithClock(testClock)

	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if report.TokenCount != 3 {
		t.Errorf("TokenCount = %d, want 3", report.TokenCount)
	}
	if !report.GeneratedAt.Equal(testClock()) {
		t.Errorf("GeneratedAt = %s", report.GeneratedAt)
	}

	// Sorted by confidence DESC
	wantOrder := []string{"mintA", "mintC", "mintB"}
	for i, want := range wantOrder {
		if report.Rows[i].Mint != want {
			t.Errorf("Rows[%d].Mint = %s, want %s", i, report.Rows[i].Mint, want)
		}
	}

	s := report.Summary
	if s.BuyCount != 1 || s.WatchCount != 1 || s.SkipCount != 1 {
		t.Errorf("action counts = %d/%d/%d, want 1/1/1", s.BuyCount, s.WatchCount, s.SkipCount)
	}
	if s.AcceleratingCount != 1 {
		t.Errorf("AcceleratingCount = %d, want 1", s.AcceleratingCount)
	}
	if s.HighRiskCount != 1 {
		t.Errorf("HighRiskCount = %d, want 1", s.HighRiskCount)
	}
	if s.TrustRatedCount != 1 {
		t.Errorf("TrustRatedCount = %d, want 1", s.TrustRatedCount)
	}

	if report.Rows[0].TrustScore == nil || *report.Rows[0].TrustScore != 88 {
		t.Error("mintA trust score missing from its report row")
	}
	if report.Rows[2].TrustScore != nil {
		t.Error("mintB has no trust score but its row carries one")
	}
}

func TestGenerate_Empty(t *testing.T) {
	gen := NewGenerator(memory.NewAssessmentStore()).WithClock(testClock)

	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if report.TokenCount != 0 || len(report.Rows) != 0 {
		t.Errorf("empty store produced %d rows", len(report.Rows))
	}
}

func TestRenderMarkdown(t *testing.T) {
	gen := NewGenerator(seedStore(t)).WithClock(testClock)
	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	md := RenderMarkdown(report)

	for _, want := range []string{
		"# Token Scan Report",
		"Generated: 2025-08-01T12:00:00Z",
		"Tokens assessed: 3",
		"| BUY | 1 |",
		"| mintA | AAA | 85 | ACCELERATING | LOW | SNIPER | BUY | 72.0 | High-probability momentum | 88 (Very Safe) |",
		"| mintB | BBB | 40 |",
		"- **mintA**: Early momentum detected.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	md := RenderMarkdown(&Report{GeneratedAt: testClock()})
	if !strings.Contains(md, "No tokens assessed.") {
		t.Errorf("markdown = %s", md)
	}
}

func TestRenderCSV(t *testing.T) {
	gen := NewGenerator(seedStore(t)).WithClock(testClock)
	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	csv := RenderCSV(report.Rows)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	if len(lines) != 4 {
		t.Fatalf("csv has %d lines, want header + 3 rows", len(lines))
	}
	if lines[0] != "mint,symbol,confidence_score,momentum,risk,mode_fit,action,spike_probability,spike_band,trust_score,trust_label" {
		t.Errorf("header = %s", lines[0])
	}
	if lines[1] != "mintA,AAA,85,ACCELERATING,LOW,SNIPER,BUY,72.00,High-probability momentum,88,Very Safe" {
		t.Errorf("first row = %s", lines[1])
	}
	if !strings.HasSuffix(lines[3], ",,") {
		t.Errorf("trust-less row should end with empty trust fields: %s", lines[3])
	}
}

func TestRenderCSV_EscapesCommas(t *testing.T) {
	rows := []TokenReportRow{{
		Mint:      "mintX",
		Symbol:    `A,B"C`,
		SpikeBand: "Random/dead",
	}}
	csv := RenderCSV(rows)
	if !strings.Contains(csv, `"A,B""C"`) {
		t.Errorf("csv = %s", csv)
	}
}
