package scoring

import (
	"context"
	"strings"
	"testing"
	"time"

	"dexpath/internal/domain"
	"dexpath/internal/extract"
	"dexpath/internal/ingestion"
	"dexpath/internal/storage/memory"
)

var testNow = time.UnixMilli(1754049600000) // 2025-08-01T12:00:00Z

func newTestRunner(cfg Config) (*Runner, *memory.AssessmentStore, *memory.ScoreHistoryStore) {
	assessments := memory.NewAssessmentStore()
	history := memory.NewScoreHistoryStore()
	r := NewRunner(assessments, history, nil, cfg)
	r.now = func() time.Time { return testNow }
	return r, assessments, history
}

func fullPayload(mint string) extract.Payload {
	return extract.Payload{
		"address":                   mint,
		"name":                      "Test Token",
		"symbol":                    "TST",
		"priceUSD":                  0.00042,
		"priceChange1minPercentage": 5.0,
		"priceChange5minPercentage": 20.0,
		"priceChange24hPercentage":  40.0,
		"volume5minUSD":             10000.0,
		"volumeBuy5minUSD":          8000.0,
		"volumeSell5minUSD":         2000.0,
		"volume24hUSD":              900000.0,
		"liquidityUSD":              4000.0,
		"marketCapUSD":              45000.0,
		"holdersCount":              250.0,
		"createdAt":                 float64(testNow.UnixMilli() - 30*60000),
	}
}

func TestRunner_ScorePayload(t *testing.T) {
	r, assessments, history := newTestRunner(Config{})
	ctx := context.Background()

	got, err := r.ScorePayload(ctx, fullPayload("mint1"))
	if err != nil {
		t.Fatalf("ScorePayload failed: %v", err)
	}

	if got.Row.Mint != "mint1" || got.Row.Symbol != "TST" {
		t.Errorf("row = %+v", got.Row)
	}
	if got.Metrics == nil {
		t.Error("Metrics should be set for a payload with detail fields")
	}
	if got.Summary == nil {
		t.Error("Summary should always be generated")
	}
	if got.ObservedAt != testNow.UnixMilli() {
		t.Errorf("ObservedAt = %d, want %d", got.ObservedAt, testNow.UnixMilli())
	}

	stored, err := assessments.GetByMint(ctx, "mint1")
	if err != nil {
		t.Fatalf("assessment not stored: %v", err)
	}
	if stored.Assessment != got.Assessment {
		t.Error("stored assessment differs from returned one")
	}

	points, err := history.GetByMint(ctx, "mint1")
	if err != nil || len(points) != 1 {
		t.Fatalf("history points = %d (err %v), want 1", len(points), err)
	}
	if points[0].ConfidenceScore != got.Assessment.ConfidenceScore {
		t.Errorf("history confidence = %d, want %d",
			points[0].ConfidenceScore, got.Assessment.ConfidenceScore)
	}
	if points[0].Action != got.Assessment.Action {
		t.Errorf("history action = %s, want %s", points[0].Action, got.Assessment.Action)
	}
}

func TestRunner_BareRowHasNoMetrics(t *testing.T) {
	r, _, _ := newTestRunner(Config{})

	got, err := r.ScorePayload(context.Background(), extract.Payload{
		"address": "mint1",
		"name":    "Bare Token",
	})
	if err != nil {
		t.Fatalf("ScorePayload failed: %v", err)
	}
	if got.Metrics != nil {
		t.Error("Metrics should be nil when the payload has no detail fields")
	}
	if got.Summary == nil {
		t.Error("Summary should still be generated")
	}
}

func TestRunner_NoIdentityRejected(t *testing.T) {
	r, _, history := newTestRunner(Config{})

	_, err := r.ScorePayload(context.Background(), extract.Payload{"priceUSD": 1.0})
	if err == nil {
		t.Fatal("payload without a mint should fail")
	}
	points, _ := history.GetByMint(context.Background(), "")
	if len(points) != 0 {
		t.Error("rejected payload left a history point")
	}
}

func TestRunner_ValidateMints(t *testing.T) {
	r, _, _ := newTestRunner(Config{ValidateMints: true})
	ctx := context.Background()

	if _, err := r.ScorePayload(ctx, fullPayload("not-a-mint")); err == nil {
		t.Error("synthetic mint should be rejected with validation on")
	}
	if _, err := r.ScorePayload(ctx, fullPayload("So11111111111111111111111111111111111111112")); err != nil {
		t.Errorf("valid mint rejected: %v", err)
	}
}

func TestRunner_ProcessPayloadList(t *testing.T) {
	r, assessments, _ := newTestRunner(Config{})
	ctx := context.Background()

	raw := ingestion.RawPayload{
		Source: "file",
		Data: []byte(`[
			{"address": "mintA", "priceUSD": 1.0},
			{"noIdentity": true},
			{"address": "mintB", "priceUSD": 2.0}
		]`),
	}

	scored, err := r.Process(ctx, raw)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if scored != 2 {
		t.Errorf("scored = %d, want 2 (identity-less row skipped)", scored)
	}

	if _, err := assessments.GetByMint(ctx, "mintA"); err != nil {
		t.Errorf("mintA not stored: %v", err)
	}
	if _, err := assessments.GetByMint(ctx, "mintB"); err != nil {
		t.Errorf("mintB not stored: %v", err)
	}
}

func TestRunner_ProcessMalformed(t *testing.T) {
	r, _, _ := newTestRunner(Config{})

	scored, err := r.Process(context.Background(), ingestion.RawPayload{
		Source: "pulse_ws",
		Data:   []byte(`{not json`),
	})
	if err != nil {
		t.Fatalf("malformed payload must not error: %v", err)
	}
	if scored != 0 {
		t.Errorf("scored = %d, want 0", scored)
	}
}

func TestRunner_RugcheckAttachesToAssessment(t *testing.T) {
	r, assessments, _ := newTestRunner(Config{})
	ctx := context.Background()

	if _, err := r.ScorePayload(ctx, fullPayload("mint1")); err != nil {
		t.Fatalf("ScorePayload failed: %v", err)
	}

	report := []byte(`{
		"mintAuthority": null,
		"freezeAuthority": null,
		"tokenMeta": {"mutable": false},
		"markets": [{"lp": {"lpLockedPct": 100}}],
		"totalMarketLiquidity": 600000,
		"totalLPProviders": 80,
		"totalHolders": 15000,
		"topHolders": [{"pct": 1.5}],
		"creatorBalance": 0,
		"graphInsidersDetected": 0
	}`)

	trust, err := r.ScoreRugcheck(ctx, "mint1", report)
	if err != nil {
		t.Fatalf("ScoreRugcheck failed: %v", err)
	}
	if trust.Label != domain.TrustVerySafe {
		t.Errorf("Label = %s, want Very Safe", trust.Label)
	}

	stored, err := assessments.GetByMint(ctx, "mint1")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Trust == nil || stored.Trust.Score != trust.Score {
		t.Error("trust score not attached to the stored assessment")
	}
}

func TestRunner_RefreshPreservesTrust(t *testing.T) {
	r, assessments, _ := newTestRunner(Config{})
	ctx := context.Background()

	if _, err := r.ScorePayload(ctx, fullPayload("mint1")); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ScoreRugcheck(ctx, "mint1", []byte(`{"creatorBalance": 0}`)); err != nil {
		t.Fatal(err)
	}

	// A later pulse refresh must not drop the trust score. Advance the
	// clock so the history point does not collide.
	r.now = func() time.Time { return testNow.Add(time.Minute) }
	if _, err := r.ScorePayload(ctx, fullPayload("mint1")); err != nil {
		t.Fatal(err)
	}

	stored, err := assessments.GetByMint(ctx, "mint1")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Trust == nil {
		t.Error("pulse refresh dropped the stored trust score")
	}
}

func TestRunner_RugcheckForUnseenMint(t *testing.T) {
	r, assessments, _ := newTestRunner(Config{})
	ctx := context.Background()

	if _, err := r.ScoreRugcheck(ctx, "mintX", []byte(`{}`)); err != nil {
		t.Fatalf("ScoreRugcheck failed: %v", err)
	}

	stored, err := assessments.GetByMint(ctx, "mintX")
	if err != nil {
		t.Fatalf("trust-only assessment not stored: %v", err)
	}
	if stored.Trust == nil {
		t.Error("stored assessment has no trust score")
	}
}

func TestRunner_RunDrainsFiniteSource(t *testing.T) {
	r, assessments, _ := newTestRunner(Config{})

	src := ingestion.NewReaderSource(
		strings.NewReader(`{"address": "mint1", "priceUSD": 1.0}`))

	if err := r.Run(context.Background(), src); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, err := assessments.GetByMint(context.Background(), "mint1"); err != nil {
		t.Errorf("mint1 not stored after Run: %v", err)
	}
}
