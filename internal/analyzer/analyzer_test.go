package analyzer

import (
	"math"
	"reflect"
	"testing"

	"dexpath/internal/domain"
)

func fp(v float64) *float64 { return &v }

// scalperFacts is the worked scenario from the scoring design doc:
// a 5-minute mover with heavy buy volume and healthy liquidity.
func scalperFacts() domain.TokenFacts {
	return domain.TokenFacts{
		PriceChange1mPct:   fp(2),
		PriceChange5mPct:   fp(5),
		Volume5mUSD:        fp(10000),
		VolumeBuy5mUSD:     fp(8000),
		VolumeSell5mUSD:    fp(2000),
		LiquidityUSD:       fp(50000),
		MarketCapUSD:       fp(200000),
		Top10HoldingsPct:   fp(10),
		DevHoldingsPct:     fp(2),
		SnipersHoldingsPct: fp(0),
		HoldersCount:       fp(150),
		TrendingScore5m:    fp(30),
	}
}

func TestAnalyze_ScalperScenario(t *testing.T) {
	m := Analyze(scalperFacts())

	// Literal momentum score, not just the bucket:
	// (2*0.4 + 5*0.6) * log10(10000+1)
	wantMomentum := 3.8 * math.Log10(10001)
	if math.Abs(m.MomentumScore-wantMomentum) > 1e-9 {
		t.Errorf("MomentumScore = %v, want %v", m.MomentumScore, wantMomentum)
	}
	if m.BuySellRatio != 4 {
		t.Errorf("BuySellRatio = %v, want 4", m.BuySellRatio)
	}
	if m.LiquidityRatio != 0.25 {
		t.Errorf("LiquidityRatio = %v, want 0.25", m.LiquidityRatio)
	}
	if math.Abs(m.ConcentrationScore-0.12) > 1e-12 {
		t.Errorf("ConcentrationScore = %v, want 0.12", m.ConcentrationScore)
	}
	// No organic/total split in the payload: neutral, fully organic.
	if m.OrganicVolumeRatio != 1 {
		t.Errorf("OrganicVolumeRatio = %v, want 1", m.OrganicVolumeRatio)
	}
	if m.TrendStrength != 9 {
		t.Errorf("TrendStrength = %v, want 9", m.TrendStrength)
	}

	if m.Mode != domain.ModeScalper {
		t.Errorf("Mode = %s, want SCALPER", m.Mode)
	}
	if m.ConfidenceScore != 61 {
		t.Errorf("ConfidenceScore = %d, want 61", m.ConfidenceScore)
	}
	if m.ConfidenceLabel != domain.ConfidenceTradeable && m.ConfidenceLabel != domain.ConfidenceStrong {
		t.Errorf("ConfidenceLabel = %s, want Tradeable or Strong", m.ConfidenceLabel)
	}
}

func TestAnalyze_EmptyInputs(t *testing.T) {
	m := Analyze(domain.TokenFacts{})

	if m.Mode != domain.ModeWait {
		t.Errorf("Mode = %s, want WAIT", m.Mode)
	}
	if len(m.Summary) != 1 || m.Summary[0] != "Recommended mode: WAIT." {
		t.Errorf("Summary = %v, want exactly the mode sentence", m.Summary)
	}
	if m.ConfidenceScore < 0 || m.ConfidenceScore > 100 {
		t.Errorf("ConfidenceScore = %d out of range", m.ConfidenceScore)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	facts := scalperFacts()
	a := Analyze(facts)
	b := Analyze(facts)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Analyze is not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestAnalyze_SniperPriority(t *testing.T) {
	// SNIPER and SCALPER conditions hold simultaneously; SNIPER wins.
	facts := domain.TokenFacts{
		PriceChange5mPct:   fp(10), // momentum = 6 * log10(10001) ≈ 24
		Volume5mUSD:        fp(10000),
		OrganicVolume5mUSD: fp(8000), // organic ratio 0.8 > 0.4
		LiquidityUSD:       fp(1000), // < 5000
	}
	m := Analyze(facts)
	if m.MomentumScore <= 20 {
		t.Fatalf("test setup: MomentumScore = %v, want > 20", m.MomentumScore)
	}
	if m.Mode != domain.ModeSniper {
		t.Errorf("Mode = %s, want SNIPER (branch order)", m.Mode)
	}
}

func TestAnalyze_ConfidenceClamped(t *testing.T) {
	pathological := []domain.TokenFacts{
		{Volume5mUSD: fp(-5000), VolumeSell5mUSD: fp(-1), MarketCapUSD: fp(-1)},
		{PriceChange1mPct: fp(1e9), PriceChange5mPct: fp(1e9), Volume5mUSD: fp(1e12),
			VolumeBuy5mUSD: fp(1e12), LiquidityUSD: fp(1e12), MarketCapUSD: fp(1),
			TrendingScore1m: fp(1e6)},
		{PriceChange1mPct: fp(-1e9), PriceChange5mPct: fp(-1e9), Volume5mUSD: fp(1e12),
			Top10HoldingsPct: fp(95), DevHoldingsPct: fp(90), SnipersHoldingsPct: fp(80)},
	}
	for i, facts := range pathological {
		m := Analyze(facts)
		if m.ConfidenceScore < 0 || m.ConfidenceScore > 100 {
			t.Errorf("case %d: ConfidenceScore = %d out of [0,100]", i, m.ConfidenceScore)
		}
	}
}

func TestAnalyze_OrganicVolumeMonotonic(t *testing.T) {
	prev := -1
	for _, organic := range []float64{0, 1000, 2500, 5000, 7500, 10000} {
		facts := scalperFacts()
		facts.OrganicVolume5mUSD = fp(organic)
		m := Analyze(facts)
		if m.ConfidenceScore < prev {
			t.Errorf("confidence decreased at organic=%v: %d < %d", organic, m.ConfidenceScore, prev)
		}
		prev = m.ConfidenceScore
	}
}

func TestLabelFor_Bands(t *testing.T) {
	want := map[int]domain.ConfidenceLabel{
		0: domain.ConfidenceAvoid, 29: domain.ConfidenceAvoid,
		30: domain.ConfidenceRisky, 49: domain.ConfidenceRisky,
		50: domain.ConfidenceTradeable, 69: domain.ConfidenceTradeable,
		70: domain.ConfidenceStrong, 84: domain.ConfidenceStrong,
		85: domain.ConfidenceHighConviction, 100: domain.ConfidenceHighConviction,
	}
	for score, label := range want {
		if got := LabelFor(score); got != label {
			t.Errorf("LabelFor(%d) = %s, want %s", score, got, label)
		}
	}
	// Every integer score maps to exactly one of the five tiers.
	valid := map[domain.ConfidenceLabel]bool{
		domain.ConfidenceAvoid: true, domain.ConfidenceRisky: true,
		domain.ConfidenceTradeable: true, domain.ConfidenceStrong: true,
		domain.ConfidenceHighConviction: true,
	}
	for score := 0; score <= 100; score++ {
		if !valid[LabelFor(score)] {
			t.Errorf("LabelFor(%d) = %q not a documented tier", score, LabelFor(score))
		}
	}
}

func TestAnalyze_SummaryTruncated(t *testing.T) {
	// All four condition sentences fire, pushing the mode sentence past the cap.
	facts := domain.TokenFacts{
		PriceChange5mPct: fp(10),
		Volume5mUSD:      fp(10000),
		VolumeBuy5mUSD:   fp(8000),
		VolumeSell5mUSD:  fp(2000),
		LiquidityUSD:     fp(1000),
		MarketCapUSD:     fp(200000),
		PriceUSD:         fp(1.7),
		ATHPriceUSD:      fp(2),
		ATLPriceUSD:      fp(1),
	}
	m := Analyze(facts)
	if len(m.Summary) != 4 {
		t.Fatalf("Summary = %v, want 4 entries", m.Summary)
	}
	if m.Summary[0] != "Strong short-term momentum backed by volume." {
		t.Errorf("Summary[0] = %q", m.Summary[0])
	}
	if m.Summary[3] != "Price is at 70% of the ATH-ATL range." {
		t.Errorf("Summary[3] = %q", m.Summary[3])
	}
}

func TestAnalyze_NegativeMomentumSentence(t *testing.T) {
	facts := domain.TokenFacts{
		PriceChange1mPct: fp(-5),
		PriceChange5mPct: fp(-10),
		Volume5mUSD:      fp(10000),
	}
	m := Analyze(facts)
	if m.MomentumScore >= -10 {
		t.Fatalf("test setup: MomentumScore = %v, want < -10", m.MomentumScore)
	}
	if len(m.Summary) == 0 || m.Summary[0] != "Negative short-term momentum, price is bleeding." {
		t.Errorf("Summary = %v", m.Summary)
	}
}
