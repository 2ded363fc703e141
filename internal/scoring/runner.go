// Package scoring wires the deterministic engines to ingestion and storage:
// decode payload, extract, score, persist. All scoring maths lives in the
// engine packages; the runner only orchestrates and records metrics.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"dexpath/internal/analyzer"
	"dexpath/internal/classify"
	"dexpath/internal/domain"
	"dexpath/internal/extract"
	"dexpath/internal/ingestion"
	"dexpath/internal/observability"
	"dexpath/internal/rugcheck"
	"dexpath/internal/solana"
	"dexpath/internal/storage"
	"dexpath/internal/summarize"
)

// Config configures runner behavior.
type Config struct {
	// ValidateMints rejects rows whose mint is not a valid Solana address.
	// Off by default so fixture data with synthetic mints still scores.
	ValidateMints bool
}

// Runner scores payloads and persists the results.
type Runner struct {
	assessments storage.AssessmentStore
	history     storage.ScoreHistoryStore
	logger      *log.Logger
	cfg         Config

	now func() time.Time
}

// NewRunner creates a runner writing to the given stores.
func NewRunner(assessments storage.AssessmentStore, history storage.ScoreHistoryStore, logger *log.Logger, cfg Config) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		assessments: assessments,
		history:     history,
		logger:      logger,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Run consumes payloads from the given sources until ctx is canceled or all
// finite sources are exhausted.
func (r *Runner) Run(ctx context.Context, sources ...ingestion.PayloadSource) error {
	out := make(chan ingestion.RawPayload, 256)

	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)
		go func(src ingestion.PayloadSource) {
			defer wg.Done()
			if err := src.Run(ctx, out); err != nil && ctx.Err() == nil {
				r.logger.Printf("[scoring] source %s stopped: %v", src.Name(), err)
			}
		}(src)
	}
	go func() {
		wg.Wait()
		close(out)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-out:
			if !ok {
				return nil
			}
			if _, err := r.Process(ctx, raw); err != nil {
				r.logger.Printf("[scoring] process payload from %s: %v", raw.Source, err)
			}
		}
	}
}

// Process decodes one raw payload and scores every row in it. Returns the
// number of rows scored. Malformed documents and unscorable rows are counted
// and skipped; only storage failures surface as errors.
func (r *Runner) Process(ctx context.Context, raw ingestion.RawPayload) (int, error) {
	payloads, err := extract.DecodePayloadList(raw.Data)
	if err != nil {
		observability.RecordPayloadMalformed(raw.Source)
		r.logger.Printf("[scoring] malformed payload from %s: %v", raw.Source, err)
		return 0, nil
	}

	scored := 0
	for _, p := range payloads {
		if _, err := r.ScorePayload(ctx, p); err != nil {
			var pe *persistError
			if errors.As(err, &pe) {
				return scored, err
			}
			observability.RecordScoringError("extract")
			continue
		}
		scored++
	}
	return scored, nil
}

// ScorePayload extracts, scores and persists a single token document.
func (r *Runner) ScorePayload(ctx context.Context, p extract.Payload) (*domain.TokenAssessment, error) {
	started := r.now()
	nowMs := started.UnixMilli()

	row := extract.TokenRow(p)
	if row.Mint == "" {
		return nil, fmt.Errorf("payload has no token identity")
	}
	if r.cfg.ValidateMints {
		if err := solana.ValidateAddress(row.Mint); err != nil {
			return nil, fmt.Errorf("invalid mint: %w", err)
		}
	}
	observability.DefaultMetrics.RowsExtracted.Inc()

	assessment := classify.Assess(row, nowMs)

	facts := extract.TokenFacts(p)
	var metrics *domain.TokenMetrics
	if hasFacts(facts) {
		m := analyzer.Analyze(facts)
		metrics = &m
	}

	summary := summarize.Generate(r.summaryInput(p, row, facts, assessment, nowMs))

	result := &domain.TokenAssessment{
		Row:        row,
		Assessment: assessment,
		Metrics:    metrics,
		Summary:    &summary,
		ObservedAt: nowMs,
	}

	// A rugcheck trust score arrives on its own endpoint; carry the last
	// known one across pulse refreshes instead of dropping it.
	if prev, err := r.assessments.GetByMint(ctx, row.Mint); err == nil && prev.Trust != nil {
		result.Trust = prev.Trust
	}

	if err := r.persist(ctx, result); err != nil {
		return nil, err
	}

	observability.RecordTokenScored(string(assessment.Action), time.Since(started).Seconds())
	observability.DefaultMetrics.LastSuccessfulScore.SetToCurrentTime()
	return result, nil
}

// ScoreRugcheck parses a rugcheck report, computes its trust score and
// attaches it to the token's stored assessment.
func (r *Runner) ScoreRugcheck(ctx context.Context, mint string, report []byte) (*domain.TrustScore, error) {
	if mint == "" {
		return nil, fmt.Errorf("rugcheck score requires a mint")
	}
	if r.cfg.ValidateMints {
		if err := solana.ValidateAddress(mint); err != nil {
			return nil, fmt.Errorf("invalid mint: %w", err)
		}
	}

	parsed, err := extract.ParseRugcheckReport(report)
	if err != nil {
		return nil, err
	}

	trust := rugcheck.TrustScore(parsed)
	observability.RecordTrustScore(string(trust.Label))

	a, err := r.assessments.GetByMint(ctx, mint)
	if errors.Is(err, storage.ErrNotFound) {
		// No pulse row seen yet; store a trust-only assessment so the
		// score is not lost.
		a = &domain.TokenAssessment{
			Row:        domain.TokenRow{Mint: mint},
			ObservedAt: r.now().UnixMilli(),
		}
	} else if err != nil {
		return nil, fmt.Errorf("load assessment: %w", err)
	}

	a.Trust = &trust
	if err := r.assessments.Upsert(ctx, a); err != nil {
		observability.RecordScoringError("store")
		return nil, fmt.Errorf("store trust score: %w", err)
	}
	return &trust, nil
}

// persistError marks storage failures so Process aborts the batch instead of
// skipping the row as extraction noise.
type persistError struct{ err error }

func (e *persistError) Error() string { return e.err.Error() }
func (e *persistError) Unwrap() error { return e.err }

// persist upserts the assessment and appends its history point.
func (r *Runner) persist(ctx context.Context, a *domain.TokenAssessment) error {
	if err := r.assessments.Upsert(ctx, a); err != nil {
		observability.RecordScoringError("store")
		return &persistError{err: fmt.Errorf("upsert assessment: %w", err)}
	}

	point := &domain.ScorePoint{
		Mint:             a.Row.Mint,
		TimestampMs:      a.ObservedAt,
		ConfidenceScore:  a.Assessment.ConfidenceScore,
		SpikeProbability: a.Assessment.SpikeProbability,
		Momentum:         a.Assessment.Momentum,
		Risk:             a.Assessment.Risk,
		Action:           a.Assessment.Action,
	}
	err := r.history.InsertBulk(ctx, []*domain.ScorePoint{point})
	if errors.Is(err, storage.ErrDuplicateKey) {
		// Same mint refreshed twice within one millisecond; the trail
		// already has this observation.
		return nil
	}
	if err != nil {
		observability.RecordScoringError("store")
		return &persistError{err: fmt.Errorf("append score history: %w", err)}
	}
	return nil
}

// summaryInput assembles the summarizer's attribute subset from everything
// the payload and the row assessment provide.
func (r *Runner) summaryInput(p extract.Payload, row domain.TokenRow, facts domain.TokenFacts, a domain.RowAssessment, nowMs int64) summarize.Input {
	spike := a.SpikeProbability
	conf := float64(a.ConfidenceScore)

	in := summarize.Input{
		PriceChange1mPct: row.PriceChange1mPct,
		PriceChange5mPct: row.PriceChange5mPct,
		Volume1mUSD:      extract.Volume1mUSD(p),
		Volume5mUSD:      facts.Volume5mUSD,
		LiquidityUSD:     row.LiquidityUSD,
		MarketCapUSD:     row.MarketCapUSD,
		SpikeProbability: &spike,
		ConfidenceScore:  &conf,
	}
	if in.PriceChange1mPct == nil {
		in.PriceChange1mPct = facts.PriceChange1mPct
	}
	if in.PriceChange5mPct == nil {
		in.PriceChange5mPct = facts.PriceChange5mPct
	}
	if in.LiquidityUSD == nil {
		in.LiquidityUSD = facts.LiquidityUSD
	}
	if in.MarketCapUSD == nil {
		in.MarketCapUSD = facts.MarketCapUSD
	}
	if row.CreatedAtMs > 0 && nowMs >= row.CreatedAtMs {
		age := float64(nowMs-row.CreatedAtMs) / 60000.0
		in.TokenAgeMinutes = &age
	}
	return in
}

// hasFacts reports whether the payload carried any analyzer input at all.
// A bare pulse row yields no facts; storing nil metrics distinguishes "no
// details seen" from "details scored to zero".
func hasFacts(f domain.TokenFacts) bool {
	for _, v := range []*float64{
		f.PriceUSD, f.ATHPriceUSD, f.ATLPriceUSD,
		f.PriceChange1mPct, f.PriceChange5mPct,
		f.Volume5mUSD, f.VolumeBuy5mUSD, f.VolumeSell5mUSD, f.OrganicVolume5mUSD,
		f.Buys5m, f.Sells5m,
		f.LiquidityUSD, f.LiquidityMaxUSD, f.MarketCapUSD,
		f.HoldersCount, f.Top10HoldingsPct, f.DevHoldingsPct, f.SnipersHoldingsPct,
		f.TrendingScore1m, f.TrendingScore5m, f.TrendingScore4h,
	} {
		if v != nil {
			return true
		}
	}
	return false
}

