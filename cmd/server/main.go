// Package main runs the scoring service: pulse WebSocket ingestion feeding
// the scoring runner, plus an HTTP API over the stored assessments.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"dexpath/internal/domain"
	"dexpath/internal/ingestion"
	"dexpath/internal/observability"
	"dexpath/internal/reporting"
	"dexpath/internal/scoring"
	"dexpath/internal/storage"
	chstore "dexpath/internal/storage/clickhouse"
	"dexpath/internal/storage/memory"
	pgstore "dexpath/internal/storage/postgres"
)

// Server holds the running components of the scoring service.
type Server struct {
	runner      *scoring.Runner
	assessments storage.AssessmentStore
	history     storage.ScoreHistoryStore
	logger      *log.Logger

	started time.Time
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	listenAddr := flag.String("listen", ":8080", "HTTP listen address")
	wsEndpoint := flag.String("ws-endpoint", os.Getenv("PULSE_WS_ENDPOINT"), "Pulse scanner WebSocket endpoint")
	subscribeMsg := flag.String("subscribe", os.Getenv("PULSE_SUBSCRIBE"), "Subscribe message sent after each WebSocket connect")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")
	validateMints := flag.Bool("validate-mints", true, "Reject rows whose mint is not a valid Solana address")

	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assessments, history, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	runner := scoring.NewRunner(assessments, history, logger, scoring.Config{
		ValidateMints: *validateMints,
	})

	server := &Server{
		runner:      runner,
		assessments: assessments,
		history:     history,
		logger:      logger,
		started:     time.Now(),
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		}
	}()

	// Pulse ingestion is optional; the API alone is useful for scoring
	// pasted payloads and rugcheck reports.
	if *wsEndpoint != "" {
		cfg := ingestion.DefaultWSSourceConfig()
		if *subscribeMsg != "" {
			cfg.SubscribeMessage = []byte(*subscribeMsg)
		}
		source := ingestion.NewWSSource(*wsEndpoint, &cfg, logger)
		go func() {
			if err := runner.Run(ctx, source); err != nil && !errors.Is(err, context.Canceled) {
				logger.Printf("Ingestion stopped: %v", err)
			}
		}()
		logger.Printf("Pulse ingestion started: %s", *wsEndpoint)
	} else {
		logger.Println("No --ws-endpoint configured, running API only")
	}

	httpServer := &http.Server{
		Addr:    *listenAddr,
		Handler: server.routes(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.Printf("Starting HTTP server on %s", *listenAddr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("HTTP server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates the assessment and history stores.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (storage.AssessmentStore, storage.ScoreHistoryStore, func(), error) {
	if useMemory {
		return memory.NewAssessmentStore(), memory.NewScoreHistoryStore(), func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	chConn, err := chstore.NewConn(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("connect to clickhouse: %w", err)
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}
	return pgstore.NewAssessmentStore(pool), chstore.NewScoreHistoryStore(chConn), cleanup, nil
}

// routes builds the HTTP API.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", observability.Handler())
	mux.HandleFunc("GET /status", s.handleStatus)

	mux.HandleFunc("GET /tokens", s.handleListTokens)
	mux.HandleFunc("GET /tokens/{mint}", s.handleGetToken)
	mux.HandleFunc("GET /tokens/{mint}/history", s.handleGetHistory)
	mux.HandleFunc("GET /report", s.handleReport)

	mux.HandleFunc("POST /score", s.handleScore)
	mux.HandleFunc("POST /rugcheck/score", s.handleRugcheckScore)

	return mux
}

// StatusResponse is the JSON response for the /status endpoint.
type StatusResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status: "running",
		Uptime: time.Since(s.started).String(),
	})
}

// handleListTokens returns stored assessments, newest first. Supports
// ?action=BUY|WATCH|SKIP and ?limit=N.
func (s *Server) handleListTokens(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	var (
		list []*domain.TokenAssessment
		err  error
	)
	if action := r.URL.Query().Get("action"); action != "" {
		list, err = s.assessments.ListByAction(r.Context(), domain.TradeAction(strings.ToUpper(action)))
		if err == nil && limit > 0 && len(list) > limit {
			list = list[:limit]
		}
	} else {
		list, err = s.assessments.ListLatest(r.Context(), limit)
	}
	if err != nil {
		s.logger.Printf("list tokens: %v", err)
		writeError(w, http.StatusInternalServerError, "list tokens failed")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetToken(w http.ResponseWriter, r *http.Request) {
	mint := r.PathValue("mint")
	a, err := s.assessments.GetByMint(r.Context(), mint)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "token not assessed")
		return
	}
	if err != nil {
		s.logger.Printf("get token %s: %v", mint, err)
		writeError(w, http.StatusInternalServerError, "get token failed")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	mint := r.PathValue("mint")
	points, err := s.history.GetByMint(r.Context(), mint)
	if err != nil {
		s.logger.Printf("get history %s: %v", mint, err)
		writeError(w, http.StatusInternalServerError, "get history failed")
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// handleReport renders a scan report over the current assessment set.
// ?format=markdown|csv, markdown by default.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := reporting.NewGenerator(s.assessments).Generate(r.Context())
	if err != nil {
		s.logger.Printf("generate report: %v", err)
		writeError(w, http.StatusInternalServerError, "report generation failed")
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		io.WriteString(w, reporting.RenderCSV(report.Rows))
	case "", "markdown":
		w.Header().Set("Content-Type", "text/markdown")
		io.WriteString(w, reporting.RenderMarkdown(report))
	default:
		writeError(w, http.StatusBadRequest, "unknown format")
	}
}

// ScoreResponse is the JSON response for POST /score.
type ScoreResponse struct {
	RowsScored int `json:"rows_scored"`
}

// handleScore scores a raw pulse payload posted as the request body.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 16<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body failed")
		return
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, "empty payload")
		return
	}

	scored, err := s.runner.Process(r.Context(), ingestion.RawPayload{
		Source:       "http",
		Data:         body,
		ReceivedAtMs: time.Now().UnixMilli(),
	})
	if err != nil {
		s.logger.Printf("score payload: %v", err)
		writeError(w, http.StatusInternalServerError, "scoring failed")
		return
	}
	writeJSON(w, http.StatusOK, ScoreResponse{RowsScored: scored})
}

// handleRugcheckScore scores a rugcheck report for ?mint= and attaches the
// trust score to the token's assessment.
func (s *Server) handleRugcheckScore(w http.ResponseWriter, r *http.Request) {
	mint := r.URL.Query().Get("mint")
	if mint == "" {
		writeError(w, http.StatusBadRequest, "mint query parameter is required")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 16<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body failed")
		return
	}

	trust, err := s.runner.ScoreRugcheck(r.Context(), mint, body)
	if err != nil {
		s.logger.Printf("score rugcheck for %s: %v", mint, err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, trust)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
