package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pep299/keyword-analyzer/internal/analysis"
	"github.com/pep299/keyword-analyzer/internal/cache"
	"github.com/pep299/keyword-analyzer/internal/config"
	"github.com/pep299/keyword-analyzer/internal/keyword"
	"github.com/pep299/keyword-analyzer/internal/metrics"
	"github.com/pep299/keyword-analyzer/internal/report"
	"github.com/pep299/keyword-analyzer/internal/scrape"
	"github.com/pep299/keyword-analyzer/internal/slack"
	"github.com/pep299/keyword-analyzer/internal/storage"
)

const version = "v1.0.0"

// Run is the outcome of one pass over the keyword table
type Run struct {
	ID                string            `json:"id"`
	StartedAt         time.Time         `json:"started_at"`
	FinishedAt        time.Time         `json:"finished_at"`
	Page              scrape.Page       `json:"page"`
	ExtractedKeywords []string          `json:"extracted_keywords"`
	Summary           *analysis.Summary `json:"summary"`
	Artifacts         []string          `json:"artifacts"`
	Report            string            `json:"-"`
}

// Server holds the HTTP server and its dependencies
type Server struct {
	config      *config.Config
	logger      *zap.Logger
	table       keyword.Table
	fetcher     *scrape.Fetcher
	pageCache   cache.Cache
	stores      []storage.Store
	registry    *prometheus.Registry
	metrics     *metrics.Metrics
	slackClient *slack.Client

	// runMu serialises runs; mu guards last
	runMu sync.Mutex
	mu    sync.RWMutex
	last  *Run
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	table, err := keyword.LoadTable(cfg.KeywordFile)
	if err != nil {
		return nil, fmt.Errorf("loading keyword table: %w", err)
	}

	stores := []storage.Store{storage.NewLocalStore(cfg.OutputDir)}
	if cfg.ArtifactBucket != "" {
		gcsStore, err := storage.NewGCSStore(context.Background(), cfg.ArtifactBucket, cfg.ArtifactPrefix)
		if err != nil {
			return nil, fmt.Errorf("creating artifact store: %w", err)
		}
		stores = append(stores, gcsStore)
	}

	pageCache := cache.NewMemoryCache(cfg.CacheDuration)
	scraper := scrape.NewClient(cfg.FirecrawlAPIKey, cfg.FirecrawlBaseURL, cfg.ScrapeTimeout)

	registry := prometheus.NewRegistry()

	s := &Server{
		config:    cfg,
		logger:    logger,
		table:     table,
		fetcher:   scrape.NewFetcher(scraper, pageCache, logger),
		pageCache: pageCache,
		stores:    stores,
		registry:  registry,
		metrics:   metrics.New(registry),
	}
	if cfg.SlackBotToken != "" {
		s.slackClient = slack.NewClient(cfg.SlackBotToken, cfg.SlackChannel)
	}

	logger.Info("Server initialised",
		zap.Int("keywords", table.Len()),
		zap.Bool("firecrawl", cfg.HasFirecrawlKey()),
		zap.Int("stores", len(stores)),
		zap.Bool("slack", s.slackClient != nil))

	return s, nil
}

// Close releases the cache and artifact stores
func (s *Server) Close() error {
	var errs []error
	if err := s.pageCache.Close(); err != nil {
		errs = append(errs, err)
	}
	for _, store := range s.stores {
		if err := store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SetupRoutes configures HTTP routes.
// Every API route also accepts OPTIONS so corsMiddleware can answer preflights;
// any other method on a known path gets 405.
func (s *Server) SetupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(s.methodNotAllowedHandler)
	r.Use(s.corsMiddleware)
	r.Use(s.loggingMiddleware)

	const api = "/api/v1"

	// Health check
	r.HandleFunc(api+"/health", s.healthHandler).Methods("GET", "OPTIONS")

	// Analysis
	r.HandleFunc(api+"/analysis", s.analysisHandler).Methods("GET", "OPTIONS")
	r.HandleFunc(api+"/analysis/run", s.runAnalysisHandler).Methods("POST", "OPTIONS")
	r.HandleFunc(api+"/report", s.reportHandler).Methods("GET", "OPTIONS")

	// Keyword data
	r.HandleFunc(api+"/keywords", s.keywordsHandler).Methods("GET", "OPTIONS")
	r.HandleFunc(api+"/keywords.csv", s.keywordsCSVHandler).Methods("GET", "OPTIONS")
	r.HandleFunc(api+"/artifacts", s.artifactsHandler).Methods("GET", "OPTIONS")

	// Cache operations
	r.HandleFunc(api+"/cache", s.cacheClearHandler).Methods("DELETE", "OPTIONS")

	// Status and configuration
	r.HandleFunc(api+"/status", s.statusHandler).Methods("GET", "OPTIONS")
	r.HandleFunc(api+"/config", s.configHandler).Methods("GET", "OPTIONS")

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")

	return r
}

// ProcessAndPublish analyses the keyword table, publishes the report and
// JSON data to every store, and posts a Slack digest when configured.
func (s *Server) ProcessAndPublish(ctx context.Context) (*Run, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	run := &Run{ID: uuid.NewString(), StartedAt: time.Now()}
	logger := s.logger.With(zap.String("run_id", run.ID))
	logger.Info("Starting keyword analysis", zap.String("url", s.config.SourceURL))

	run.Page = s.fetcher.Fetch(ctx, s.config.SourceURL)

	// Found phrases are reported but do not feed into categorization.
	run.ExtractedKeywords = scrape.ExtractKeywords(run.Page.Content, s.table)
	logger.Info("Extracted key phrases from page",
		zap.String("source", string(run.Page.Source)),
		zap.Int("found", len(run.ExtractedKeywords)))

	run.Summary = analysis.Analyze(s.table)
	run.Report = report.Markdown(run.Summary, s.config.ReportBrand)

	data, err := report.JSON(run.Summary)
	if err != nil {
		s.metrics.RunFailures.Inc()
		return nil, err
	}

	artifacts := []storage.Artifact{
		{Name: report.ReportFile, ContentType: "text/markdown; charset=utf-8", Data: []byte(run.Report)},
		{Name: report.DataFile, ContentType: "application/json", Data: data},
	}
	for _, store := range s.stores {
		for _, artifact := range artifacts {
			location, err := store.Publish(ctx, artifact)
			if err != nil {
				s.metrics.RunFailures.Inc()
				logger.Error("Failed to publish artifact", zap.String("artifact", artifact.Name), zap.Error(err))
				return nil, fmt.Errorf("publishing %s: %w", artifact.Name, err)
			}
			run.Artifacts = append(run.Artifacts, location)
		}
	}
	run.FinishedAt = time.Now()

	s.metrics.Runs.WithLabelValues(string(run.Page.Source)).Inc()
	s.metrics.RunDuration.Observe(run.FinishedAt.Sub(run.StartedAt).Seconds())
	s.metrics.LastRunTimestamp.SetToCurrentTime()
	s.metrics.ObserveSummary(run.Summary)

	s.mu.Lock()
	s.last = run
	s.mu.Unlock()

	if s.slackClient != nil {
		if err := s.slackClient.SendAnalysisDigest(ctx, run.Summary, run.ID); err != nil {
			logger.Error("Failed to send Slack digest", zap.Error(err))
		} else {
			logger.Info("Sent Slack digest", zap.String("channel", s.config.SlackChannel))
		}
	}

	logger.Info("Keyword analysis complete",
		zap.Int("total_monthly_searches", run.Summary.TotalMonthlySearches),
		zap.Strings("artifacts", run.Artifacts),
		zap.Duration("duration", run.FinishedAt.Sub(run.StartedAt)))

	return run, nil
}

// LastRun returns the most recent successful run, or nil
func (s *Server) LastRun() *Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Table returns the keyword table the server analyses
func (s *Server) Table() keyword.Table {
	return s.table
}

// latestRun returns the last run, running the analysis first if there is none
func (s *Server) latestRun(ctx context.Context) (*Run, error) {
	if run := s.LastRun(); run != nil {
		return run, nil
	}
	return s.ProcessAndPublish(ctx)
}

// Middleware functions

// corsMiddleware adds CORS headers
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap the ResponseWriter to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wrapped.statusCode),
			zap.Duration("duration", time.Since(start)))
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
