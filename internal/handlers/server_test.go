package handlers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pep299/keyword-analyzer/internal/analysis"
	"github.com/pep299/keyword-analyzer/internal/config"
	"github.com/pep299/keyword-analyzer/internal/report"
	"github.com/pep299/keyword-analyzer/internal/scrape"
)

const testPage = `<html><head><style>body{}</style></head>
<body><h1>Shockwave Therapy Equipment</h1><p>Section 179 tax deduction for plantar fasciitis care.</p></body></html>`

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	page := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(page, []byte(testPage), 0o644))

	return &config.Config{
		Port:             "8080",
		Host:             "127.0.0.1",
		FirecrawlBaseURL: "http://127.0.0.1:1",
		ScrapeTimeout:    time.Second,
		SourceURL:        "file://" + page,
		ReportBrand:      "CuraMedix",
		OutputDir:        filepath.Join(dir, "out"),
		AnalysisSchedule: "off",
		CacheDuration:    time.Hour,
		SlackChannel:     "#marketing",
		LogLevel:         "info",
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	s, err := NewServer(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProcessAndPublish(t *testing.T) {
	cfg := newTestConfig(t)
	s := newTestServer(t, cfg)

	run, err := s.ProcessAndPublish(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, scrape.SourceLocal, run.Page.Source)
	assert.Contains(t, run.ExtractedKeywords, "section 179 deduction 2025")
	assert.Equal(t, 48380, run.Summary.TotalMonthlySearches)
	assert.Len(t, run.Artifacts, 2)
	assert.Same(t, run, s.LastRun())

	md, err := os.ReadFile(filepath.Join(cfg.OutputDir, report.ReportFile))
	require.NoError(t, err)
	assert.Equal(t, run.Report, string(md))

	f, err := os.Open(filepath.Join(cfg.OutputDir, report.DataFile))
	require.NoError(t, err)
	defer f.Close()
	decoded, err := report.ReadJSON(f)
	require.NoError(t, err)
	assert.Equal(t, run.Summary.TotalMonthlySearches, decoded.TotalMonthlySearches)
	assert.Len(t, decoded.HighPriority, len(run.Summary.HighPriority))
}

func TestProcessAndPublishMissingPageStillAnalyses(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.SourceURL = "file://" + filepath.Join(t.TempDir(), "missing.html")
	s := newTestServer(t, cfg)

	run, err := s.ProcessAndPublish(context.Background())
	require.NoError(t, err)

	assert.Equal(t, scrape.SourceNone, run.Page.Source)
	assert.Empty(t, run.ExtractedKeywords)
	assert.Equal(t, analysis.Analyze(s.Table()), run.Summary)
}

func TestProcessAndPublishWriteFailure(t *testing.T) {
	cfg := newTestConfig(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	cfg.OutputDir = filepath.Join(blocker, "out")
	s := newTestServer(t, cfg)

	_, err := s.ProcessAndPublish(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), report.ReportFile)
	assert.Nil(t, s.LastRun())
}

func TestNewServerRejectsBadKeywordFile(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.KeywordFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewServer(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t, newTestConfig(t))
	router := s.SetupRoutes()

	tests := []struct {
		name        string
		method      string
		path        string
		status      int
		contentType string
	}{
		{"health", "GET", "/api/v1/health", http.StatusOK, "application/json"},
		{"analysis", "GET", "/api/v1/analysis", http.StatusOK, "application/json"},
		{"run", "POST", "/api/v1/analysis/run", http.StatusOK, "application/json"},
		{"report", "GET", "/api/v1/report", http.StatusOK, "text/markdown; charset=utf-8"},
		{"keywords", "GET", "/api/v1/keywords", http.StatusOK, "application/json"},
		{"keywords csv", "GET", "/api/v1/keywords.csv", http.StatusOK, "text/csv; charset=utf-8"},
		{"bucket", "GET", "/api/v1/keywords?bucket=section_179_keywords", http.StatusOK, "application/json"},
		{"unknown bucket", "GET", "/api/v1/keywords?bucket=nope", http.StatusBadRequest, ""},
		{"artifacts", "GET", "/api/v1/artifacts", http.StatusOK, "application/json"},
		{"status", "GET", "/api/v1/status", http.StatusOK, "application/json"},
		{"config", "GET", "/api/v1/config", http.StatusOK, "application/json"},
		{"cache clear", "DELETE", "/api/v1/cache", http.StatusOK, "application/json"},
		{"wrong method", "POST", "/api/v1/health", http.StatusMethodNotAllowed, "application/json"},
		{"wrong method on run", "GET", "/api/v1/analysis/run", http.StatusMethodNotAllowed, "application/json"},
		{"not found", "GET", "/api/v1/missing", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.contentType != "" {
				assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestPreflightRequests(t *testing.T) {
	s := newTestServer(t, newTestConfig(t))
	router := s.SetupRoutes()

	paths := []string{
		"/api/v1/health",
		"/api/v1/analysis",
		"/api/v1/analysis/run",
		"/api/v1/keywords.csv",
		"/api/v1/cache",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest("OPTIONS", path, nil)
			req.Header.Set("Origin", "https://example.com")
			req.Header.Set("Access-Control-Request-Method", "POST")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
			assert.Empty(t, w.Body.String())
		})
	}

	// preflight never triggers a run
	assert.Nil(t, s.LastRun())
}

func TestCORSHeadersOnResponses(t *testing.T) {
	s := newTestServer(t, newTestConfig(t))

	w := httptest.NewRecorder()
	s.SetupRoutes().ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMethodNotAllowedBody(t *testing.T) {
	s := newTestServer(t, newTestConfig(t))

	w := httptest.NewRecorder()
	s.SetupRoutes().ServeHTTP(w, httptest.NewRequest("DELETE", "/api/v1/report", nil))

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response["error"], "DELETE")
}

func TestCacheClearRoute(t *testing.T) {
	cfg := newTestConfig(t)
	s := newTestServer(t, cfg)
	router := s.SetupRoutes()
	ctx := context.Background()

	_, err := s.ProcessAndPublish(ctx)
	require.NoError(t, err)
	stats, err := s.pageCache.GetStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, stats.TotalEntries)

	// another URL leaves the cached page alone
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/v1/cache?url=file%3A%2F%2Fother.html", nil))
	require.Equal(t, http.StatusOK, w.Code)
	stats, _ = s.pageCache.GetStats(ctx)
	assert.Equal(t, 1, stats.TotalEntries)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/v1/cache?url="+url.QueryEscape(cfg.SourceURL), nil))
	require.Equal(t, http.StatusOK, w.Code)
	stats, _ = s.pageCache.GetStats(ctx)
	assert.Equal(t, 0, stats.TotalEntries)

	_, err = s.ProcessAndPublish(ctx)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/v1/cache", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cache cleared successfully")

	stats, _ = s.pageCache.GetStats(ctx)
	assert.Equal(t, 0, stats.TotalEntries)
	assert.Equal(t, int64(0), stats.HitCount)
}

func TestAnalysisRunsOnFirstRequest(t *testing.T) {
	s := newTestServer(t, newTestConfig(t))
	router := s.SetupRoutes()
	require.Nil(t, s.LastRun())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/analysis", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var summary analysis.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 48380, summary.TotalMonthlySearches)
	assert.Len(t, summary.TaxSeasonal, 4)
	require.NotNil(t, s.LastRun())

	// second request reuses the stored run
	first := s.LastRun().ID
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/report", nil))
	assert.Equal(t, first, s.LastRun().ID)
}

func TestKeywordsCSVRoute(t *testing.T) {
	s := newTestServer(t, newTestConfig(t))

	w := httptest.NewRecorder()
	s.SetupRoutes().ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/keywords.csv", nil))
	require.Equal(t, http.StatusOK, w.Code)

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, report.CSVHeader, records[0])
	assert.Len(t, records, s.Table().Len()+1)
	assert.Equal(t, []string{"section 179 deduction 2025", "8400", "$2.25", "Low", "$1890.00"}, records[1])
}

func TestArtifactsRouteListsPublishedFiles(t *testing.T) {
	s := newTestServer(t, newTestConfig(t))
	_, err := s.ProcessAndPublish(context.Background())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	s.SetupRoutes().ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/artifacts", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Stores [][]string `json:"stores"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Stores, 1)
	assert.ElementsMatch(t, []string{report.ReportFile, report.DataFile}, response.Stores[0])
}

func TestConfigRouteHidesSecrets(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.FirecrawlAPIKey = "fc-secret"
	s := newTestServer(t, cfg)

	w := httptest.NewRecorder()
	s.SetupRoutes().ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/config", nil))

	assert.NotContains(t, w.Body.String(), "fc-secret")
	assert.Contains(t, w.Body.String(), `"firecrawl":true`)
}

func TestStatusRouteReportsLastRun(t *testing.T) {
	s := newTestServer(t, newTestConfig(t))
	run, err := s.ProcessAndPublish(context.Background())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	s.SetupRoutes().ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/status", nil))

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	lastRun, ok := response["last_run"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, run.ID, lastRun["id"])
	assert.Equal(t, "local", lastRun["source"])
}

func TestMetricsRoute(t *testing.T) {
	s := newTestServer(t, newTestConfig(t))
	_, err := s.ProcessAndPublish(context.Background())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	s.SetupRoutes().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `keyword_analyzer_runs_total{source="local"} 1`)
	assert.Contains(t, body, "keyword_analyzer_total_monthly_searches 48380")
	assert.Contains(t, body, `keyword_analyzer_bucket_keywords{bucket="section_179_keywords"} 4`)
}

func TestSlackDigestAfterRun(t *testing.T) {
	var posted atomic.Bool
	slackServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posted.Store(true)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer slackServer.Close()

	cfg := newTestConfig(t)
	cfg.SlackBotToken = "xoxb-test"
	s := newTestServer(t, cfg)
	s.slackClient.WithBaseURL(slackServer.URL)

	_, err := s.ProcessAndPublish(context.Background())
	require.NoError(t, err)
	assert.True(t, posted.Load())
}

func TestSlackFailureIsNotFatal(t *testing.T) {
	slackServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer slackServer.Close()

	cfg := newTestConfig(t)
	cfg.SlackBotToken = "xoxb-test"
	s := newTestServer(t, cfg)
	s.slackClient.WithBaseURL(slackServer.URL)

	run, err := s.ProcessAndPublish(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, run.Summary)
}
