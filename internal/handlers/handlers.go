package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pep299/keyword-analyzer/internal/analysis"
	"github.com/pep299/keyword-analyzer/internal/cache"
	"github.com/pep299/keyword-analyzer/internal/report"
)

// healthHandler provides health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"version":   version,
	}

	writeJSON(w, http.StatusOK, response)
}

// analysisHandler returns the latest summary, running the analysis if needed
func (s *Server) analysisHandler(w http.ResponseWriter, r *http.Request) {
	run, err := s.latestRun(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Error running analysis: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, run.Summary)
}

// runAnalysisHandler forces a new run and returns its details
func (s *Server) runAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	run, err := s.ProcessAndPublish(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Error running analysis: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, run)
}

// reportHandler returns the markdown report of the latest run
func (s *Server) reportHandler(w http.ResponseWriter, r *http.Request) {
	run, err := s.latestRun(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Error running analysis: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(run.Report))
}

// keywordsHandler returns the whole table as results, sorted by volume.
// ?bucket=<name> narrows the list to one bucket of the latest run.
func (s *Server) keywordsHandler(w http.ResponseWriter, r *http.Request) {
	results, ok := s.selectResults(w, r)
	if !ok {
		return
	}

	response := map[string]interface{}{
		"keywords": results,
		"count":    len(results),
	}
	writeJSON(w, http.StatusOK, response)
}

// keywordsCSVHandler returns the same selection as keywordsHandler as CSV
func (s *Server) keywordsCSVHandler(w http.ResponseWriter, r *http.Request) {
	results, ok := s.selectResults(w, r)
	if !ok {
		return
	}

	data, err := report.CSV(results)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error rendering CSV: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+report.AllKeywordsCSVFile+"\"")
	w.Write(data)
}

func (s *Server) selectResults(w http.ResponseWriter, r *http.Request) ([]analysis.Result, bool) {
	name := r.URL.Query().Get("bucket")
	if name == "" {
		return analysis.ResultsByVolume(s.table), true
	}

	bucket, ok := parseBucket(name)
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown bucket %q", name), http.StatusBadRequest)
		return nil, false
	}

	run, err := s.latestRun(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Error running analysis: %v", err), http.StatusInternalServerError)
		return nil, false
	}
	return run.Summary.Bucket(bucket), true
}

func parseBucket(name string) (analysis.Bucket, bool) {
	for _, b := range analysis.AllBuckets {
		if strings.EqualFold(name, string(b)) {
			return b, true
		}
	}
	return "", false
}

// artifactsHandler lists what each store holds
func (s *Server) artifactsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listings := make([][]string, 0, len(s.stores))
	for _, store := range s.stores {
		names, err := store.List(ctx)
		if err != nil {
			http.Error(w, fmt.Sprintf("Error listing artifacts: %v", err), http.StatusInternalServerError)
			return
		}
		if names == nil {
			names = []string{}
		}
		listings = append(listings, names)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"stores": listings})
}

// cacheClearHandler drops cached page content: one URL with ?url=, otherwise everything
func (s *Server) cacheClearHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	message := "Cache cleared successfully"
	if url := r.URL.Query().Get("url"); url != "" {
		if err := s.pageCache.Delete(ctx, cache.GenerateKey(url)); err != nil {
			http.Error(w, fmt.Sprintf("Error deleting cache entry: %v", err), http.StatusInternalServerError)
			return
		}
		message = "Cache entry removed for " + url
	} else if err := s.pageCache.Clear(ctx); err != nil {
		http.Error(w, fmt.Sprintf("Error clearing cache: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}

// methodNotAllowedHandler answers known paths requested with an unsupported method
func (s *Server) methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": fmt.Sprintf("method %s not allowed for %s", r.Method, r.URL.Path),
	})
}

// statusHandler returns system status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	cacheStats, _ := s.pageCache.GetStats(r.Context())

	response := map[string]interface{}{
		"status":   "running",
		"version":  version,
		"keywords": s.table.Len(),
		"cache":    cacheStats,
	}

	if run := s.LastRun(); run != nil {
		response["last_run"] = map[string]interface{}{
			"id":          run.ID,
			"finished_at": run.FinishedAt,
			"source":      run.Page.Source,
			"artifacts":   run.Artifacts,
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// configHandler returns configuration (sanitized)
func (s *Server) configHandler(w http.ResponseWriter, r *http.Request) {
	// Secrets carry json:"-" on Config
	response := map[string]interface{}{
		"config":          s.config,
		"firecrawl":       s.config.HasFirecrawlKey(),
		"slack":           s.config.SlackBotToken != "",
		"schedule_active": s.config.ScheduleEnabled(),
	}

	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
