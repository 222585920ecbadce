package cloudfunctions

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/pep299/keyword-analyzer/internal/config"
	"github.com/pep299/keyword-analyzer/internal/handlers"
	"github.com/pep299/keyword-analyzer/internal/logging"
)

func init() {
	functions.HTTP("AnalyzeKeywords", AnalyzeKeywords)
}

// CreateHandler builds the function's routes and a cleanup for the server behind them
func CreateHandler() (http.Handler, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return nil, nil, err
	}

	server, err := handlers.NewServer(cfg, logger)
	if err != nil {
		logger.Sync()
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})
	mux.HandleFunc("POST /analyze", func(w http.ResponseWriter, r *http.Request) {
		run, err := server.ProcessAndPublish(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		w.Header().Set("X-Run-Id", run.ID)
		writeJSON(w, http.StatusOK, run.Summary)
	})

	cleanup := func() {
		server.Close()
		logger.Sync()
	}

	return mux, cleanup, nil
}

// AnalyzeKeywords handles a single HTTP request (for Cloud Functions)
func AnalyzeKeywords(w http.ResponseWriter, r *http.Request) {
	handler, cleanup, err := CreateHandler()
	if err != nil {
		log.Printf("Failed to create handler: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer cleanup()

	handler.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
