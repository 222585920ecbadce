package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/pep299/keyword-analyzer/internal/config"
	"github.com/pep299/keyword-analyzer/internal/handlers"
	"github.com/pep299/keyword-analyzer/internal/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Create server
	server, err := handlers.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}
	defer server.Close()

	// Setup routes
	router := server.SetupRoutes()

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched, err := startScheduler(ctx, cfg, server, logger)
	if err != nil {
		logger.Fatal("Failed to schedule analysis", zap.Error(err))
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server
	go func() {
		logger.Info("Starting server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	logger.Info("Shutting down server...")

	// Cancel background tasks and wait for a running analysis to finish
	cancel()
	sched.Stop()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// scheduler owns the cron runner and the initial analysis started beside it
type scheduler struct {
	cron    *cron.Cron
	initial sync.WaitGroup
}

// Stop halts the cron runner and waits for every analysis it or the
// initial run started. Safe on a nil scheduler.
func (s *scheduler) Stop() {
	if s == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.initial.Wait()
}

// startScheduler runs the analysis once and then on cfg.AnalysisSchedule.
// It returns nil when scheduling is switched off.
func startScheduler(ctx context.Context, cfg *config.Config, server *handlers.Server, logger *zap.Logger) (*scheduler, error) {
	if !cfg.ScheduleEnabled() {
		logger.Info("Scheduled analysis disabled")
		return nil, nil
	}

	job := func() {
		if _, err := server.ProcessAndPublish(ctx); err != nil {
			logger.Error("Scheduled analysis failed", zap.Error(err))
		}
	}

	s := &scheduler{cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))}
	if _, err := s.cron.AddFunc(cfg.AnalysisSchedule, job); err != nil {
		return nil, fmt.Errorf("parsing ANALYSIS_SCHEDULE %q: %w", cfg.AnalysisSchedule, err)
	}

	// Run initial analysis
	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		job()
	}()

	s.cron.Start()
	logger.Info("Scheduled analysis", zap.String("schedule", cfg.AnalysisSchedule))
	return s, nil
}
