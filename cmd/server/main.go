package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/spacesedan/reviewpulse/config"
	"github.com/spacesedan/reviewpulse/internal/analysis"
	"github.com/spacesedan/reviewpulse/internal/clients"
	"github.com/spacesedan/reviewpulse/internal/db"
	"github.com/spacesedan/reviewpulse/internal/keypoints"
	"github.com/spacesedan/reviewpulse/internal/logging"
	"github.com/spacesedan/reviewpulse/internal/metrics"
	"github.com/spacesedan/reviewpulse/internal/monitoring"
	"github.com/spacesedan/reviewpulse/internal/sentiment"
	"github.com/spacesedan/reviewpulse/internal/server"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := prometheus.NewRegistry()
	if err := metrics.Register(reg); err != nil {
		slog.Error("[Main] Failed to register metrics",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := db.InitDB(ctx); err != nil {
		slog.Error("[Main] Failed to initialize database",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.CloseDB()

	// Both clients are process-wide singletons; model substitution for the
	// classifier happens once here, never per request.
	hfClient := clients.GetHuggingFaceClient()
	openAIClient := clients.GetOpenAIClient()

	var cache analysis.Cache
	if valkeyClient := clients.InitValkey(); valkeyClient != nil {
		cache = valkeyClient
		defer clients.CloseValkey()
	}

	analyzer := analysis.NewAnalyzer(
		sentiment.NewClassifier(hfClient),
		keypoints.NewLLMExtractor(openAIClient.Client, openAIClient.Model),
		keypoints.ExtractFallback,
		db.NewReviewRepository(db.DB),
		cache,
	)

	classifierHealthy := &atomic.Bool{}
	classifierHealthy.Store(true)
	go monitoring.MonitorClassifierHealth(ctx, hfClient, classifierHealthy)

	port := os.Getenv("PORT")
	if port == "" {
		port = "6543"
	}

	srv := server.New(":"+port, analyzer, classifierHealthy, reg)

	go func() {
		slog.Info("[Main] Server running",
			slog.String("addr", ":"+port))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed",
				slog.String("error", err.Error()))
			cancel()
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		slog.Info("[Main] Shutdown signal received")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Graceful shutdown failed",
			slog.String("error", err.Error()))
	}
}
