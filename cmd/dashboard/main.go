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

	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/analysis"
	"github.com/spacesedan/sentiscope/internal/clients"
	"github.com/spacesedan/sentiscope/internal/dashboard"
	"github.com/spacesedan/sentiscope/internal/logging"
	"github.com/spacesedan/sentiscope/internal/monitoring"
	"github.com/spacesedan/sentiscope/internal/server"
	"github.com/spacesedan/sentiscope/internal/session"
	"github.com/spacesedan/sentiscope/internal/utils"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	cfg := config.Load()
	logging.InitLogger(logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		slog.Error("[Main] Failed to load analysis profile",
			slog.String("path", cfg.ProfilePath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	registry := analysis.NewRegistry(analysis.DefaultAnalyzers(profile)...)

	if cfg.HFSentimentEndpoint != "" {
		clients.InitHuggingFace(clients.HuggingFaceOptions{
			SentimentEndpoint: cfg.HFSentimentEndpoint,
			HealthEndpoint:    cfg.HFHealthEndpoint,
			Timeout:           cfg.HFTimeout,
			RequestsPerMinute: cfg.HFRequestsPerMinute,
		})
		registerContextual(ctx, registry)
	}

	opts := server.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		SessionTTL:     cfg.SessionTTL,
	}
	if cfg.ValkeyAddress != "" {
		vc, err := clients.NewValkeyClient(cfg.ValkeyAddress)
		if err != nil {
			slog.Warn("[Main] Valkey unavailable, dataset registry disabled",
				slog.String("error", err.Error()))
		} else {
			defer vc.Close()
			opts.Registry = vc
		}
	}

	store := session.NewStore(cfg.SessionTTL)
	go store.RunJanitor(ctx, session.JANITOR_INTERVAL)

	srv := server.New(store, dashboard.New(registry, profile), opts)

	go func() {
		if err := srv.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server stopped",
				slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Graceful shutdown failed",
			slog.String("error", err.Error()))
	}
	slog.Info("[Main] Shut down")
}

// registerContextual adds the model backed page, gated by a health monitor
// that runs until ctx is done.
func registerContextual(ctx context.Context, registry *analysis.Registry) {
	hf := clients.GetHuggingFaceClient()

	modelHealthy := &atomic.Bool{}
	modelHealthy.Store(true)
	go monitoring.MonitorModelHealth(ctx, hf, modelHealthy)

	registry.Register(analysis.NewContextualAnalyzer(hf, modelHealthy, utils.DEFAULT_BATCH_SIZE))
	slog.Info("[Main] Contextual sentiment enabled")
}
