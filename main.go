package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bandwatch/internal/config"
	"bandwatch/internal/fetchers"
	"bandwatch/internal/logger"
	"bandwatch/internal/observability"
	"bandwatch/internal/refresh"
	"bandwatch/internal/server"
	"bandwatch/internal/storage"
	"bandwatch/internal/trend"

	"github.com/jonboulle/clockwork"
)

const shutdownTimeout = 30 * time.Second

// App holds the wired engine, its baseline store and the HTTP server
type App struct {
	config       *config.Config
	store        storage.BaselineStore
	orchestrator *refresh.Orchestrator
	server       *server.Server
}

// NewApp builds every component from cfg
func NewApp(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, clock clockwork.Clock) (*App, error) {
	store, err := storage.NewBaselineStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize baseline store: %w", err)
	}

	tracker := trend.NewTracker(store, metrics)
	fetcher := fetchers.NewDataFetcher(cfg, metrics)
	orch := refresh.New(fetcher, tracker, clock, cfg.RefreshInterval, metrics)

	return &App{
		config:       cfg,
		store:        store,
		orchestrator: orch,
		server:       server.NewServer(cfg, orch, metrics),
	}, nil
}

// Close cleans up app resources
func (a *App) Close() error {
	return a.store.Close()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		logger.Fatal("Invalid logging configuration", err)
	}

	logger.Info("Starting propagation data engine", map[string]interface{}{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"version":     config.GetVersion(),
		"backend":     cfg.BaselineBackend,
		"interval":    cfg.RefreshInterval.String(),
	})

	app, err := NewApp(ctx, cfg, observability.NewMetrics(), clockwork.NewRealClock())
	if err != nil {
		logger.Fatal("Failed to create app", err)
	}
	defer app.Close()

	go func() {
		if err := app.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", err)
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := app.orchestrator.Run(ctx); err != nil {
			logger.Error("Refresh loop stopped", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", err)
	}
	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("Refresh loop did not stop before the shutdown deadline")
	}

	logger.Info("Server stopped")
}
