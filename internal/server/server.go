package server

import (
	"context"
	"net/http"
	"time"

	"bandwatch/internal/config"
	"bandwatch/internal/logger"
	"bandwatch/internal/observability"
	"bandwatch/internal/refresh"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Engine is the refresh engine the API reads from and triggers
type Engine interface {
	Snapshot() refresh.Snapshot
	Refresh(ctx context.Context) refresh.Snapshot
	CheckReadiness(ctx context.Context) error
}

// Server exposes the engine state as a JSON API plus health, readiness and metrics
type Server struct {
	Config  *config.Config
	Engine  Engine
	Metrics *observability.Metrics

	limiter    *rate.Limiter
	router     *mux.Router
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer creates a server listening on cfg.Port. On-demand refreshes are
// limited to one per cfg.RefreshMinInterval.
func NewServer(cfg *config.Config, engine Engine, metrics *observability.Metrics) *Server {
	limit := rate.Inf
	if cfg.RefreshMinInterval > 0 {
		limit = rate.Every(cfg.RefreshMinInterval)
	}

	s := &Server{
		Config:  cfg,
		Engine:  engine,
		Metrics: metrics,
		limiter: rate.NewLimiter(limit, 1),
		log:     logger.GetGlobalLogger().WithComponent("server"),
	}
	s.router = s.SetupRoutes()
	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: refreshWriteTimeout(cfg),
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// writeMargin is added to the slowest cycle to cover classification and encoding
const writeMargin = 10 * time.Second

// refreshWriteTimeout bounds a response that runs a full refresh cycle. A
// cycle can spend HTTPTimeout on the direct attempt and again on the relay.
func refreshWriteTimeout(cfg *config.Config) time.Duration {
	return 2*cfg.HTTPTimeout + writeMargin
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	r.HandleFunc("/health", s.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.HandleReady).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// OPTIONS is listed so preflight requests match a route and reach the middleware
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/conditions", s.HandleConditions).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/bands", s.HandleBands).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/forecast", s.HandleForecast).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/refresh", s.HandleRefresh).Methods(http.MethodPost, http.MethodOptions)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Cache-Control", "no-store")

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Max-Age", "86400")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.log.Info("HTTP server starting", map[string]interface{}{"addr": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the router, useful for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
