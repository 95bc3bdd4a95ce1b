package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bandwatch/internal/config"
	"bandwatch/internal/refresh"
)

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   config.GetVersion(),
		"checks": map[string]string{
			"config":           "ok",
			"baseline_backend": s.Config.BaselineBackend,
		},
	})
}

// HandleReady reports 503 until the first solar record has been fetched
func (s *Server) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.Engine.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// HandleConditions returns the full engine snapshot
func (s *Server) HandleConditions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Engine.Snapshot())
}

// HandleBands returns the band table joined to the latest record
func (s *Server) HandleBands(w http.ResponseWriter, _ *http.Request) {
	snap := s.Engine.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bands":        snap.Bands,
		"fresh":        snap.Fresh,
		"last_updated": snap.LastUpdated,
	})
}

// HandleForecast returns the NOAA forecast body as plain text
func (s *Server) HandleForecast(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(s.Engine.Snapshot().Forecast))
}

// HandleRefresh runs one refresh cycle on demand. Requests arriving faster
// than the configured minimum interval are rejected with 429.
func (s *Server) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		s.Metrics.RefreshRequestsRejected.Inc()
		s.log.Warn("Refresh requested too soon, rejecting", map[string]interface{}{"remote": r.RemoteAddr})
		w.Header().Set("Retry-After", retryAfter(s.Config.RefreshMinInterval))
		writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"error":   "Refresh rate limited",
			"message": "A refresh was triggered recently. Please wait before requesting another one.",
			"status":  "rate_limited",
		})
		return
	}

	// Extend the write deadline so the error snapshot of a hung cycle still reaches the client
	deadline := time.Now().Add(refreshWriteTimeout(s.Config))
	if err := http.NewResponseController(w).SetWriteDeadline(deadline); err != nil && !errors.Is(err, http.ErrNotSupported) {
		s.log.Warn("Failed to extend refresh write deadline", map[string]interface{}{"error": err.Error()})
	}

	// A client disconnect must not abort a cycle other readers will see.
	ctx := context.WithoutCancel(r.Context())

	s.log.Info("On-demand refresh started")
	snap := s.Engine.Refresh(ctx)
	writeJSON(w, http.StatusOK, snap)
}

// compile-time check that the orchestrator satisfies Engine
var _ Engine = (*refresh.Orchestrator)(nil)
