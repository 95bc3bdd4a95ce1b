package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bandwatch/internal/config"
	"bandwatch/internal/fetchers"
	"bandwatch/internal/observability"
	"bandwatch/internal/refresh"
	"bandwatch/internal/storage"
	"bandwatch/internal/trend"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hangingServer accepts requests and never answers until the client gives up
func hangingServer(t *testing.T) *httptest.Server {
	t.Helper()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })
	return srv
}

func TestRefreshWriteTimeout_CoversDirectAndRelay(t *testing.T) {
	cfg := &config.Config{Port: "0", HTTPTimeout: 30 * time.Second}
	s := NewServer(cfg, &fakeEngine{}, observability.NewMetricsForTesting())

	assert.Greater(t, s.httpServer.WriteTimeout, 2*cfg.HTTPTimeout)
	assert.Equal(t, refreshWriteTimeout(cfg), s.httpServer.WriteTimeout)
}

func TestHandleRefresh_HungUpstreamStillAnswers(t *testing.T) {
	primary := hangingServer(t)
	relay := hangingServer(t)

	cfg := &config.Config{
		Port:                "0",
		HamQSLURL:           primary.URL + "/solarxml.php",
		RelayURL:            relay.URL + "/relay",
		ForecastURL:         primary.URL + "/3-day-forecast.txt",
		ForecastPlaceholder: "(NOAA forecast unavailable)",
		RefreshInterval:     time.Minute,
		HTTPTimeout:         time.Second,
		BaselineBackend:     config.BackendMemory,
	}
	metrics := observability.NewMetricsForTesting()
	orch := refresh.New(
		fetchers.NewDataFetcher(cfg, metrics),
		trend.NewTracker(storage.NewMemoryStore(), metrics),
		clockwork.NewRealClock(),
		cfg.RefreshInterval,
		metrics,
	)
	s := NewServer(cfg, orch, metrics)

	// The base write timeout is shorter than the cycle; the handler must extend it
	ts := httptest.NewUnstartedServer(s)
	ts.Config.WriteTimeout = 500 * time.Millisecond
	ts.Start()
	defer ts.Close()

	start := time.Now()
	resp, err := http.Post(ts.URL+"/api/refresh", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	elapsed := time.Since(start)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.GreaterOrEqual(t, elapsed, 2*cfg.HTTPTimeout)

	var snap struct {
		Fresh    bool   `json:"fresh"`
		Forecast string `json:"forecast"`
		Error    struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.False(t, snap.Fresh)
	assert.Equal(t, "network", snap.Error.Kind)
	assert.Contains(t, snap.Error.Message, "relay request failed")
	assert.Equal(t, "(NOAA forecast unavailable)", snap.Forecast)
}
