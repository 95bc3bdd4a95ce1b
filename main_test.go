package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bandwatch/internal/config"
	"bandwatch/internal/observability"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upstreamXML = `<?xml version="1.0" encoding="ISO-8859-1"?>
<solar><solardata>
	<updated>16 Oct 2026 1200 GMT</updated>
	<solarflux>142</solarflux>
	<aindex>8</aindex>
	<kindex>2</kindex>
	<calculatedconditions>
		<band name="30m-20m" time="day">Good</band>
		<band name="30m-20m" time="night">Fair</band>
	</calculatedconditions>
</solardata></solar>`

const upstreamForecast = `:Product: 3-Day Forecast
:Issued: 2026 Oct 16 1230 UTC
# Prepared by the U.S. Dept. of Commerce
NOAA Kp index breakdown Oct 16-Oct 18 2026`

func testApp(t *testing.T) *App {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".txt") {
			w.Write([]byte(upstreamForecast))
			return
		}
		w.Write([]byte(upstreamXML))
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		Port:                "0",
		HamQSLURL:           upstream.URL + "/solarxml.php",
		ForecastURL:         upstream.URL + "/3-day-forecast.txt",
		ForecastPlaceholder: "(NOAA forecast unavailable)",
		RefreshInterval:     time.Minute,
		HTTPTimeout:         2 * time.Second,
		BaselineBackend:     config.BackendMemory,
	}

	app, err := NewApp(context.Background(), cfg, observability.NewMetricsForTesting(), clockwork.NewFakeClock())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func TestHealthEndpoint(t *testing.T) {
	app := testApp(t)

	rr := httptest.NewRecorder()
	app.server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "healthy")
}

func TestRefreshEndToEnd(t *testing.T) {
	app := testApp(t)

	rr := httptest.NewRecorder()
	app.server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = httptest.NewRecorder()
	app.server.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var snap struct {
		Fresh      bool   `json:"fresh"`
		Forecast   string `json:"forecast"`
		Indicators struct {
			SolarFlux struct {
				Label string `json:"label"`
			} `json:"sfi"`
			KIndex struct {
				Label string `json:"label"`
			} `json:"kindex"`
		} `json:"indicators"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.True(t, snap.Fresh)
	assert.Equal(t, "NOAA Kp index breakdown Oct 16-Oct 18 2026", snap.Forecast)
	assert.Equal(t, "Good", snap.Indicators.SolarFlux.Label)
	assert.Equal(t, "Good/Fair", snap.Indicators.KIndex.Label)

	rr = httptest.NewRecorder()
	app.server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestConfigLoad(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, config.BackendLocal, cfg.BaselineBackend)
}
