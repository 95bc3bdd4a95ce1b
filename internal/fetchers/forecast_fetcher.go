package fetchers

import (
	"context"
	"time"

	"bandwatch/internal/logger"
	"bandwatch/internal/observability"

	"github.com/go-resty/resty/v2"
)

// ForecastFetcher downloads the NOAA SWPC 3-day forecast. It is best effort:
// every failure degrades to a placeholder text.
type ForecastFetcher struct {
	client      *resty.Client
	url         string
	placeholder string
	metrics     *observability.Metrics
	log         *logger.Logger
}

// NewForecastFetcher creates a forecast fetcher
func NewForecastFetcher(client *resty.Client, forecastURL, placeholder string, metrics *observability.Metrics) *ForecastFetcher {
	return &ForecastFetcher{
		client:      client,
		url:         forecastURL,
		placeholder: placeholder,
		metrics:     metrics,
		log:         logger.GetGlobalLogger().WithComponent("fetchers"),
	}
}

// Fetch returns the forecast body or the placeholder. It never fails.
func (f *ForecastFetcher) Fetch(ctx context.Context) string {
	start := time.Now()
	defer func() {
		f.metrics.FetchDuration.WithLabelValues(sourceForecast).Observe(time.Since(start).Seconds())
	}()

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get(f.url)

	if err != nil {
		f.metrics.FetchAttempts.WithLabelValues(sourceForecast, transportDirect, "error").Inc()
		f.log.Warn("NOAA forecast request failed", map[string]interface{}{"error": err.Error()})
		return f.placeholder
	}

	if !resp.IsSuccess() {
		f.metrics.FetchAttempts.WithLabelValues(sourceForecast, transportDirect, "error").Inc()
		f.log.Warnf("NOAA forecast returned status %d", resp.StatusCode())
		return f.placeholder
	}

	f.metrics.FetchAttempts.WithLabelValues(sourceForecast, transportDirect, "success").Inc()
	return ExtractForecastBody(resp.String())
}
