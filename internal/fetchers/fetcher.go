package fetchers

import (
	"context"
	"errors"
	"sync"

	"bandwatch/internal/config"
	"bandwatch/internal/logger"
	"bandwatch/internal/models"
	"bandwatch/internal/observability"

	"github.com/go-resty/resty/v2"
)

// SourceData holds the settled outcome of both sources for one cycle. The
// two outcomes are independent; the forecast outcome always succeeds.
type SourceData struct {
	Solar    models.Outcome[string]
	Forecast models.Outcome[string]
}

// DataFetcher fetches both upstream sources concurrently
type DataFetcher struct {
	client   *resty.Client
	solar    *HamQSLFetcher
	forecast *ForecastFetcher
	log      *logger.Logger
}

// NewDataFetcher creates a data fetcher with one shared HTTP client.
// Requests are never retried; the relay fallback is the only second attempt.
func NewDataFetcher(cfg *config.Config, metrics *observability.Metrics) *DataFetcher {
	client := resty.New()
	client.SetTimeout(cfg.HTTPTimeout)
	client.SetRetryCount(0)
	client.SetHeader("User-Agent", config.UserAgent())

	return &DataFetcher{
		client:   client,
		solar:    NewHamQSLFetcher(client, cfg.HamQSLURL, cfg.RelayURL, metrics),
		forecast: NewForecastFetcher(client, cfg.ForecastURL, cfg.ForecastPlaceholder, metrics),
		log:      logger.GetGlobalLogger().WithComponent("fetchers"),
	}
}

// FetchAll fetches both sources in parallel and waits for both to settle.
// A failure of one source never cancels or short-circuits the other.
func (f *DataFetcher) FetchAll(ctx context.Context) SourceData {
	f.log.Debug("Starting data fetch from all sources")

	var (
		wg  sync.WaitGroup
		out SourceData
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		out.Solar = f.fetchSolar(ctx)
	}()
	go func() {
		defer wg.Done()
		out.Forecast = models.Succeeded(f.forecast.Fetch(ctx))
	}()
	wg.Wait()

	if out.Solar.OK() {
		f.log.Info("Data fetch completed", map[string]interface{}{
			"solar_bytes":    len(out.Solar.Value),
			"forecast_bytes": len(out.Forecast.Value),
		})
	}
	return out
}

func (f *DataFetcher) fetchSolar(ctx context.Context) models.Outcome[string] {
	body, err := f.solar.Fetch(ctx)
	if err == nil {
		return models.Succeeded(body)
	}

	var fe *models.FetchError
	if !errors.As(err, &fe) {
		fe = models.NewFetchError(models.NetworkError, err.Error(), err)
	}
	f.log.Error("HamQSL fetch failed", fe)
	return models.Failed[string](fe)
}
