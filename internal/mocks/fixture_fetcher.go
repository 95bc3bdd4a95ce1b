package mocks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"bandwatch/internal/fetchers"
	"bandwatch/internal/models"
)

// Fixture file names looked up in the fixture directory
const (
	SolarFixture    = "solarxml.xml"
	ForecastFixture = "3-day-forecast.txt"
)

// FixtureFetcher serves recorded upstream responses from disk so refresh
// cycles can run offline
type FixtureFetcher struct {
	dir         string
	placeholder string
}

// NewFixtureFetcher creates a fetcher that reads fixtures from dir
func NewFixtureFetcher(dir, placeholder string) *FixtureFetcher {
	return &FixtureFetcher{dir: dir, placeholder: placeholder}
}

// FetchAll reads both fixtures. A missing solar fixture is reported as a
// network failure; a missing forecast fixture yields the placeholder.
func (f *FixtureFetcher) FetchAll(ctx context.Context) fetchers.SourceData {
	out := fetchers.SourceData{Forecast: models.Succeeded(f.placeholder)}

	if err := ctx.Err(); err != nil {
		out.Solar = models.Failed[string](models.NewFetchError(models.NetworkError, err.Error(), err))
		return out
	}

	solar, err := f.load(SolarFixture)
	if err != nil {
		out.Solar = models.Failed[string](models.NewFetchError(models.NetworkError, err.Error(), err))
	} else {
		out.Solar = models.Succeeded(solar)
	}

	if forecast, err := f.load(ForecastFixture); err == nil {
		out.Forecast = models.Succeeded(fetchers.ExtractForecastBody(forecast))
	}
	return out
}

func (f *FixtureFetcher) load(name string) (string, error) {
	content, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to read fixture %s: %w", name, err)
	}
	return string(content), nil
}
