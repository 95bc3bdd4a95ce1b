// Package trend derives up/down/same signals for tracked metrics by comparing
// each new reading with the previous one held in a baseline Store.
package trend

//go:generate mockgen -destination=mock_store.go -package=trend bandwatch/internal/trend Store

import (
	"context"

	"bandwatch/internal/logger"
	"bandwatch/internal/models"
	"bandwatch/internal/observability"
)

// Store persists the previous value of each tracked metric across cycles and
// process restarts. Get returns an unknown reading when nothing is stored.
type Store interface {
	Get(ctx context.Context, metric models.Metric) (models.Reading[int], error)
	Set(ctx context.Context, metric models.Metric, value int) error
}

// Compare returns the direction from previous to newValue. Either side being
// unknown gives TrendUnknown. Swapping the arguments inverts up and down.
func Compare(newValue, previous models.Reading[int]) models.TrendSignal {
	n, ok := newValue.Get()
	if !ok {
		return models.TrendUnknown
	}
	p, ok := previous.Get()
	if !ok {
		return models.TrendUnknown
	}
	switch {
	case n > p:
		return models.TrendUp
	case n < p:
		return models.TrendDown
	default:
		return models.TrendSame
	}
}

// Trends holds the signals for every tracked metric
type Trends struct {
	SFI    models.TrendSignal `json:"sfi"`
	KIndex models.TrendSignal `json:"kindex"`
}

// UnknownTrends is the value used when no fresh record is available
func UnknownTrends() Trends {
	return Trends{SFI: models.TrendUnknown, KIndex: models.TrendUnknown}
}

// Tracker evaluates trends against a Store and advances the baselines
type Tracker struct {
	store   Store
	metrics *observability.Metrics
	log     *logger.Logger
}

// NewTracker creates a Tracker backed by store
func NewTracker(store Store, metrics *observability.Metrics) *Tracker {
	return &Tracker{
		store:   store,
		metrics: metrics,
		log:     logger.GetGlobalLogger().WithComponent("trend"),
	}
}

// Observe compares newValue with the stored baseline and then replaces the
// baseline with newValue. Unknown values never overwrite a baseline. Store
// failures are logged and degrade the signal to unknown; they never fail the
// caller.
func (t *Tracker) Observe(ctx context.Context, metric models.Metric, newValue models.Reading[int]) models.TrendSignal {
	previous, err := t.store.Get(ctx, metric)
	if err != nil {
		t.metrics.BaselineStoreErrors.WithLabelValues("get").Inc()
		t.log.Error("Failed to read trend baseline", err, map[string]interface{}{"metric": string(metric)})
		previous = models.Unknown[int]()
	}

	signal := Compare(newValue, previous)

	if v, ok := newValue.Get(); ok {
		if err := t.store.Set(ctx, metric, v); err != nil {
			t.metrics.BaselineStoreErrors.WithLabelValues("set").Inc()
			t.log.Error("Failed to persist trend baseline", err, map[string]interface{}{"metric": string(metric)})
		}
	}

	t.log.Debug("Trend evaluated", map[string]interface{}{
		"metric":   string(metric),
		"new":      newValue.String(),
		"previous": previous.String(),
		"signal":   string(signal),
	})
	return signal
}

// ObserveRecord observes every tracked metric of rec
func (t *Tracker) ObserveRecord(ctx context.Context, rec *models.SolarRecord) Trends {
	if rec == nil {
		return UnknownTrends()
	}
	return Trends{
		SFI:    t.Observe(ctx, models.MetricSFI, rec.SolarFluxIndex),
		KIndex: t.Observe(ctx, models.MetricKIndex, rec.KIndex),
	}
}
