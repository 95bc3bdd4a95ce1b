// Package refresh runs fetch-parse-classify cycles and holds the latest
// reconciled state of both upstream sources.
package refresh

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"bandwatch/internal/classify"
	"bandwatch/internal/fetchers"
	"bandwatch/internal/logger"
	"bandwatch/internal/models"
	"bandwatch/internal/observability"
	"bandwatch/internal/trend"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// DefaultInterval is the periodic refresh cadence
const DefaultInterval = 15 * time.Minute

// Phase is the orchestrator state
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseFetching Phase = "fetching"
	PhaseSettled  Phase = "settled"
)

// SourceFetcher fetches both upstream sources and waits for both to settle
type SourceFetcher interface {
	FetchAll(ctx context.Context) fetchers.SourceData
}

// Snapshot is a point-in-time copy of the orchestrator state
type Snapshot struct {
	Phase       Phase               `json:"phase"`
	CycleID     string              `json:"cycle_id,omitempty"`
	Generation  uint64              `json:"generation"`
	Record      *models.SolarRecord `json:"record"`
	Indicators  classify.Indicators `json:"indicators"`
	Bands       []classify.BandRow  `json:"bands"`
	Trends      trend.Trends        `json:"trends"`
	Forecast    string              `json:"forecast"`
	Error       *models.FetchError  `json:"error"`
	Fresh       bool                `json:"fresh"`
	LastUpdated *time.Time          `json:"last_updated,omitempty"`
}

// Orchestrator runs refresh cycles. Cycles may overlap: a new cycle never
// waits for or cancels one in flight. Each cycle takes a generation number
// and a result whose generation is older than the last applied one is
// discarded, so a slow cycle can never overwrite newer data.
type Orchestrator struct {
	fetcher  SourceFetcher
	tracker  *trend.Tracker
	clock    clockwork.Clock
	interval time.Duration
	metrics  *observability.Metrics
	log      *logger.Logger

	// applyMu serializes settling so baseline writes happen in generation order
	applyMu sync.Mutex

	mu         sync.RWMutex
	state      Snapshot
	nextGen    uint64
	appliedGen uint64
	inFlight   int

	ready atomic.Bool
}

// New creates an orchestrator. A non-positive interval uses DefaultInterval.
func New(fetcher SourceFetcher, tracker *trend.Tracker, clock clockwork.Clock, interval time.Duration, metrics *observability.Metrics) *Orchestrator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Orchestrator{
		fetcher:  fetcher,
		tracker:  tracker,
		clock:    clock,
		interval: interval,
		metrics:  metrics,
		log:      logger.GetGlobalLogger().WithComponent("refresh"),
		state: Snapshot{
			Phase:      PhaseIdle,
			Indicators: classify.ClassifyRecord(nil),
			Bands:      classify.BandRows(nil),
			Trends:     trend.UnknownTrends(),
		},
	}
}

// Snapshot returns a copy of the current state
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.copyState()
}

func (o *Orchestrator) copyState() Snapshot {
	s := o.state
	s.Bands = slices.Clone(o.state.Bands)
	if o.state.LastUpdated != nil {
		t := *o.state.LastUpdated
		s.LastUpdated = &t
	}
	return s
}

// CheckReadiness returns nil once a record has been obtained, or an error
// describing why the service is not yet ready.
func (o *Orchestrator) CheckReadiness(_ context.Context) error {
	if !o.ready.Load() {
		return errors.New("no solar record has been fetched yet")
	}
	return nil
}

// Refresh runs one cycle and returns the state after it settled
func (o *Orchestrator) Refresh(ctx context.Context) Snapshot {
	o.mu.Lock()
	o.nextGen++
	gen := o.nextGen
	o.inFlight++
	o.state.Phase = PhaseFetching
	o.mu.Unlock()

	o.metrics.CyclesInFlight.Inc()
	defer o.metrics.CyclesInFlight.Dec()

	cycleID := uuid.NewString()
	start := o.clock.Now()
	o.log.Debug("Refresh cycle started", map[string]interface{}{
		"cycle_id":   cycleID,
		"generation": gen,
	})

	data := o.fetcher.FetchAll(ctx)
	rec, fetchErr := o.parse(data.Solar)

	o.applyMu.Lock()
	defer o.applyMu.Unlock()

	o.mu.RLock()
	stale := gen < o.appliedGen
	o.mu.RUnlock()

	if stale {
		o.metrics.StaleResultsDiscarded.Inc()
		o.log.Warn("Discarding stale refresh result", map[string]interface{}{
			"cycle_id":   cycleID,
			"generation": gen,
		})
		o.mu.Lock()
		defer o.mu.Unlock()
		o.settle()
		return o.copyState()
	}

	trends := trend.UnknownTrends()
	if rec != nil {
		trends = o.tracker.ObserveRecord(ctx, rec)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	next := o.state
	next.CycleID = cycleID
	next.Generation = gen
	next.Forecast = data.Forecast.Value
	next.Trends = trends

	if rec != nil {
		now := o.clock.Now()
		next.Record = rec
		next.Indicators = classify.ClassifyRecord(rec)
		next.Bands = classify.BandRows(rec)
		next.Error = nil
		next.Fresh = true
		next.LastUpdated = &now

		o.ready.Store(true)
		o.metrics.RefreshCycles.WithLabelValues("fresh").Inc()
		o.metrics.LastSuccessTimestamp.Set(float64(now.Unix()))
		o.log.Info("Refresh cycle completed", map[string]interface{}{
			"cycle_id": cycleID,
			"sfi":      rec.SolarFluxIndex.String(),
			"kindex":   rec.KIndex.String(),
			"trend":    string(trends.SFI),
		})
	} else {
		next.Error = fetchErr
		next.Fresh = false

		o.metrics.RefreshCycles.WithLabelValues("failed").Inc()
		o.log.Error("Refresh cycle failed, keeping previous record", fetchErr, map[string]interface{}{
			"cycle_id":   cycleID,
			"kind":       string(fetchErr.Kind),
			"has_record": next.Record != nil,
		})
	}

	o.state = next
	o.appliedGen = gen
	o.settle()
	o.metrics.RefreshDuration.Observe(o.clock.Since(start).Seconds())
	return o.copyState()
}

// settle closes the bookkeeping of one cycle. Callers hold o.mu.
func (o *Orchestrator) settle() {
	o.inFlight--
	if o.inFlight == 0 {
		o.state.Phase = PhaseSettled
	}
}

func (o *Orchestrator) parse(solar models.Outcome[string]) (*models.SolarRecord, *models.FetchError) {
	if !solar.OK() {
		return nil, solar.Err
	}

	rec, err := fetchers.ParseSolarXML(solar.Value)
	if err == nil {
		return rec, nil
	}

	o.metrics.ParseErrors.Inc()
	var fe *models.FetchError
	if !errors.As(err, &fe) {
		fe = models.NewFetchError(models.ParseError, err.Error(), err)
	}
	return nil, fe
}

// Run refreshes immediately and then once per interval until ctx is
// cancelled. Ticks start their cycle without waiting for an earlier one. Run
// returns after the ticker is stopped and every cycle it started has settled.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.log.Info("Refresh loop started", map[string]interface{}{"interval": o.interval.String()})
	o.metrics.RefreshRunning.Set(1)
	defer o.metrics.RefreshRunning.Set(0)

	var wg sync.WaitGroup
	defer wg.Wait()

	o.Refresh(ctx)

	ticker := o.clock.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			o.log.Info("Refresh loop stopping", map[string]interface{}{"reason": ctx.Err().Error()})
			return nil
		case <-ticker.Chan():
			wg.Add(1)
			go func() {
				defer wg.Done()
				o.Refresh(ctx)
			}()
		}
	}
}
