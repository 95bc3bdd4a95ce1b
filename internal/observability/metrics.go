package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bandwatch"

// Metrics holds the Prometheus counters, histograms, and gauges for the ingestion engine.
type Metrics struct {
	// Source fetch metrics.
	FetchAttempts *prometheus.CounterVec   // labels: source={hamqsl,forecast}, transport={direct,relay}, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: source={hamqsl,forecast}
	ParseErrors   prometheus.Counter

	// Refresh cycle metrics.
	RefreshCycles         *prometheus.CounterVec // labels: outcome={fresh,failed}
	StaleResultsDiscarded prometheus.Counter
	RefreshDuration       prometheus.Histogram
	CyclesInFlight        prometheus.Gauge
	LastSuccessTimestamp  prometheus.Gauge
	RefreshRunning        prometheus.Gauge

	// Baseline store metrics.
	BaselineStoreErrors *prometheus.CounterVec // labels: op={get,set}

	// API metrics.
	RefreshRequestsRejected prometheus.Counter
}

// NewMetrics creates and registers all engine metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates Metrics registered with reg
func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.FetchAttempts,
		m.FetchDuration,
		m.ParseErrors,
		m.RefreshCycles,
		m.StaleResultsDiscarded,
		m.RefreshDuration,
		m.CyclesInFlight,
		m.LastSuccessTimestamp,
		m.RefreshRunning,
		m.BaselineStoreErrors,
		m.RefreshRequestsRejected,
	)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// multiple tests can build their own without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_attempts_total",
			Help:      "Upstream fetch attempts by source, transport and outcome.",
		}, []string{"source", "transport", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time to obtain a body from a source, fallback included.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Solar XML bodies that could not be parsed.",
		}),
		RefreshCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_cycles_total",
			Help:      "Settled refresh cycles by outcome.",
		}, []string{"outcome"}),
		StaleResultsDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_results_discarded_total",
			Help:      "Cycle results dropped because a newer cycle had already been applied.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete fetch-parse-classify cycle.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		CyclesInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cycles_in_flight",
			Help:      "Refresh cycles currently fetching.",
		}),
		LastSuccessTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last cycle that produced fresh data.",
		}),
		RefreshRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "refresh_running",
			Help:      "1 when the periodic refresh loop is active, 0 when shut down.",
		}),
		BaselineStoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "baseline_store_errors_total",
			Help:      "Trend baseline store failures by operation.",
		}, []string{"op"}),
		RefreshRequestsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_requests_rejected_total",
			Help:      "On-demand refresh requests refused by the rate limiter.",
		}),
	}
}
