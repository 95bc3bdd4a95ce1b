package models

// Metric names a classified or tracked field
type Metric string

const (
	MetricSFI        Metric = "sfi"
	MetricKIndex     Metric = "kindex"
	MetricAIndex     Metric = "aindex"
	MetricBz         Metric = "bz"
	MetricProtonFlux Metric = "protonflux"
	MetricAurora     Metric = "aurora"
)

// TrackedMetrics are the metrics whose previous value is persisted for trends
var TrackedMetrics = []Metric{MetricSFI, MetricKIndex}

// TrendSignal is the direction of a tracked metric since the previous reading
type TrendSignal string

const (
	TrendUp      TrendSignal = "up"
	TrendDown    TrendSignal = "down"
	TrendSame    TrendSignal = "same"
	TrendUnknown TrendSignal = "unknown"
)

// Invert swaps up and down; same and unknown are unchanged
func (s TrendSignal) Invert() TrendSignal {
	switch s {
	case TrendUp:
		return TrendDown
	case TrendDown:
		return TrendUp
	default:
		return s
	}
}
