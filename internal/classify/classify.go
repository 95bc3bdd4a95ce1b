// Package classify maps raw space-weather readings onto severity bands. Every
// classifier is pure and total: unknown input yields an "Unknown" result
// rather than an error.
package classify

import (
	"errors"
	"fmt"

	"bandwatch/internal/models"
)

// Tone is the presentation hint attached to a classification
type Tone string

const (
	ToneUnknown Tone = "unknown"
	ToneGood    Tone = "good"
	ToneFair    Tone = "fair"
	ToneWarn    Tone = "warn"
	ToneBad     Tone = "bad"
	ToneSevere  Tone = "severe"
)

// LabelUnknown is used for every metric whose reading is unknown
const LabelUnknown = "Unknown"

// ErrUnsupportedMetric is returned by Classify for metrics it cannot parse
var ErrUnsupportedMetric = errors.New("unsupported metric")

// Classification is the severity band of one reading
type Classification struct {
	Metric models.Metric `json:"metric,omitempty"`
	Value  string        `json:"value"`
	Label  string        `json:"label"`
	Tone   Tone          `json:"tone"`
	Known  bool          `json:"known"`
	Scale  string        `json:"scale,omitempty"` // NOAA G or S scale level
}

func unknown(metric models.Metric) Classification {
	return Classification{Metric: metric, Value: "?", Label: LabelUnknown, Tone: ToneUnknown}
}

func known[T any](metric models.Metric, r models.Reading[T], label string, tone Tone) Classification {
	return Classification{Metric: metric, Value: r.String(), Label: label, Tone: tone, Known: true}
}

// SolarFlux classifies the 10.7cm solar flux index
func SolarFlux(r models.Reading[int]) Classification {
	n, ok := r.Get()
	if !ok {
		return unknown(models.MetricSFI)
	}
	switch {
	case n >= 200:
		return known(models.MetricSFI, r, "Excellent", ToneGood)
	case n >= 150:
		return known(models.MetricSFI, r, "Very good", ToneGood)
	case n >= 120:
		return known(models.MetricSFI, r, "Good", ToneGood)
	case n >= 90:
		return known(models.MetricSFI, r, "Medium", ToneFair)
	case n >= 70:
		return known(models.MetricSFI, r, "Low", ToneWarn)
	default:
		return known(models.MetricSFI, r, "Very low", ToneBad)
	}
}

// KIndex classifies the planetary K index. K5 and above map onto the NOAA
// G scale: K5 is G1, K6 is G2 and so on.
func KIndex(r models.Reading[int]) Classification {
	n, ok := r.Get()
	if !ok {
		return unknown(models.MetricKIndex)
	}
	switch {
	case n <= 1:
		return known(models.MetricKIndex, r, "Excellent", ToneGood)
	case n <= 3:
		return known(models.MetricKIndex, r, "Good/Fair", ToneFair)
	case n == 4:
		return known(models.MetricKIndex, r, "Poor", ToneWarn)
	case n == 5:
		c := known(models.MetricKIndex, r, "Storm G1", ToneBad)
		c.Scale = "G1"
		return c
	default:
		scale := fmt.Sprintf("G%d", n-4)
		c := known(models.MetricKIndex, r, "Storm "+scale+"+", ToneSevere)
		c.Scale = scale
		return c
	}
}

// AIndex classifies the planetary A index
func AIndex(r models.Reading[int]) Classification {
	n, ok := r.Get()
	if !ok {
		return unknown(models.MetricAIndex)
	}
	switch {
	case n <= 7:
		return known(models.MetricAIndex, r, "Quiet", ToneGood)
	case n <= 15:
		return known(models.MetricAIndex, r, "Slightly unsettled", ToneFair)
	case n <= 29:
		return known(models.MetricAIndex, r, "Unsettled", ToneWarn)
	case n <= 49:
		return known(models.MetricAIndex, r, "Active", ToneBad)
	default:
		return known(models.MetricAIndex, r, "Storm", ToneSevere)
	}
}

// Bz classifies the interplanetary magnetic field north-south component.
// A southward (negative) Bz couples with the magnetosphere.
func Bz(r models.Reading[float64]) Classification {
	v, ok := r.Get()
	if !ok {
		return unknown(models.MetricBz)
	}
	switch {
	case v >= 0:
		return known(models.MetricBz, r, "Neutral", ToneGood)
	case v >= -10:
		return known(models.MetricBz, r, "Caution", ToneWarn)
	default:
		return known(models.MetricBz, r, "Elevated risk", ToneBad)
	}
}

// ProtonFlux classifies >10 MeV proton flux on the NOAA S scale
func ProtonFlux(r models.Reading[float64]) Classification {
	v, ok := r.Get()
	if !ok {
		return unknown(models.MetricProtonFlux)
	}

	var c Classification
	switch {
	case v < 10:
		return known(models.MetricProtonFlux, r, "Normal", ToneGood)
	case v < 100:
		c = known(models.MetricProtonFlux, r, "S1", ToneWarn)
	case v < 1000:
		c = known(models.MetricProtonFlux, r, "S2", ToneBad)
	case v < 10000:
		c = known(models.MetricProtonFlux, r, "S3", ToneSevere)
	default:
		c = known(models.MetricProtonFlux, r, "S4+", ToneSevere)
		c.Scale = "S4"
		return c
	}
	c.Scale = c.Label
	return c
}

// Aurora classifies the HamQSL aurora activity level
func Aurora(r models.Reading[int]) Classification {
	n, ok := r.Get()
	if !ok {
		return unknown(models.MetricAurora)
	}
	switch {
	case n <= 2:
		return known(models.MetricAurora, r, "Normal", ToneGood)
	case n <= 4:
		return known(models.MetricAurora, r, "Active", ToneWarn)
	default:
		return known(models.MetricAurora, r, "Storm", ToneBad)
	}
}

// Band classifies one band condition. Unrecognized text is kept as the label.
func Band(c models.Condition) Classification {
	out := Classification{Value: c.Raw, Label: c.Display(), Known: true}
	switch c.Label {
	case models.ConditionGood:
		out.Tone = ToneGood
	case models.ConditionFair:
		out.Tone = ToneFair
	case models.ConditionPoor:
		out.Tone = ToneBad
	default:
		out.Tone = ToneUnknown
		out.Known = false
	}
	return out
}

// Classify parses a raw feed value for metric and classifies it
func Classify(metric models.Metric, raw string) (Classification, error) {
	switch metric {
	case models.MetricSFI:
		return SolarFlux(models.ParseInt(raw)), nil
	case models.MetricKIndex:
		return KIndex(models.ParseInt(raw)), nil
	case models.MetricAIndex:
		return AIndex(models.ParseInt(raw)), nil
	case models.MetricBz:
		return Bz(models.ParseFloat(raw)), nil
	case models.MetricProtonFlux:
		return ProtonFlux(models.ParseFloat(raw)), nil
	case models.MetricAurora:
		return Aurora(models.ParseInt(raw)), nil
	default:
		return unknown(metric), fmt.Errorf("%w: %q", ErrUnsupportedMetric, metric)
	}
}
