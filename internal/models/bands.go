package models

import "strings"

// ConditionLabel is the normalized rating HamQSL publishes per band group
type ConditionLabel string

const (
	ConditionGood    ConditionLabel = "good"
	ConditionFair    ConditionLabel = "fair"
	ConditionPoor    ConditionLabel = "poor"
	ConditionUnrated ConditionLabel = "unrated"
)

// Condition is a rated band condition. Raw keeps the source text so an
// unrated value can still be displayed as published.
type Condition struct {
	Label ConditionLabel `json:"label"`
	Raw   string         `json:"raw"`
}

// ParseCondition maps source text to a Condition. Matching is
// case-insensitive on trimmed text; anything else is unrated.
func ParseCondition(raw string) Condition {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "good":
		return Condition{Label: ConditionGood, Raw: raw}
	case "fair":
		return Condition{Label: ConditionFair, Raw: raw}
	case "poor":
		return Condition{Label: ConditionPoor, Raw: raw}
	default:
		return Condition{Label: ConditionUnrated, Raw: raw}
	}
}

// Display returns the text a UI should show for this condition
func (c Condition) Display() string {
	switch c.Label {
	case ConditionGood:
		return "Good"
	case ConditionFair:
		return "Fair"
	case ConditionPoor:
		return "Poor"
	}
	if c.Raw == "" {
		return "?"
	}
	return c.Raw
}

// BandTimes holds the day and night condition of one band group
type BandTimes struct {
	Day   Condition `json:"day"`
	Night Condition `json:"night"`
}

// BandConditions maps a HamQSL group key (e.g. "80m-40m") to its conditions
type BandConditions map[string]BandTimes

// BandGroup links a display band to the condition group HamQSL publishes it under.
// Shared marks bands that repeat the indicator of the band listed before them.
type BandGroup struct {
	Name   string `json:"name"`
	Group  string `json:"group"`
	Shared bool   `json:"shared"`
}

// bandTable is the fixed display order. HamQSL provides one condition per
// group, shared by the bands in it.
var bandTable = [...]BandGroup{
	{Name: "80m", Group: "80m-40m"},
	{Name: "40m", Group: "80m-40m", Shared: true},
	{Name: "30m", Group: "30m-20m"},
	{Name: "20m", Group: "30m-20m", Shared: true},
	{Name: "17m", Group: "17m-15m"},
	{Name: "15m", Group: "17m-15m", Shared: true},
	{Name: "12m", Group: "12m-10m"},
	{Name: "10m", Group: "12m-10m", Shared: true},
}

// Bands returns a copy of the band table in display order
func Bands() []BandGroup {
	out := make([]BandGroup, len(bandTable))
	copy(out, bandTable[:])
	return out
}

// BandsInGroup returns the display bands published under group, in order
func BandsInGroup(group string) []BandGroup {
	var out []BandGroup
	for _, b := range bandTable {
		if b.Group == group {
			out = append(out, b)
		}
	}
	return out
}

// GroupForBand returns the group key for a display band name
func GroupForBand(name string) (string, bool) {
	for _, b := range bandTable {
		if b.Name == name {
			return b.Group, true
		}
	}
	return "", false
}
