package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Reading holds a single field value taken from a feed, or the explicit
// "unknown" state when the field was absent or could not be parsed.
// The zero value is unknown.
type Reading[T any] struct {
	Value T
	Valid bool
}

// Known wraps a parsed value
func Known[T any](v T) Reading[T] {
	return Reading[T]{Value: v, Valid: true}
}

// Unknown returns the unknown sentinel for T
func Unknown[T any]() Reading[T] {
	return Reading[T]{}
}

// Get returns the value and whether it is known
func (r Reading[T]) Get() (T, bool) {
	return r.Value, r.Valid
}

// IsKnown reports whether the reading carries a value
func (r Reading[T]) IsKnown() bool {
	return r.Valid
}

// ValueOr returns the value, or fallback when unknown
func (r Reading[T]) ValueOr(fallback T) T {
	if !r.Valid {
		return fallback
	}
	return r.Value
}

// String renders the value, or "?" when unknown
func (r Reading[T]) String() string {
	if !r.Valid {
		return "?"
	}
	return fmt.Sprint(r.Value)
}

// MarshalJSON encodes unknown readings as null
func (r Reading[T]) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON decodes null as unknown
func (r *Reading[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Reading[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Known(v)
	return nil
}

// ParseInt parses an integer field. Decimal text is truncated toward zero
// ("2.33" -> 2). Empty, non-numeric, NaN and infinite input is unknown.
func ParseInt(raw string) Reading[int] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Unknown[int]()
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Known(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Unknown[int]()
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return Unknown[int]()
	}
	return Known(int(math.Trunc(f)))
}

// ParseFloat parses a decimal field. Empty, non-numeric, NaN and infinite
// input is unknown.
func ParseFloat(raw string) Reading[float64] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Unknown[float64]()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Unknown[float64]()
	}
	return Known(f)
}

// FirstText returns the first value trimmed, or unknown when there is none.
// An element that is present but empty yields a known empty string.
func FirstText(values []string) Reading[string] {
	if len(values) == 0 {
		return Unknown[string]()
	}
	return Known(strings.TrimSpace(values[0]))
}
