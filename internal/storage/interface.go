package storage

import (
	"errors"

	"bandwatch/internal/trend"
)

// ErrUnsupportedBackend is returned by NewBaselineStore for unknown backends
var ErrUnsupportedBackend = errors.New("unsupported baseline backend")

// BaselineStore is a trend.Store that holds resources which must be released
type BaselineStore interface {
	trend.Store

	// Close releases the underlying client or file handle
	Close() error
}
