package storage

import (
	"context"
	"sync"

	"bandwatch/internal/models"
)

// MemoryStore keeps baselines for the lifetime of the process only
type MemoryStore struct {
	mu     sync.RWMutex
	values map[models.Metric]int
}

// NewMemoryStore creates an empty in-memory baseline store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[models.Metric]int)}
}

// Get returns the stored baseline for metric
func (m *MemoryStore) Get(_ context.Context, metric models.Metric) (models.Reading[int], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[metric]
	if !ok {
		return models.Unknown[int](), nil
	}
	return models.Known(v), nil
}

// Set replaces the baseline for metric
func (m *MemoryStore) Set(_ context.Context, metric models.Metric, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[metric] = value
	return nil
}

// Close is a no-op
func (m *MemoryStore) Close() error {
	return nil
}
