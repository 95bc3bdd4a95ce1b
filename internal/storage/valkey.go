package storage

import (
	"context"
	"fmt"
	"strconv"

	"bandwatch/internal/models"

	"github.com/valkey-io/valkey-go"
)

// ValkeyStore persists baselines as plain integer keys in a Valkey-compatible database
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "bandwatch"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get returns the stored baseline for metric
func (s *ValkeyStore) Get(ctx context.Context, metric models.Metric) (models.Reading[int], error) {
	resp := s.client.Do(ctx, s.client.B().Get().Key(s.key(metric)).Build())
	payload, err := resp.ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return models.Unknown[int](), nil
		}
		return models.Unknown[int](), fmt.Errorf("failed to read baseline %s: %w", metric, err)
	}

	v, err := strconv.Atoi(payload)
	if err != nil {
		return models.Unknown[int](), fmt.Errorf("corrupt baseline %s=%q: %w", metric, payload, err)
	}
	return models.Known(v), nil
}

// Set replaces the baseline for metric
func (s *ValkeyStore) Set(ctx context.Context, metric models.Metric, value int) error {
	cmd := s.client.B().Set().Key(s.key(metric)).Value(strconv.Itoa(value)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to write baseline %s: %w", metric, err)
	}
	return nil
}

// Close closes the Valkey client
func (s *ValkeyStore) Close() error {
	s.client.Close()
	return nil
}

func (s *ValkeyStore) key(metric models.Metric) string {
	return fmt.Sprintf("%s:baseline:%s", s.prefix, metric)
}
