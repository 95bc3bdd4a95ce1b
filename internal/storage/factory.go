package storage

import (
	"context"
	"fmt"
	"time"

	"bandwatch/internal/config"
	"bandwatch/internal/logger"

	"github.com/valkey-io/valkey-go"
)

const valkeyPingTimeout = 2 * time.Second

// NewBaselineStore creates the baseline store selected by cfg.BaselineBackend.
// An unreachable Valkey server falls back to the memory store so trends still
// work within one process lifetime.
func NewBaselineStore(ctx context.Context, cfg *config.Config) (BaselineStore, error) {
	log := logger.GetGlobalLogger().WithComponent("storage")

	switch cfg.BaselineBackend {
	case config.BackendMemory:
		return NewMemoryStore(), nil

	case config.BackendLocal:
		dir := cfg.BaselineDir
		if dir == "" {
			dir = "data"
		}
		store, err := NewLocalStore(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local baseline store: %w", err)
		}
		log.Info("Local baseline store enabled", map[string]interface{}{"path": store.Path()})
		return store, nil

	case config.BackendSQLite:
		store, err := NewSQLiteStore(ctx, cfg.BaselineSQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite baseline store: %w", err)
		}
		log.Info("SQLite baseline store enabled", map[string]interface{}{"path": cfg.BaselineSQLitePath})
		return store, nil

	case config.BackendGCS:
		store, err := NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSObject, cfg.GCSEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS baseline store: %w", err)
		}
		log.Info("GCS baseline store enabled", map[string]interface{}{
			"bucket": cfg.GCSBucket,
			"object": cfg.GCSObject,
		})
		return store, nil

	case config.BackendValkey:
		client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{cfg.ValkeyAddr}})
		if err != nil {
			log.Error("Failed to create valkey client, falling back to memory store", err)
			return NewMemoryStore(), nil
		}
		pingCtx, cancel := context.WithTimeout(ctx, valkeyPingTimeout)
		defer cancel()
		if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
			log.Error("Valkey ping failed, falling back to memory store", err)
			client.Close()
			return NewMemoryStore(), nil
		}
		log.Info("Valkey baseline store enabled", map[string]interface{}{"addr": cfg.ValkeyAddr})
		return NewValkeyStore(client, cfg.ValkeyPrefix), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, cfg.BaselineBackend)
	}
}
