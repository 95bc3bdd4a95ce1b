package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bandwatch/internal/models"
	"bandwatch/internal/trend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"
)

var (
	_ trend.Store   = (*MemoryStore)(nil)
	_ BaselineStore = (*MemoryStore)(nil)
	_ BaselineStore = (*LocalStore)(nil)
	_ BaselineStore = (*SQLiteStore)(nil)
	_ BaselineStore = (*GCSStore)(nil)
	_ BaselineStore = (*ValkeyStore)(nil)
)

// exerciseStore checks the contract every backend must honor
func exerciseStore(t *testing.T, store BaselineStore) {
	t.Helper()
	ctx := context.Background()

	got, err := store.Get(ctx, models.MetricSFI)
	require.NoError(t, err)
	assert.False(t, got.IsKnown(), "empty store must report unknown")

	require.NoError(t, store.Set(ctx, models.MetricSFI, 100))
	require.NoError(t, store.Set(ctx, models.MetricKIndex, 3))
	require.NoError(t, store.Set(ctx, models.MetricSFI, 120))

	got, err = store.Get(ctx, models.MetricSFI)
	require.NoError(t, err)
	assert.Equal(t, models.Known(120), got)

	got, err = store.Get(ctx, models.MetricKIndex)
	require.NoError(t, err)
	assert.Equal(t, models.Known(3), got)

	require.NoError(t, store.Set(ctx, models.MetricKIndex, 0))
	got, err = store.Get(ctx, models.MetricKIndex)
	require.NoError(t, err)
	assert.Equal(t, models.Known(0), got, "zero is a real baseline")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(filepath.Join(t.TempDir(), "nested", "dir"))
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sfi": 120`)

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temp file left behind: %s", e.Name())
	}
}

func TestLocalStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewLocalStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, models.MetricSFI, 142))

	second, err := NewLocalStore(dir)
	require.NoError(t, err)
	got, err := second.Get(ctx, models.MetricSFI)
	require.NoError(t, err)
	assert.Equal(t, models.Known(142), got)
}

func TestLocalStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, LocalBaselineFile), []byte("{not json"), 0644))

	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), models.MetricSFI)
	assert.Error(t, err)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "baselines.db")
	store, err := NewSQLiteStore(context.Background(), path)
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baselines.db")
	ctx := context.Background()

	first, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, models.MetricKIndex, 5))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, models.MetricKIndex)
	require.NoError(t, err)
	assert.Equal(t, models.Known(5), got)
}

func TestGCSStore_UnreachableEndpoint(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	store, err := NewGCSStore(ctx, "bandwatch-test", "baselines/previous.json", "http://127.0.0.1:1/storage/v1/")
	require.NoError(t, err, "an emulator endpoint must not require credentials")
	defer store.Close()

	_, err = store.Get(ctx, models.MetricSFI)
	assert.Error(t, err)
}

// Runs against a live server when VALKEY_ADDR is set.
func TestValkeyStore(t *testing.T) {
	addr := os.Getenv("VALKEY_ADDR")
	if addr == "" {
		t.Skip("VALKEY_ADDR not set")
	}

	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	require.NoError(t, err)

	prefix := "bandwatch-test-" + time.Now().Format("150405.000000")
	store := NewValkeyStore(client, prefix)
	defer store.Close()

	t.Cleanup(func() {
		ctx := context.Background()
		for _, m := range models.TrackedMetrics {
			_ = client.Do(ctx, client.B().Del().Key(store.key(m)).Build()).Error()
		}
	})

	exerciseStore(t, store)
}

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "application/json", GetContentType("baselines/previous.json"))
	assert.Equal(t, "application/octet-stream", GetContentType("notes.txt"))
	assert.Equal(t, "application/octet-stream", GetContentType("baselines"))
}
