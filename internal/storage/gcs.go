package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"bandwatch/internal/logger"
	"bandwatch/internal/models"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore persists baselines as one JSON object in a Google Cloud Storage bucket
type GCSStore struct {
	mu     sync.Mutex
	client *storage.Client
	bucket string
	object string
}

// NewGCSStore creates a GCS-backed store. A non-empty endpoint points the
// client at an emulator and disables authentication.
func NewGCSStore(ctx context.Context, bucketName, objectPath, endpoint string) (*GCSStore, error) {
	var opts []option.ClientOption
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint), option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStore{
		client: client,
		bucket: bucketName,
		object: objectPath,
	}, nil
}

// Close closes the GCS client
func (g *GCSStore) Close() error {
	return g.client.Close()
}

// Get returns the stored baseline for metric
func (g *GCSStore) Get(ctx context.Context, metric models.Metric) (models.Reading[int], error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	doc, err := g.load(ctx)
	if err != nil {
		return models.Unknown[int](), err
	}
	return doc.get(metric), nil
}

// Set replaces the baseline for metric with a read-modify-write of the object
func (g *GCSStore) Set(ctx context.Context, metric models.Metric, value int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	doc, err := g.load(ctx)
	if err != nil {
		return err
	}
	doc.Values[metric] = value
	doc.UpdatedAt = time.Now().UTC()

	data, err := doc.encode()
	if err != nil {
		return err
	}

	writer := g.client.Bucket(g.bucket).Object(g.object).NewWriter(ctx)
	writer.ContentType = GetContentType(g.object)
	writer.CacheControl = "no-store"
	writer.Metadata = map[string]string{
		"updated-at": doc.UpdatedAt.Format(time.RFC3339),
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write baselines to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS baseline upload: %w", err)
	}

	logger.Debugf("Baselines stored to gs://%s/%s", g.bucket, g.object)
	return nil
}

func (g *GCSStore) load(ctx context.Context) (*baselineDocument, error) {
	reader, err := g.client.Bucket(g.bucket).Object(g.object).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return newBaselineDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for gs://%s/%s: %w", g.bucket, g.object, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read gs://%s/%s: %w", g.bucket, g.object, err)
	}
	return decodeBaselineDocument(data)
}
