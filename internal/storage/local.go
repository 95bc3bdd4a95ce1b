package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"bandwatch/internal/models"
)

// LocalBaselineFile is the file name used inside the baseline directory
const LocalBaselineFile = "baselines.json"

// LocalStore persists baselines as a JSON document on the local file system
type LocalStore struct {
	mu   sync.Mutex
	path string
}

// NewLocalStore creates a file-backed store in baseDir, creating the directory if needed
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}

	return &LocalStore{
		path: filepath.Join(baseDir, LocalBaselineFile),
	}, nil
}

// Path returns the location of the baseline document
func (l *LocalStore) Path() string {
	return l.path
}

// Get returns the stored baseline for metric
func (l *LocalStore) Get(_ context.Context, metric models.Metric) (models.Reading[int], error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.load()
	if err != nil {
		return models.Unknown[int](), err
	}
	return doc.get(metric), nil
}

// Set replaces the baseline for metric. The document is rewritten through a
// temporary file and a rename so a crash never leaves it half written.
func (l *LocalStore) Set(_ context.Context, metric models.Metric, value int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.load()
	if err != nil {
		return err
	}
	doc.Values[metric] = value
	doc.UpdatedAt = time.Now().UTC()

	data, err := doc.encode()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.path), LocalBaselineFile+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", l.path, err)
	}
	return nil
}

// Close is a no-op for local storage
func (l *LocalStore) Close() error {
	return nil
}

func (l *LocalStore) load() (*baselineDocument, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return newBaselineDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", l.path, err)
	}
	return decodeBaselineDocument(data)
}
