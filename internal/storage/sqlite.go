package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bandwatch/internal/models"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	sqliteQueryTimeout = 5 * time.Second

	createBaselinesSQL = `
	CREATE TABLE IF NOT EXISTS baselines (
		metric TEXT PRIMARY KEY,
		value INTEGER NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	PRAGMA journal_mode=WAL;
	`

	selectBaselineSQL = `SELECT value FROM baselines WHERE metric = ?`

	upsertBaselineSQL = `
	INSERT INTO baselines (metric, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(metric) DO UPDATE SET
		value = excluded.value,
		updated_at = excluded.updated_at`
)

var (
	errFailedOpenDB = errors.New("failed to open database")
	errFailedToInit = errors.New("failed to initialize schema")
)

// SQLiteStore persists baselines in a single-table SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and initializes the schema
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedOpenDB, err)
	}
	// A single connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(ctx, sqliteQueryTimeout)
	defer cancel()

	if _, err := db.ExecContext(ctx, createBaselinesSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", errFailedToInit, err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get returns the stored baseline for metric
func (s *SQLiteStore) Get(ctx context.Context, metric models.Metric) (models.Reading[int], error) {
	ctx, cancel := context.WithTimeout(ctx, sqliteQueryTimeout)
	defer cancel()

	var value int
	err := s.db.QueryRowContext(ctx, selectBaselineSQL, string(metric)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Unknown[int](), nil
	}
	if err != nil {
		return models.Unknown[int](), fmt.Errorf("failed to query baseline %s: %w", metric, err)
	}
	return models.Known(value), nil
}

// Set replaces the baseline for metric
func (s *SQLiteStore) Set(ctx context.Context, metric models.Metric, value int) error {
	ctx, cancel := context.WithTimeout(ctx, sqliteQueryTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, upsertBaselineSQL, string(metric), value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to upsert baseline %s: %w", metric, err)
	}
	return nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
