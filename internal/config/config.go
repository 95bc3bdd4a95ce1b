package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Baseline store backends
const (
	BackendMemory = "memory"
	BackendLocal  = "local"
	BackendGCS    = "gcs"
	BackendValkey = "valkey"
	BackendSQLite = "sqlite"
)

// Config holds all configuration for the propagation data engine
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981"`

	// Data source URLs
	HamQSLURL   string `env:"HAMQSL_URL,default=https://www.hamqsl.com/solarxml.php"`
	RelayURL    string `env:"HAMQSL_RELAY_URL,default=https://corsproxy.io/?"`
	ForecastURL string `env:"NOAA_FORECAST_URL,default=https://services.swpc.noaa.gov/text/3-day-forecast.txt"`

	// Shown instead of the NOAA forecast when it cannot be fetched
	ForecastPlaceholder string `env:"FORECAST_PLACEHOLDER,default=(NOAA forecast unavailable)"`

	// Refresh cadence
	RefreshInterval    time.Duration `env:"REFRESH_INTERVAL,default=15m"`
	RefreshMinInterval time.Duration `env:"REFRESH_MIN_INTERVAL,default=10s"`
	HTTPTimeout        time.Duration `env:"HTTP_TIMEOUT,default=30s"`

	// Trend baseline persistence
	BaselineBackend    string `env:"BASELINE_BACKEND,default=local"`
	BaselineDir        string `env:"BASELINE_DIR,default=./data"`
	BaselineSQLitePath string `env:"BASELINE_SQLITE_PATH,default=./data/baselines.db"`
	GCSBucket          string `env:"GCS_BUCKET"`
	GCSObject          string `env:"GCS_OBJECT,default=baselines/previous.json"`
	GCSEndpoint        string `env:"GCS_ENDPOINT"`
	ValkeyAddr         string `env:"VALKEY_ADDR,default=localhost:6379"`
	ValkeyPrefix       string `env:"VALKEY_PREFIX,default=bandwatch"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=json"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express as tags
func (c *Config) Validate() error {
	if c.HamQSLURL == "" {
		return errors.New("HAMQSL_URL is required")
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL must be positive, got %s", c.RefreshInterval)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	if c.RefreshMinInterval < 0 {
		return fmt.Errorf("REFRESH_MIN_INTERVAL must not be negative, got %s", c.RefreshMinInterval)
	}

	switch c.BaselineBackend {
	case BackendMemory:
	case BackendLocal:
		if c.BaselineDir == "" {
			return errors.New("BASELINE_DIR is required for the local baseline backend")
		}
	case BackendSQLite:
		if c.BaselineSQLitePath == "" {
			return errors.New("BASELINE_SQLITE_PATH is required for the sqlite baseline backend")
		}
	case BackendGCS:
		if c.GCSBucket == "" {
			return errors.New("GCS_BUCKET is required for the gcs baseline backend")
		}
	case BackendValkey:
		if c.ValkeyAddr == "" {
			return errors.New("VALKEY_ADDR is required for the valkey baseline backend")
		}
	default:
		return fmt.Errorf("unsupported BASELINE_BACKEND %q", c.BaselineBackend)
	}
	return nil
}
