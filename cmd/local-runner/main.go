package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bandwatch/internal/config"
	"bandwatch/internal/fetchers"
	"bandwatch/internal/logger"
	"bandwatch/internal/mocks"
	"bandwatch/internal/observability"
	"bandwatch/internal/refresh"
	"bandwatch/internal/storage"
	"bandwatch/internal/trend"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type runOptions struct {
	cycles   int
	pause    time.Duration
	backend  string
	dir      string
	compact  bool
	fixtures string
}

func newRootCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "local-runner",
		Short: "Run refresh cycles against the live feeds and print each snapshot as JSON",
		Long: `local-runner fetches the HamQSL solar feed and the NOAA 3-day forecast,
classifies the result and prints the engine snapshot after every cycle.
Configuration is read from the same environment variables as the service;
flags override the baseline store settings.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().IntVarP(&opts.cycles, "cycles", "n", 1, "number of refresh cycles to run")
	cmd.Flags().DurationVar(&opts.pause, "pause", 5*time.Second, "pause between cycles")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "baseline store backend (memory, local, sqlite, gcs, valkey); defaults to BASELINE_BACKEND")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "baseline directory for the local backend; defaults to BASELINE_DIR")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "print one snapshot per line")
	cmd.Flags().StringVar(&opts.fixtures, "fixtures", "", "read recorded feed responses from this directory instead of the network")

	return cmd
}

func run(ctx context.Context, opts *runOptions, out, logOut io.Writer) error {
	if opts.cycles < 1 {
		return fmt.Errorf("--cycles must be at least 1, got %d", opts.cycles)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if opts.backend != "" {
		cfg.BaselineBackend = opts.backend
	}
	if opts.dir != "" {
		cfg.BaselineDir = opts.dir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Snapshots own stdout; logs go to stderr
	level, ok := logger.ParseLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	logger.SetGlobalLogger(logger.New(logger.Config{
		Level:     level,
		Format:    logger.TextFormat,
		Output:    logOut,
		Component: "local-runner",
	}))

	store, err := storage.NewBaselineStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize baseline store: %w", err)
	}
	defer store.Close()

	metrics := observability.NewMetricsWithRegistry(prometheus.NewRegistry())

	var source refresh.SourceFetcher = fetchers.NewDataFetcher(cfg, metrics)
	if opts.fixtures != "" {
		source = mocks.NewFixtureFetcher(opts.fixtures, cfg.ForecastPlaceholder)
	}

	orch := refresh.New(
		source,
		trend.NewTracker(store, metrics),
		clockwork.NewRealClock(),
		cfg.RefreshInterval,
		metrics,
	)

	enc := json.NewEncoder(out)
	if !opts.compact {
		enc.SetIndent("", "  ")
	}

	for i := 1; i <= opts.cycles; i++ {
		start := time.Now()
		snap := orch.Refresh(ctx)
		logger.Info("Refresh cycle finished", map[string]interface{}{
			"cycle":    i,
			"fresh":    snap.Fresh,
			"duration": time.Since(start).String(),
		})
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}

		if i == opts.cycles {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(opts.pause):
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
