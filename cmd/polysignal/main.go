package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tzhao/polysignal/internal/config"
	"github.com/tzhao/polysignal/internal/delta"
	"github.com/tzhao/polysignal/internal/gamma"
	"github.com/tzhao/polysignal/internal/history"
	"github.com/tzhao/polysignal/internal/model"
	"github.com/tzhao/polysignal/internal/pipeline"
	"github.com/tzhao/polysignal/internal/registry"
	"github.com/tzhao/polysignal/internal/report"
	"github.com/tzhao/polysignal/internal/scheduler"
	"github.com/tzhao/polysignal/internal/store"
	"github.com/tzhao/polysignal/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/signalgen.local.yaml", "path to config file")
	alertsOnly := flag.Bool("alerts", false, "print major movers only and skip the history artifact")
	pollInterval := flag.Duration("poll", 0, "run continuously on this interval instead of once")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting signal run",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"api_url", cfg.API.BaseURL,
		"storage_driver", cfg.Storage.Driver,
		"watchlist_categories", len(cfg.Watchlist),
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Open the snapshot store
	st, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to open snapshot store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	logger.Info("snapshot store ready", "driver", cfg.Storage.Driver)

	// Build the category registry from the watchlist
	reg, err := registry.New(cfg.Categories())
	if err != nil {
		logger.Error("invalid watchlist", "error", err)
		os.Exit(1)
	}

	// Start metrics/health server for the duration of the run
	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: createHealthHandler(st, cfg.Metrics.Path),
	}

	go func() {
		logger.Info("starting metrics server", "port", cfg.Metrics.Port, "path", cfg.Metrics.Path)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// API client and pipeline live across cycles
	client := gamma.NewClient(
		cfg.API.BaseURL,
		gamma.WithLogger(logger),
		gamma.WithTimeout(cfg.API.Timeout),
		gamma.WithRetries(cfg.API.MaxRetries, time.Second),
	)

	pipe := pipeline.New(pipeline.Config{
		Thresholds: delta.Thresholds{
			Major:   cfg.Signals.MajorThreshold,
			Notable: cfg.Signals.NotableThreshold,
		},
		MinVolume24h: *cfg.Signals.MinVolume24h,
	}, st, reg, logger)

	// runOnce performs a full fetch-diff-persist-report cycle.
	runOnce := func(ctx context.Context) error {
		logger.Info("fetching markets",
			"limit", cfg.API.FetchLimit,
			"active_only", cfg.API.ActiveOnly,
		)

		raw, err := client.FetchMarkets(ctx, cfg.API.FetchLimit, cfg.API.ActiveOnly)
		if err != nil {
			return fmt.Errorf("market fetch: %w", err)
		}

		observedAt := time.Now().UTC()
		markets, skipped := gamma.Convert(raw, observedAt, logger)
		logger.Info("markets fetched",
			"fetched", len(raw),
			"converted", len(markets),
			"skipped", skipped,
		)

		signals, stats, runErr := pipe.Run(ctx, markets)
		if runErr != nil {
			logger.Error("run completed with storage errors",
				"storage_errors", stats.StorageErrors,
				"error", runErr,
			)
		}

		logger.Info("run complete",
			"tracked", stats.Tracked,
			"major", stats.Major,
			"notable", stats.Notable,
			"stable", stats.Stable,
			"skipped", stats.Skipped,
			"volume_filtered", stats.VolumeFiltered,
		)

		if *alertsOnly {
			fmt.Print(report.RenderDaily(observedAt, majorOnly(signals), stats))
			return runErr
		}

		run := history.NewRun(cfg.Instance.ID, observedAt, stats, signals)
		path, err := history.Write(cfg.History.Dir, run)
		if err != nil {
			return fmt.Errorf("write history artifact: %w", err)
		}
		logger.Info("history artifact written", "path", path, "run_id", run.RunID)

		fmt.Print(report.RenderDaily(observedAt, signals, stats))
		return runErr
	}

	exitCode := 0

	if *pollInterval > 0 {
		sched := scheduler.New(scheduler.Config{Interval: *pollInterval}, runOnce, logger)
		if err := sched.Start(ctx); err != nil {
			logger.Error("failed to start scheduler", "error", err)
			os.Exit(1)
		}

		// Wait for shutdown
		<-ctx.Done()

		logger.Info("shutting down...")
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer stopCancel()
		sched.Stop(stopCtx)
	} else if err := runOnce(ctx); err != nil {
		logger.Error("run failed", "error", err)
		exitCode = 1
	}

	// Graceful shutdown of metrics server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	healthServer.Shutdown(shutdownCtx)

	if exitCode != 0 {
		st.Close()
		os.Exit(exitCode)
	}
}

func majorOnly(signals []model.Signal) []model.Signal {
	out := make([]model.Signal, 0, len(signals))
	for _, s := range signals {
		if s.Class == model.ClassMajor {
			out = append(out, s)
		}
	}
	return out
}

// createHealthHandler creates the HTTP handler for health checks and metrics.
func createHealthHandler(st store.Store, metricsPath string) http.Handler {
	mux := http.NewServeMux()

	mux.Handle(metricsPath, promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string            `json:"status"`
			Components map[string]string `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]string),
		}

		if err := st.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["store"] = "disconnected: " + err.Error()
		} else {
			health.Components["store"] = "connected"
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	return mux
}
