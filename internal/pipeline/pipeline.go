package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/tzhao/polysignal/internal/delta"
	"github.com/tzhao/polysignal/internal/metrics"
	"github.com/tzhao/polysignal/internal/model"
	"github.com/tzhao/polysignal/internal/registry"
	"github.com/tzhao/polysignal/internal/store"
)

// Config holds per-run pipeline settings.
type Config struct {
	Thresholds delta.Thresholds

	// MinVolume24h excludes low-volume markets from the output signal list.
	// They are still persisted so their history stays continuous.
	MinVolume24h float64
}

// Stats summarizes one run for the report renderer.
type Stats struct {
	Tracked        int `json:"tracked"` // Signals in the output sequence
	Major          int `json:"major"`
	Notable        int `json:"notable"`
	Stable         int `json:"stable"`
	Skipped        int `json:"skipped"`         // Malformed input records dropped
	VolumeFiltered int `json:"volume_filtered"` // Persisted but excluded from output
	StorageErrors  int `json:"storage_errors"`
}

// Pipeline wires the delta engine, category resolver, and snapshot store.
type Pipeline struct {
	cfg      Config
	store    store.Store
	registry *registry.Registry
	logger   *slog.Logger
}

// New creates a pipeline. The registry must already be validated; an empty
// registry never reaches this point.
func New(cfg Config, st store.Store, reg *registry.Registry, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:      cfg,
		store:    st,
		registry: reg,
		logger:   logger,
	}
}

// Run processes markets in input order and returns the output signal
// sequence plus run stats.
//
// Malformed records are skipped and counted. Storage failures are collected
// and returned joined after the full pass; the affected markets' signals are
// still in the output. A context cancellation aborts the pass.
func (p *Pipeline) Run(ctx context.Context, markets []model.Market) ([]model.Signal, Stats, error) {
	start := time.Now()

	signals := make([]model.Signal, 0, len(markets))
	var stats Stats
	var errs []error

	for _, m := range markets {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if err := validate(m); err != nil {
			stats.Skipped++
			metrics.RecordsSkipped.Inc()
			p.logger.Warn("skipping malformed market record", "id", m.ID, "err", err)
			continue
		}

		metrics.MarketsProcessed.Inc()

		prior, err := p.store.LatestBefore(ctx, m.ID, m.ObservedAt)
		if err != nil {
			// Without a readable history the delta would be wrong, so no
			// signal is emitted, but the observation is still persisted to
			// keep the baseline intact.
			stats.StorageErrors++
			metrics.StorageErrors.Inc()
			errs = append(errs, fmt.Errorf("market %s: %w", m.ID, err))
			p.putSnapshot(ctx, m, &stats, &errs)
			continue
		}

		var priorProb *float64
		if prior != nil {
			priorProb = &prior.Probability
		}

		d, class := delta.Classify(priorProb, m.Probability, p.cfg.Thresholds)

		sig := model.Signal{
			MarketID:   m.ID,
			Title:      m.Title,
			Prior:      priorProb,
			Current:    m.Probability,
			Delta:      d,
			Class:      class,
			Volume:     m.Volume,
			ObservedAt: m.ObservedAt,
		}

		if cat := p.registry.Resolve(m.Title); cat != nil {
			sig.Category = cat.Name
			sig.Tickers = cat.Tickers
		}

		// Persist before the volume filter: below-threshold markets still
		// contribute to future deltas once volume recovers.
		p.putSnapshot(ctx, m, &stats, &errs)

		if m.Volume < p.cfg.MinVolume24h {
			stats.VolumeFiltered++
			continue
		}

		signals = append(signals, sig)
		stats.Tracked++
		switch class {
		case model.ClassMajor:
			stats.Major++
		case model.ClassNotable:
			stats.Notable++
		default:
			stats.Stable++
		}
		metrics.SignalsTotal.WithLabelValues(string(class)).Inc()
	}

	metrics.RunDuration.Observe(time.Since(start).Seconds())

	p.logger.Info("pipeline run complete",
		"markets", len(markets),
		"tracked", stats.Tracked,
		"major", stats.Major,
		"notable", stats.Notable,
		"skipped", stats.Skipped,
		"storage_errors", stats.StorageErrors,
		"duration", time.Since(start),
	)

	return signals, stats, errors.Join(errs...)
}

func (p *Pipeline) putSnapshot(ctx context.Context, m model.Market, stats *Stats, errs *[]error) {
	if err := p.store.Put(ctx, m); err != nil {
		stats.StorageErrors++
		metrics.StorageErrors.Inc()
		*errs = append(*errs, fmt.Errorf("market %s: %w", m.ID, err))
		p.logger.Error("failed to persist snapshot", "id", m.ID, "err", err)
		return
	}
	metrics.SnapshotsWritten.Inc()
}

// validate rejects records the delta engine and store cannot handle.
func validate(m model.Market) error {
	if m.ID == "" {
		return errors.New("missing market id")
	}
	if math.IsNaN(m.Probability) || m.Probability < 0 || m.Probability > 1 {
		return fmt.Errorf("probability %v outside [0,1]", m.Probability)
	}
	if m.ObservedAt.IsZero() {
		return errors.New("missing observation time")
	}
	return nil
}
