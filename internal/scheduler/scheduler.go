package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// CycleFunc runs one fetch-diff-persist cycle. Errors are logged and the
// schedule continues; a cycle failure never stops the loop.
type CycleFunc func(ctx context.Context) error

// Config holds scheduler configuration.
type Config struct {
	Interval time.Duration // Cycle interval (default: 1h)
	Timeout  time.Duration // Per-cycle timeout (default: 10m)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: time.Hour,
		Timeout:  10 * time.Minute,
	}
}

// Scheduler runs a cycle function on a fixed interval.
type Scheduler struct {
	cfg    Config
	cycle  CycleFunc
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Scheduler.
func New(cfg Config, cycle CycleFunc, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Scheduler{
		cfg:    cfg,
		cycle:  cycle,
		logger: logger,
	}
}

// Start begins the cycle loop. The first cycle runs immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.run()

	s.logger.Info("scheduler started", "interval", s.cfg.Interval)

	return nil
}

// Stop gracefully shuts down the scheduler, waiting for an in-flight cycle.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main cycle loop.
func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	// Run immediately on start.
	s.runCycle()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runCycle()
		}
	}
}

func (s *Scheduler) runCycle() {
	start := time.Now()

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.Timeout)
	defer cancel()

	if err := s.cycle(ctx); err != nil {
		s.logger.Warn("cycle failed",
			"err", err,
			"duration", time.Since(start),
		)
		return
	}

	s.logger.Info("cycle complete", "duration", time.Since(start))
}
