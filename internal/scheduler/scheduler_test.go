package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerRunsImmediately(t *testing.T) {
	var calls atomic.Int64

	s := New(Config{Interval: time.Hour}, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, nil)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if calls.Load() != 1 {
		t.Errorf("cycle calls = %d, want 1", calls.Load())
	}
}

func TestSchedulerContinuesAfterCycleError(t *testing.T) {
	var calls atomic.Int64

	s := New(Config{Interval: 20 * time.Millisecond}, func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("transient")
	}, nil)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if calls.Load() < 3 {
		t.Errorf("cycle calls = %d, want >= 3 despite errors", calls.Load())
	}
}

func TestSchedulerStopWaitsForInflightCycle(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool

	s := New(Config{Interval: time.Hour}, func(ctx context.Context) error {
		close(started)
		<-release
		finished.Store(true)
		return nil
	}, nil)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	<-started

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(release)
	}()

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if !finished.Load() {
		t.Error("Stop() returned before the in-flight cycle finished")
	}
}
