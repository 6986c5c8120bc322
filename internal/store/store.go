package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tzhao/polysignal/internal/config"
	"github.com/tzhao/polysignal/internal/model"
)

// Store is the durable snapshot log.
type Store interface {
	// Put appends one observation. Writing a (market id, observed_at) key
	// that already exists is a silent no-op. Returns a *StorageError when
	// the persistence medium fails.
	Put(ctx context.Context, m model.Market) error

	// LatestBefore returns the most recent snapshot strictly before the
	// given time for the market id, or nil when no prior snapshot exists.
	LatestBefore(ctx context.Context, marketID string, before time.Time) (*model.Market, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close() error
}

// StorageError wraps a persistence medium failure (connection loss, disk
// full, permission denied). Callers use errors.As to distinguish systemic
// storage failures from per-record problems.
type StorageError struct {
	Op  string // "put", "latest_before", "init"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err wraps a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// Open constructs the configured backend and ensures its schema exists.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "postgres":
		return OpenPostgres(ctx, cfg.Postgres)
	case "sqlite":
		return OpenSQLite(ctx, cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
