package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tzhao/polysignal/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS market_snapshots (
	market_id   TEXT    NOT NULL,
	title       TEXT    NOT NULL,
	probability REAL    NOT NULL,
	volume      REAL    NOT NULL,
	observed_at INTEGER NOT NULL,
	PRIMARY KEY (market_id, observed_at)
)`

// SQLiteStore persists snapshots in a local SQLite file. Timestamps are
// stored as microseconds since epoch so the primary key orders correctly.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the SQLite file and ensures the
// snapshot schema exists. WAL mode keeps concurrent backtest reads safe
// while an observation run is writing.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		db.Close()
		return nil, &StorageError{Op: "init", Err: err}
	}
	if _, err := db.ExecContext(ctx, "PRAGMA synchronous = NORMAL;"); err != nil {
		db.Close()
		return nil, &StorageError{Op: "init", Err: err}
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, &StorageError{Op: "init", Err: err}
	}

	return &SQLiteStore{db: db}, nil
}

// Put appends one snapshot row. INSERT OR IGNORE drops duplicate
// (market_id, observed_at) keys, so replaying a run is a no-op.
func (s *SQLiteStore) Put(ctx context.Context, m model.Market) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO market_snapshots (market_id, title, probability, volume, observed_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, m.Title, m.Probability, m.Volume, m.ObservedAt.UTC().UnixMicro())
	if err != nil {
		return &StorageError{Op: "put", Err: err}
	}
	return nil
}

// LatestBefore returns the newest snapshot strictly before the given time
// for a market, or nil when the market has no history yet.
func (s *SQLiteStore) LatestBefore(ctx context.Context, marketID string, before time.Time) (*model.Market, error) {
	var (
		m          model.Market
		observedAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT market_id, title, probability, volume, observed_at
		FROM market_snapshots
		WHERE market_id = ? AND observed_at < ?
		ORDER BY observed_at DESC
		LIMIT 1
	`, marketID, before.UTC().UnixMicro()).Scan(&m.ID, &m.Title, &m.Probability, &m.Volume, &observedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "latest_before", Err: err}
	}

	m.ObservedAt = time.UnixMicro(observedAt).UTC()
	return &m, nil
}

// Ping verifies the database file is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
