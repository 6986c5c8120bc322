package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tzhao/polysignal/internal/config"
	"github.com/tzhao/polysignal/internal/model"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS market_snapshots (
	market_id   TEXT             NOT NULL,
	title       TEXT             NOT NULL,
	probability DOUBLE PRECISION NOT NULL,
	volume      DOUBLE PRECISION NOT NULL,
	observed_at TIMESTAMPTZ      NOT NULL,
	PRIMARY KEY (market_id, observed_at)
)`

// PostgresStore persists snapshots in PostgreSQL via a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects, pings, and ensures the snapshot schema exists.
// Pool sizing rides in the connection URL built from config.
func OpenPostgres(ctx context.Context, cfg config.DBConfig) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, BuildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, &StorageError{Op: "init", Err: err}
	}

	return &PostgresStore{pool: pool}, nil
}

// Put appends one snapshot row. Duplicate (market_id, observed_at) keys are
// dropped by ON CONFLICT DO NOTHING, keeping the log append-only and replays
// harmless.
func (s *PostgresStore) Put(ctx context.Context, m model.Market) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO market_snapshots (market_id, title, probability, volume, observed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (market_id, observed_at) DO NOTHING
	`, m.ID, m.Title, m.Probability, m.Volume, m.ObservedAt.UTC())
	if err != nil {
		return &StorageError{Op: "put", Err: err}
	}
	return nil
}

// LatestBefore returns the newest snapshot strictly before the given time
// for a market, or nil when the market has no history yet.
func (s *PostgresStore) LatestBefore(ctx context.Context, marketID string, before time.Time) (*model.Market, error) {
	var m model.Market
	err := s.pool.QueryRow(ctx, `
		SELECT market_id, title, probability, volume, observed_at
		FROM market_snapshots
		WHERE market_id = $1 AND observed_at < $2
		ORDER BY observed_at DESC
		LIMIT 1
	`, marketID, before.UTC()).Scan(&m.ID, &m.Title, &m.Probability, &m.Volume, &m.ObservedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "latest_before", Err: err}
	}

	m.ObservedAt = m.ObservedAt.UTC()
	return &m, nil
}

// Ping verifies the connection is healthy.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
