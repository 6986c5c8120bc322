// Package store implements the durable snapshot store: an append-only log of
// market observations keyed by (market id, observed_at).
//
// Rows are never updated or deleted. Re-inserting an existing key is a no-op
// (first write wins), so replaying a run cannot corrupt prior lookups.
//
// Two backends share the Store interface:
//   - PostgreSQL via pgx (production)
//   - SQLite via modernc.org/sqlite (local, zero-dependency deployments)
//
// Both support concurrent readers while a write pass is in progress; SQLite
// runs in WAL mode for that reason.
package store
