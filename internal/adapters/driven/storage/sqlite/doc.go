// Package sqlite implements the driven storage ports on a single
// SQLite database.
//
// The adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, keeping the binary trivially cross-compilable.
// One database connection backs every store interface:
//
//   - PartyStore: seeded party reference data
//   - SourceStore: ingested source lookups
//   - ChunkStore: candidate rows for similarity search
//   - DocumentWriter: transactional source/content/chunk writes
//   - ProcessingLogStore: ingestion idempotency ledger
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory and applied at open. The two tracked parties
// are seeded by the initial migration.
//
// # Data Location
//
// By default the database lives at ~/.policyscan/data/policyscan.db.
//
// # Thread Safety
//
// All operations are safe for concurrent use. The store relies on
// SQLite's own locking in WAL mode.
package sqlite
