// Package sqlite persists the GDPR vector index in a SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. The index lives in a single file, index.db, inside the
// configured index directory. It holds two tables:
//
//   - manifest: one row describing the build (embedding model, dimensions, chunk count)
//   - entries: one row per chunk, in insertion order, with its vector as a
//     little-endian float32 blob
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory.
//
// # Writes
//
// Save writes a fresh database next to the live one and renames it into
// place, so a reader never observes a half-written index.
package sqlite
