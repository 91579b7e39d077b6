// Package sqlite provides a SQLite-backed SourceStore using the pure-Go
// modernc.org/sqlite driver.
//
// The database lives at <data_dir>/sources.db (default ~/.aptline/data).
// Schema changes are applied from the embedded migrations package and
// tracked in the schema_migrations table.
package sqlite
