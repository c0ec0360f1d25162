// Package sqlite provides the SQLite-backed license cache: resolved
// dependency licenses and SPDX license metadata persisted between runs.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/feluda-dev/feluda"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DefaultTTL is how long cached entries stay fresh.
const DefaultTTL = 30 * 24 * time.Hour

// DB represents a SQLite database connection.
type DB struct {
	db      *sql.DB
	path    string
	version string
	ttl     time.Duration

	// Now is swappable in tests to control freshness checks.
	Now func() time.Time
}

// Option configures a DB.
type Option func(*DB)

// WithTTL overrides the cache freshness window.
// Defaults to DefaultTTL (30 days) if not specified.
func WithTTL(ttl time.Duration) Option {
	return func(db *DB) {
		db.ttl = ttl
	}
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string, opts ...Option) *DB {
	db := &DB{
		path:    path,
		version: feluda.Version,
		ttl:     DefaultTTL,
		Now:     time.Now,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Open opens the database connection, creates the schema if needed, and
// discards cached data written by a different feluda version.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set busy timeout to wait 5 seconds before failing on lock contention.
	// This prevents immediate "database is locked" errors.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Enable WAL mode for file-based databases for better write performance.
	// Note: WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := db.checkVersion(); err != nil {
		conn.Close()
		return err
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// fresh reports whether an RFC3339 timestamp is inside the TTL window.
func (db *DB) fresh(fetchedAt string) bool {
	t, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return false
	}
	return db.Now().UTC().Sub(t) < db.ttl
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS resolutions (
			ecosystem TEXT NOT NULL,
			name TEXT NOT NULL,
			version TEXT NOT NULL,
			expression TEXT NOT NULL DEFAULT '',
			license TEXT NOT NULL DEFAULT '',
			confidence TEXT NOT NULL,
			fetched_at TEXT NOT NULL,
			PRIMARY KEY (ecosystem, name, version)
		);

		CREATE TABLE IF NOT EXISTS licenses (
			spdx_id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			permissions TEXT NOT NULL DEFAULT '[]',
			conditions TEXT NOT NULL DEFAULT '[]',
			limitations TEXT NOT NULL DEFAULT '[]',
			fetched_at TEXT NOT NULL
		);
	`

	_, err := db.db.Exec(schema)
	return err
}

// checkVersion wipes cached data written by a different feluda version.
// License metadata semantics can change between releases, so stale entries
// are not worth migrating.
func (db *DB) checkVersion() error {
	var stored string
	err := db.db.QueryRow("SELECT value FROM meta WHERE key = 'version'").Scan(&stored)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to read cache version: %w", err)
	}

	if stored != db.version {
		if _, err := db.db.Exec("DELETE FROM resolutions; DELETE FROM licenses"); err != nil {
			return fmt.Errorf("failed to clear stale cache: %w", err)
		}
		if _, err := db.db.Exec(`
			INSERT INTO meta (key, value) VALUES ('version', ?)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value
		`, db.version); err != nil {
			return fmt.Errorf("failed to record cache version: %w", err)
		}
	}
	return nil
}
