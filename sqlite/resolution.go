package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/feluda-dev/feluda"
)

// Compile-time interface verification.
var _ feluda.ResolutionCache = (*ResolutionCache)(nil)

// ResolutionCache implements feluda.ResolutionCache using SQLite. Entries
// are keyed by (ecosystem, name, version) and expire after the DB's TTL.
type ResolutionCache struct {
	db *DB
}

// NewResolutionCache creates a new ResolutionCache.
func NewResolutionCache(db *DB) *ResolutionCache {
	return &ResolutionCache{db: db}
}

// Get returns the cached resolution and true when a fresh entry exists.
// Expired entries are treated as misses; they are overwritten on the next
// Put rather than deleted eagerly.
func (c *ResolutionCache) Get(ctx context.Context, dep feluda.Dependency) (feluda.Resolution, bool, error) {
	var res feluda.Resolution
	var fetchedAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT expression, license, confidence, fetched_at
		FROM resolutions
		WHERE ecosystem = ? AND name = ? AND version = ?
	`, string(dep.Ecosystem), dep.Name, dep.Version).Scan(
		&res.Expression, &res.License, (*string)(&res.Confidence), &fetchedAt)

	if err == sql.ErrNoRows {
		return feluda.Resolution{}, false, nil
	}
	if err != nil {
		return feluda.Resolution{}, false, err
	}

	if !c.db.fresh(fetchedAt) {
		return feluda.Resolution{}, false, nil
	}
	return res, true, nil
}

// Put stores a resolution for the dependency, replacing any prior entry.
func (c *ResolutionCache) Put(ctx context.Context, dep feluda.Dependency, res feluda.Resolution) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO resolutions (ecosystem, name, version, expression, license, confidence, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (ecosystem, name, version) DO UPDATE SET
			expression = excluded.expression,
			license = excluded.license,
			confidence = excluded.confidence,
			fetched_at = excluded.fetched_at
	`, string(dep.Ecosystem), dep.Name, dep.Version,
		res.Expression, res.License, string(res.Confidence),
		c.db.Now().UTC().Format(time.RFC3339))
	return err
}
