package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/feluda-dev/feluda"
)

// Compile-time interface verification.
var _ feluda.LicenseStore = (*LicenseStore)(nil)

// LicenseStore implements feluda.LicenseStore using SQLite. It holds the
// SPDX license metadata fetched from the GitHub Licenses API so that a scan
// does not hit the API on every run.
type LicenseStore struct {
	db *DB
}

// NewLicenseStore creates a new LicenseStore.
func NewLicenseStore(db *DB) *LicenseStore {
	return &LicenseStore{db: db}
}

// Licenses returns the stored metadata keyed by SPDX identifier, or
// ok=false when the store is empty or any entry has expired.
func (s *LicenseStore) Licenses(ctx context.Context) (map[string]feluda.License, bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT spdx_id, title, permissions, conditions, limitations, fetched_at
		FROM licenses
	`)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	licenses := make(map[string]feluda.License)
	for rows.Next() {
		var license feluda.License
		var permissions, conditions, limitations, fetchedAt string

		if err := rows.Scan(&license.SPDXID, &license.Title,
			&permissions, &conditions, &limitations, &fetchedAt); err != nil {
			return nil, false, err
		}
		if !s.db.fresh(fetchedAt) {
			return nil, false, nil
		}

		if err := json.Unmarshal([]byte(permissions), &license.Permissions); err != nil {
			return nil, false, fmt.Errorf("failed to decode license %s: %w", license.SPDXID, err)
		}
		if err := json.Unmarshal([]byte(conditions), &license.Conditions); err != nil {
			return nil, false, fmt.Errorf("failed to decode license %s: %w", license.SPDXID, err)
		}
		if err := json.Unmarshal([]byte(limitations), &license.Limitations); err != nil {
			return nil, false, fmt.Errorf("failed to decode license %s: %w", license.SPDXID, err)
		}

		licenses[license.SPDXID] = license
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	if len(licenses) == 0 {
		return nil, false, nil
	}
	return licenses, true, nil
}

// SaveLicenses replaces the stored metadata.
func (s *LicenseStore) SaveLicenses(ctx context.Context, licenses map[string]feluda.License) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM licenses"); err != nil {
		return err
	}

	fetchedAt := s.db.Now().UTC().Format(time.RFC3339)
	for _, license := range licenses {
		permissions, err := json.Marshal(stringsOrEmpty(license.Permissions))
		if err != nil {
			return err
		}
		conditions, err := json.Marshal(stringsOrEmpty(license.Conditions))
		if err != nil {
			return err
		}
		limitations, err := json.Marshal(stringsOrEmpty(license.Limitations))
		if err != nil {
			return err
		}

		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO licenses (spdx_id, title, permissions, conditions, limitations, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, license.SPDXID, license.Title,
			string(permissions), string(conditions), string(limitations), fetchedAt); err != nil {
			return err
		}
	}
	return nil
}

// stringsOrEmpty keeps nil slices encoding as [] rather than null.
func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
