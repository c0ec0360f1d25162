package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"
)

// Status describes the cache database for `feluda cache status`.
type Status struct {
	Path        string
	SizeBytes   int64
	Resolutions int
	Licenses    int
	OldestEntry time.Time
}

// Status reports the size and contents of the cache database.
func (db *DB) Status(ctx context.Context) (Status, error) {
	status := Status{Path: db.path}

	if db.path != ":memory:" {
		if info, err := os.Stat(db.path); err == nil {
			status.SizeBytes = info.Size()
		}
	}

	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM resolutions").Scan(&status.Resolutions); err != nil {
		return Status{}, err
	}
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM licenses").Scan(&status.Licenses); err != nil {
		return Status{}, err
	}

	var oldest sql.NullString
	if err := db.QueryRowContext(ctx, "SELECT MIN(fetched_at) FROM resolutions").Scan(&oldest); err != nil {
		return Status{}, err
	}
	if oldest.Valid {
		if t, err := time.Parse(time.RFC3339, oldest.String); err == nil {
			status.OldestEntry = t
		}
	}

	return status, nil
}

// Clear removes all cached entries.
func (db *DB) Clear(ctx context.Context) error {
	_, err := db.ExecContext(ctx, "DELETE FROM resolutions; DELETE FROM licenses")
	return err
}

// FormatSize renders a byte count for humans, e.g. "2.4 MB".
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGT"[exp])
}

// FormatAge renders the age of a timestamp for humans, e.g. "3 days".
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "empty"
	}
	age := now.Sub(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%d minutes", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%d hours", int(age.Hours()))
	default:
		return fmt.Sprintf("%d days", int(age.Hours()/24))
	}
}
