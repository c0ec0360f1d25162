package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/feluda-dev/feluda"
	"github.com/feluda-dev/feluda/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_Status(t *testing.T) {
	t.Parallel()

	t.Run("counts cached entries", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		ctx := context.Background()

		cache := sqlite.NewResolutionCache(db)
		require.NoError(t, cache.Put(ctx, feluda.Dependency{
			Name: "serde", Version: "1.0.210", Ecosystem: feluda.EcosystemCargo,
		}, feluda.Resolution{License: "MIT", Confidence: feluda.ConfidenceInferred}))

		status, err := db.Status(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, status.Resolutions)
		assert.Equal(t, 0, status.Licenses)
		assert.False(t, status.OldestEntry.IsZero())
	})

	t.Run("clear empties the cache", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		ctx := context.Background()

		cache := sqlite.NewResolutionCache(db)
		require.NoError(t, cache.Put(ctx, feluda.Dependency{
			Name: "serde", Version: "1.0.210", Ecosystem: feluda.EcosystemCargo,
		}, feluda.Resolution{License: "MIT", Confidence: feluda.ConfidenceInferred}))

		require.NoError(t, db.Clear(ctx))

		status, err := db.Status(ctx)
		require.NoError(t, err)
		assert.Zero(t, status.Resolutions)
		assert.True(t, status.OldestEntry.IsZero())
	})
}

func TestFormatSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", sqlite.FormatSize(512))
	assert.Equal(t, "2.0 KB", sqlite.FormatSize(2048))
	assert.Equal(t, "1.5 MB", sqlite.FormatSize(1536*1024))
}

func TestFormatAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "empty", sqlite.FormatAge(time.Time{}, now))
	assert.Equal(t, "just now", sqlite.FormatAge(now.Add(-30*time.Second), now))
	assert.Equal(t, "5 minutes", sqlite.FormatAge(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3 hours", sqlite.FormatAge(now.Add(-3*time.Hour), now))
	assert.Equal(t, "12 days", sqlite.FormatAge(now.Add(-12*24*time.Hour), now))
}
