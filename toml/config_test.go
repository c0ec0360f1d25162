package toml_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/feluda-dev/feluda"
	"github.com/feluda-dev/feluda/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()

		config, err := toml.LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, feluda.DefaultConfig(), config)
	})

	t.Run("file overrides named fields only", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, toml.ConfigFileName), []byte(`
concurrency = 4
timeout_seconds = 30
restrictive = ["Commons Clause"]
`), 0o644))

		config, err := toml.LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, 4, config.Concurrency)
		assert.Equal(t, 30*time.Second, config.Timeout)
		assert.Equal(t, []string{"Commons Clause"}, config.Restrictive)
		// Unnamed fields keep their defaults.
		assert.Equal(t, "text", config.Format)
	})

	t.Run("malformed file is EINVALID", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, toml.ConfigFileName), []byte("concurrency = [broken"), 0o644))

		_, err := toml.LoadConfig(dir)
		require.Error(t, err)
		assert.Equal(t, feluda.EINVALID, feluda.ErrorCode(err))
	})
}
