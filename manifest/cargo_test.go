package manifest_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/feluda-dev/feluda"
	"github.com/feluda-dev/feluda/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCargoParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("uses lockfile when present", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "Cargo.toml"), `
[package]
name = "app"
version = "0.1.0"

[dependencies]
serde = "1.0"
`)
		writeFile(t, filepath.Join(dir, "Cargo.lock"), `
version = 3

[[package]]
name = "app"
version = "0.1.0"
dependencies = ["serde"]

[[package]]
name = "serde"
version = "1.0.210"
dependencies = ["serde_derive 1.0.210"]

[[package]]
name = "serde_derive"
version = "1.0.210"
`)

		parser := manifest.NewCargoParser()
		g, err := parser.Parse(context.Background(), feluda.Manifest{
			Path:      filepath.Join(dir, "Cargo.toml"),
			Ecosystem: feluda.EcosystemCargo,
		})
		require.NoError(t, err)

		deps := g.Nodes()
		require.Len(t, deps, 2)
		assert.Equal(t, "serde", deps[0].Name)
		assert.Equal(t, "1.0.210", deps[0].Version)
		assert.True(t, deps[0].Direct)
		assert.Equal(t, "serde_derive", deps[1].Name)
		assert.False(t, deps[1].Direct)

		children := g.DependenciesOf(deps[0].Key())
		require.Len(t, children, 1)
		assert.Equal(t, "serde_derive", children[0].Name)
	})

	t.Run("falls back to declared requirements without lockfile", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "Cargo.toml"), `
[package]
name = "app"

[dependencies]
serde = "^1.0.210"
tokio = { version = "~1.40", features = ["full"] }

[dev-dependencies]
tempfile = "3"
`)

		parser := manifest.NewCargoParser()
		g, err := parser.Parse(context.Background(), feluda.Manifest{
			Path:      filepath.Join(dir, "Cargo.toml"),
			Ecosystem: feluda.EcosystemCargo,
		})
		require.NoError(t, err)

		deps := g.Nodes()
		require.Len(t, deps, 3)
		byName := make(map[string]feluda.Dependency)
		for _, dep := range deps {
			byName[dep.Name] = dep
		}
		assert.Equal(t, "1.0.210", byName["serde"].Version)
		assert.Equal(t, "1.40", byName["tokio"].Version)
		assert.Equal(t, "3", byName["tempfile"].Version)
		assert.True(t, byName["tempfile"].Direct)
	})

	t.Run("malformed manifest is EINVALID", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "Cargo.toml"), "[package\nname = broken")

		parser := manifest.NewCargoParser()
		_, err := parser.Parse(context.Background(), feluda.Manifest{
			Path:      filepath.Join(dir, "Cargo.toml"),
			Ecosystem: feluda.EcosystemCargo,
		})
		require.Error(t, err)
		assert.Equal(t, feluda.EINVALID, feluda.ErrorCode(err))
	})
}
