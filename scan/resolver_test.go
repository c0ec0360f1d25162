package scan_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/feluda-dev/feluda"
	"github.com/feluda-dev/feluda/mock"
	"github.com/feluda-dev/feluda/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastDelaysResolver() []time.Duration {
	return []time.Duration{time.Millisecond}
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("declared metadata wins without a lookup", func(t *testing.T) {
		t.Parallel()

		registry := &mock.RegistryClient{
			FetchLicenseFn: func(ctx context.Context, dep feluda.Dependency) (string, error) {
				t.Fatal("registry should not be called")
				return "", nil
			},
		}
		resolver := &scan.Resolver{Registry: registry, RetryDelays: fastDelaysResolver()}

		res, err := resolver.Resolve(context.Background(), feluda.Dependency{
			Name: "express", Version: "4.18.2", Ecosystem: feluda.EcosystemNpm, Declared: "MIT",
		})
		require.NoError(t, err)
		assert.Equal(t, "MIT", res.License)
		assert.Equal(t, feluda.ConfidenceDeclared, res.Confidence)
	})

	t.Run("chooses most restrictive from dual license by default", func(t *testing.T) {
		t.Parallel()

		resolver := &scan.Resolver{}
		res, err := resolver.Resolve(context.Background(), feluda.Dependency{
			Name: "serde", Version: "1.0.210", Ecosystem: feluda.EcosystemCargo,
			Declared: "GPL-3.0 OR MIT",
		})
		require.NoError(t, err)
		assert.Equal(t, "GPL-3.0", res.License)
	})

	t.Run("permissive preference picks the permissive arm", func(t *testing.T) {
		t.Parallel()

		resolver := &scan.Resolver{Prefer: feluda.PreferPermissive}
		res, err := resolver.Resolve(context.Background(), feluda.Dependency{
			Name: "serde", Version: "1.0.210", Ecosystem: feluda.EcosystemCargo,
			Declared: "GPL-3.0 OR MIT",
		})
		require.NoError(t, err)
		assert.Equal(t, "MIT", res.License)
	})

	t.Run("reads license file from node_modules", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		pkgDir := filepath.Join(dir, "node_modules", "leftpad")
		require.NoError(t, os.MkdirAll(pkgDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "LICENSE"),
			[]byte("MIT License\n\nPermission is hereby granted, free of charge..."), 0o644))

		cache := &mock.MemoryCache{}
		resolver := &scan.Resolver{Cache: cache}

		res, err := resolver.Resolve(context.Background(), feluda.Dependency{
			Name: "leftpad", Version: "1.3.0", Ecosystem: feluda.EcosystemNpm,
			ManifestPath: filepath.Join(dir, "package.json"),
		})
		require.NoError(t, err)
		assert.Equal(t, "MIT", res.License)
		assert.Equal(t, feluda.ConfidenceInferred, res.Confidence)
		assert.Equal(t, 1, cache.Len(), "local detection should populate the cache")
	})

	t.Run("cache hit skips the registry", func(t *testing.T) {
		t.Parallel()

		var registryCalls atomic.Int32
		registry := &mock.RegistryClient{
			FetchLicenseFn: func(ctx context.Context, dep feluda.Dependency) (string, error) {
				registryCalls.Add(1)
				return "MIT", nil
			},
		}
		cache := &mock.MemoryCache{}
		resolver := &scan.Resolver{Registry: registry, Cache: cache, RetryDelays: fastDelaysResolver()}
		dep := feluda.Dependency{Name: "serde", Version: "1.0.210", Ecosystem: feluda.EcosystemCargo}

		res, err := resolver.Resolve(context.Background(), dep)
		require.NoError(t, err)
		assert.Equal(t, "MIT", res.License)

		res, err = resolver.Resolve(context.Background(), dep)
		require.NoError(t, err)
		assert.Equal(t, "MIT", res.License)
		assert.Equal(t, int32(1), registryCalls.Load())
	})

	t.Run("registry result is inferred and cached", func(t *testing.T) {
		t.Parallel()

		registry := &mock.RegistryClient{
			FetchLicenseFn: func(ctx context.Context, dep feluda.Dependency) (string, error) {
				return "Apache-2.0", nil
			},
		}
		cache := &mock.MemoryCache{}
		resolver := &scan.Resolver{Registry: registry, Cache: cache, RetryDelays: fastDelaysResolver()}

		res, err := resolver.Resolve(context.Background(), feluda.Dependency{
			Name: "tokio", Version: "1.40.0", Ecosystem: feluda.EcosystemCargo,
		})
		require.NoError(t, err)
		assert.Equal(t, "Apache-2.0", res.License)
		assert.Equal(t, feluda.ConfidenceInferred, res.Confidence)
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("missing package resolves unknown without error", func(t *testing.T) {
		t.Parallel()

		registry := &mock.RegistryClient{
			FetchLicenseFn: func(ctx context.Context, dep feluda.Dependency) (string, error) {
				return "", feluda.Errorf(feluda.ENOTFOUND, "no such package")
			},
		}
		resolver := &scan.Resolver{Registry: registry, RetryDelays: fastDelaysResolver()}

		res, err := resolver.Resolve(context.Background(), feluda.Dependency{
			Name: "ghost", Version: "0.0.1", Ecosystem: feluda.EcosystemNpm,
		})
		require.NoError(t, err)
		assert.Equal(t, feluda.ConfidenceUnknown, res.Confidence)
		assert.Empty(t, res.License)
	})

	t.Run("canceled context resolves unknown without error", func(t *testing.T) {
		t.Parallel()

		registry := &mock.RegistryClient{
			FetchLicenseFn: func(ctx context.Context, dep feluda.Dependency) (string, error) {
				return "", ctx.Err()
			},
		}
		resolver := &scan.Resolver{Registry: registry, RetryDelays: fastDelaysResolver()}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := resolver.Resolve(ctx, feluda.Dependency{
			Name: "serde", Version: "1.0.210", Ecosystem: feluda.EcosystemCargo,
		})
		require.NoError(t, err)
		assert.Equal(t, feluda.ConfidenceUnknown, res.Confidence)
	})

	t.Run("transient registry failure returns unknown with error", func(t *testing.T) {
		t.Parallel()

		registry := &mock.RegistryClient{
			FetchLicenseFn: func(ctx context.Context, dep feluda.Dependency) (string, error) {
				return "", feluda.Errorf(feluda.EUNAVAILABLE, "registry down")
			},
		}
		resolver := &scan.Resolver{Registry: registry, RetryDelays: fastDelaysResolver()}

		res, err := resolver.Resolve(context.Background(), feluda.Dependency{
			Name: "serde", Version: "1.0.210", Ecosystem: feluda.EcosystemCargo,
		})
		require.Error(t, err)
		assert.Equal(t, feluda.ConfidenceUnknown, res.Confidence)
	})

	t.Run("waits on the host limiter before the lookup", func(t *testing.T) {
		t.Parallel()

		var waitedHost string
		limiter := &mock.HostLimiter{
			WaitFn: func(ctx context.Context, host string) error {
				waitedHost = host
				return nil
			},
		}
		registry := &mock.RegistryClient{
			FetchLicenseFn: func(ctx context.Context, dep feluda.Dependency) (string, error) {
				return "MIT", nil
			},
			HostFn: func(dep feluda.Dependency) string { return "crates.io" },
		}
		resolver := &scan.Resolver{Registry: registry, Limiter: limiter, RetryDelays: fastDelaysResolver()}

		_, err := resolver.Resolve(context.Background(), feluda.Dependency{
			Name: "serde", Version: "1.0.210", Ecosystem: feluda.EcosystemCargo,
		})
		require.NoError(t, err)
		assert.Equal(t, "crates.io", waitedHost)
	})
}
