package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/feluda-dev/feluda"
	"github.com/feluda-dev/feluda/mock"
	feludaslog "github.com/feluda-dev/feluda/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRegistryClient_FetchLicense(t *testing.T) {
	t.Parallel()

	dep := feluda.Dependency{Name: "serde", Version: "1.0.210", Ecosystem: feluda.EcosystemCargo}

	t.Run("logs lookup with host and expression", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.RegistryClient{
			FetchLicenseFn: func(ctx context.Context, dep feluda.Dependency) (string, error) {
				return "MIT OR Apache-2.0", nil
			},
			HostFn: func(dep feluda.Dependency) string { return "crates.io" },
		}

		client := feludaslog.NewLoggingRegistryClient(inner, logger)
		license, err := client.FetchLicense(context.Background(), dep)

		require.NoError(t, err)
		assert.Equal(t, "MIT OR Apache-2.0", license)
		output := buf.String()
		assert.Contains(t, output, "registry lookup")
		assert.Contains(t, output, "dependency=cargo/serde@1.0.210")
		assert.Contains(t, output, "host=crates.io")
		assert.Contains(t, output, "MIT OR Apache-2.0")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.RegistryClient{
			FetchLicenseFn: func(ctx context.Context, dep feluda.Dependency) (string, error) {
				return "", feluda.Errorf(feluda.EUNAVAILABLE, "registry down")
			},
		}

		client := feludaslog.NewLoggingRegistryClient(inner, logger)
		_, err := client.FetchLicense(context.Background(), dep)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "registry down")
	})

	t.Run("lookups log at debug level only", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RegistryClient{
			FetchLicenseFn: func(ctx context.Context, dep feluda.Dependency) (string, error) {
				return "MIT", nil
			},
		}

		client := feludaslog.NewLoggingRegistryClient(inner, logger)
		_, err := client.FetchLicense(context.Background(), dep)

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("delegates Host", func(t *testing.T) {
		t.Parallel()

		inner := &mock.RegistryClient{
			HostFn: func(dep feluda.Dependency) string { return "crates.io" },
		}

		client := feludaslog.NewLoggingRegistryClient(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
		assert.Equal(t, "crates.io", client.Host(dep))
	})
}
