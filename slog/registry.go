package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/feluda-dev/feluda"
)

// Ensure LoggingRegistryClient implements feluda.RegistryClient.
var _ feluda.RegistryClient = (*LoggingRegistryClient)(nil)

// LoggingRegistryClient wraps a RegistryClient with lookup logging. Useful
// at debug level for seeing which registries a scan actually hits.
type LoggingRegistryClient struct {
	next   feluda.RegistryClient
	logger *slog.Logger
}

// NewLoggingRegistryClient creates a new LoggingRegistryClient.
func NewLoggingRegistryClient(next feluda.RegistryClient, logger *slog.Logger) *LoggingRegistryClient {
	return &LoggingRegistryClient{next: next, logger: logger}
}

// FetchLicense delegates to the wrapped client and logs the lookup.
func (c *LoggingRegistryClient) FetchLicense(ctx context.Context, dep feluda.Dependency) (string, error) {
	begin := time.Now()
	expression, err := c.next.FetchLicense(ctx, dep)
	if err != nil {
		c.logger.Debug("registry lookup",
			"dependency", dep.Key(),
			"host", c.next.Host(dep),
			"duration", time.Since(begin),
			"err", err,
		)
		return "", err
	}

	c.logger.Debug("registry lookup",
		"dependency", dep.Key(),
		"host", c.next.Host(dep),
		"expression", expression,
		"duration", time.Since(begin),
	)
	return expression, nil
}

// Host delegates to the wrapped client.
func (c *LoggingRegistryClient) Host(dep feluda.Dependency) string {
	return c.next.Host(dep)
}
