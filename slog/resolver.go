// Package slog provides logging decorators for feluda services using the
// standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/feluda-dev/feluda"
)

// Ensure LoggingResolver implements feluda.Resolver.
var _ feluda.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with per-dependency resolution logging.
type LoggingResolver struct {
	next   feluda.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next feluda.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the outcome.
func (r *LoggingResolver) Resolve(ctx context.Context, dep feluda.Dependency) (feluda.Resolution, error) {
	begin := time.Now()
	res, err := r.next.Resolve(ctx, dep)
	if err != nil {
		r.logger.Error("resolve",
			"dependency", dep.Key(),
			"duration", time.Since(begin),
			"err", err,
		)
		return res, err
	}

	license := res.License
	if license == "" {
		license = "(unknown)"
	}
	r.logger.Info("resolve",
		"dependency", dep.Key(),
		"license", license,
		"confidence", string(res.Confidence),
		"duration", time.Since(begin),
	)
	return res, nil
}
