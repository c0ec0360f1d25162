package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/feluda-dev/feluda"
)

// Ensure LoggingLocator implements feluda.Locator.
var _ feluda.Locator = (*LoggingLocator)(nil)

// LoggingLocator wraps a Locator with discovery logging.
type LoggingLocator struct {
	next   feluda.Locator
	logger *slog.Logger
}

// NewLoggingLocator creates a new LoggingLocator.
func NewLoggingLocator(next feluda.Locator, logger *slog.Logger) *LoggingLocator {
	return &LoggingLocator{next: next, logger: logger}
}

// Locate delegates to the wrapped locator and logs what was found.
func (l *LoggingLocator) Locate(ctx context.Context, root string) ([]feluda.Manifest, []feluda.Warning, error) {
	begin := time.Now()
	manifests, warnings, err := l.next.Locate(ctx, root)
	if err != nil {
		l.logger.Error("locate",
			"root", root,
			"duration", time.Since(begin),
			"err", err,
		)
		return manifests, warnings, err
	}

	l.logger.Info("locate",
		"root", root,
		"manifests", len(manifests),
		"warnings", len(warnings),
		"duration", time.Since(begin),
	)
	return manifests, warnings, nil
}
