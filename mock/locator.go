// Package mock provides function-field mock implementations of the feluda
// domain interfaces for use in tests.
package mock

import (
	"context"

	"github.com/feluda-dev/feluda"
)

var _ feluda.Locator = (*Locator)(nil)

// Locator is a mock implementation of feluda.Locator.
type Locator struct {
	LocateFn func(ctx context.Context, root string) ([]feluda.Manifest, []feluda.Warning, error)
}

func (l *Locator) Locate(ctx context.Context, root string) ([]feluda.Manifest, []feluda.Warning, error) {
	return l.LocateFn(ctx, root)
}
