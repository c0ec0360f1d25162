package mock

import (
	"context"

	"github.com/feluda-dev/feluda"
)

var _ feluda.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of feluda.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, dep feluda.Dependency) (feluda.Resolution, error)
}

func (r *Resolver) Resolve(ctx context.Context, dep feluda.Dependency) (feluda.Resolution, error) {
	return r.ResolveFn(ctx, dep)
}
