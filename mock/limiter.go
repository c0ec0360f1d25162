package mock

import (
	"context"

	"github.com/feluda-dev/feluda"
)

var _ feluda.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of feluda.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, host)
}
