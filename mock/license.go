package mock

import (
	"context"

	"github.com/feluda-dev/feluda"
)

var _ feluda.LicenseSource = (*LicenseSource)(nil)

// LicenseSource is a mock implementation of feluda.LicenseSource.
type LicenseSource struct {
	FetchLicensesFn func(ctx context.Context) (map[string]feluda.License, error)
}

func (s *LicenseSource) FetchLicenses(ctx context.Context) (map[string]feluda.License, error) {
	return s.FetchLicensesFn(ctx)
}

var _ feluda.LicenseStore = (*LicenseStore)(nil)

// LicenseStore is a mock implementation of feluda.LicenseStore.
type LicenseStore struct {
	LicensesFn     func(ctx context.Context) (map[string]feluda.License, bool, error)
	SaveLicensesFn func(ctx context.Context, licenses map[string]feluda.License) error
}

func (s *LicenseStore) Licenses(ctx context.Context) (map[string]feluda.License, bool, error) {
	return s.LicensesFn(ctx)
}

func (s *LicenseStore) SaveLicenses(ctx context.Context, licenses map[string]feluda.License) error {
	return s.SaveLicensesFn(ctx, licenses)
}
