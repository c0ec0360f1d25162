package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/feluda-dev/feluda"
	"github.com/feluda-dev/feluda/spdx"
)

// Compile-time interface verification.
var _ feluda.Resolver = (*Resolver)(nil)

// Resolver resolves dependency licenses through a chain of sources, from
// cheapest to most expensive: declared manifest metadata, a license file in
// the locally installed package, the persistent cache, and finally the
// remote registry. Registry lookups are rate limited per host and retried
// with backoff.
//
// Context cancellation and registry timeouts yield an unknown-confidence
// resolution rather than an error, so one slow registry cannot fail a run.
type Resolver struct {
	Registry    feluda.RegistryClient
	Cache       feluda.ResolutionCache
	Limiter     feluda.HostLimiter
	Prefer      feluda.Preference
	RetryDelays []time.Duration
	Logger      LogFunc

	// memo caches license text detection results keyed by content hash, so
	// identical license files across packages are classified once.
	mu   sync.Mutex
	memo map[uint64]memoEntry
}

type memoEntry struct {
	id string
	ok bool
}

// Resolve implements feluda.Resolver.
func (r *Resolver) Resolve(ctx context.Context, dep feluda.Dependency) (feluda.Resolution, error) {
	if dep.Declared != "" {
		return r.fromExpression(dep.Declared, feluda.ConfidenceDeclared), nil
	}

	if res, ok := r.localLicense(dep); ok {
		r.putCache(ctx, dep, res)
		return res, nil
	}

	if r.Cache != nil {
		if res, ok, err := r.Cache.Get(ctx, dep); err == nil && ok {
			return res, nil
		}
	}

	return r.remote(ctx, dep)
}

// fromExpression parses a raw license expression and chooses a single
// identifier from it. Unparseable expressions fall back to normalizing the
// raw string, which keeps single malformed identifiers usable.
func (r *Resolver) fromExpression(raw string, confidence feluda.Confidence) feluda.Resolution {
	expr, err := spdx.Parse(raw)
	if err != nil {
		return feluda.Resolution{
			Expression: raw,
			License:    spdx.Normalize(raw),
			Confidence: confidence,
		}
	}
	return feluda.Resolution{
		Expression: raw,
		License:    spdx.Choose(expr, r.Prefer),
		Confidence: confidence,
	}
}

// localLicense looks for a license file in the locally installed copy of
// the dependency, e.g. node_modules/<name>/LICENSE or vendor/<path>.
func (r *Resolver) localLicense(dep feluda.Dependency) (feluda.Resolution, bool) {
	dir := localPackageDir(dep)
	if dir == "" {
		return feluda.Resolution{}, false
	}

	for _, name := range spdx.LicenseFileNames {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		id, ok := r.detectMemo(content)
		if !ok {
			continue
		}
		return feluda.Resolution{License: id, Confidence: feluda.ConfidenceInferred}, true
	}
	return feluda.Resolution{}, false
}

// localPackageDir returns the directory holding the installed copy of the
// dependency, or "" when the ecosystem has no conventional local layout.
func localPackageDir(dep feluda.Dependency) string {
	if dep.ManifestPath == "" {
		return ""
	}
	root := filepath.Dir(dep.ManifestPath)
	switch dep.Ecosystem {
	case feluda.EcosystemNpm:
		return filepath.Join(root, "node_modules", filepath.FromSlash(dep.Name))
	case feluda.EcosystemGo:
		return filepath.Join(root, "vendor", filepath.FromSlash(dep.Name))
	}
	return ""
}

// detectMemo classifies license text, memoizing by content hash.
func (r *Resolver) detectMemo(content []byte) (string, bool) {
	sum := xxhash.Sum64(content)

	r.mu.Lock()
	if r.memo == nil {
		r.memo = make(map[uint64]memoEntry)
	}
	if entry, ok := r.memo[sum]; ok {
		r.mu.Unlock()
		return entry.id, entry.ok
	}
	r.mu.Unlock()

	id, ok := spdx.DetectText(string(content))

	r.mu.Lock()
	r.memo[sum] = memoEntry{id: id, ok: ok}
	r.mu.Unlock()

	return id, ok
}

// remote resolves through the registry client. Missing packages cache an
// unknown resolution so repeat scans skip the lookup; transient failures
// return the error alongside the unknown resolution so the caller can
// record a warning.
func (r *Resolver) remote(ctx context.Context, dep feluda.Dependency) (feluda.Resolution, error) {
	unknown := feluda.Resolution{Confidence: feluda.ConfidenceUnknown}
	if r.Registry == nil {
		return unknown, nil
	}

	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx, r.Registry.Host(dep)); err != nil {
			return unknown, nil
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	expression, err := LookupWithRetryDelays(ctx, dep, r.Registry.FetchLicense, r.Logger, delays)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return unknown, nil
		case feluda.ErrorCode(err) == feluda.ENOTFOUND:
			r.putCache(ctx, dep, unknown)
			return unknown, nil
		default:
			return unknown, err
		}
	}

	res := r.fromExpression(expression, feluda.ConfidenceInferred)
	r.putCache(ctx, dep, res)
	return res, nil
}

func (r *Resolver) putCache(ctx context.Context, dep feluda.Dependency, res feluda.Resolution) {
	if r.Cache == nil {
		return
	}
	// Cache writes are best effort; a failed write only costs a refetch.
	_ = r.Cache.Put(ctx, dep, res)
}
