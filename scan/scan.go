// Package scan provides license scan orchestration. It coordinates manifest
// discovery, parsing, license resolution, and policy evaluation into a
// single report.
package scan

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/feluda-dev/feluda"
	"github.com/feluda-dev/feluda/spdx"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Frontier configuration.
const (
	// frontierExpectedDeps is the expected dependency count for Bloom filter sizing.
	frontierExpectedDeps = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
)

// Scanner orchestrates a license scan.
type Scanner struct {
	Locator  feluda.Locator
	Parsers  []feluda.Parser
	Resolver feluda.Resolver

	// Licenses and Store supply SPDX license metadata for restrictive
	// classification. Both are optional; without them classification falls
	// back to the built-in copyleft ranking.
	Licenses feluda.LicenseSource
	Store    feluda.LicenseStore

	Concurrency int
	Timeout     time.Duration
}

// Request holds the parameters of a single scan.
type Request struct {
	// Root is the directory to scan.
	Root string

	// Policy is the allow/deny policy findings are evaluated against.
	Policy feluda.Policy

	// ProjectLicense is the scanned project's own license, used for
	// compatibility checks. Empty disables them.
	ProjectLicense string

	// FailOn selects which verdicts fail the scan.
	FailOn feluda.FailOn
}

// ProgressEvent reports progress during a scan.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Key       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scan progress.
type ProgressFunc func(event ProgressEvent)

// Scan discovers manifests under the request root, resolves every
// dependency's license, evaluates the policy, and returns the finalized
// report. Partial failures (an unparseable manifest, an unreachable
// registry) become warnings on the report; only an unusable root fails the
// scan outright. The progress callback, if provided, receives events as
// resolution proceeds.
func (s *Scanner) Scan(ctx context.Context, req Request, progress ProgressFunc) (*feluda.Report, error) {
	if err := req.Policy.Validate(); err != nil {
		return nil, err
	}

	manifests, warnings, err := s.Locator.Locate(ctx, req.Root)
	if err != nil {
		return nil, err
	}

	graph, parseWarnings := s.parseManifests(ctx, manifests)
	warnings = append(warnings, parseWarnings...)

	known, metaWarnings := s.licenseMetadata(ctx)
	warnings = append(warnings, metaWarnings...)

	resolutions, resolveWarnings := s.resolveAll(ctx, graph, progress)
	warnings = append(warnings, resolveWarnings...)

	findings := make([]feluda.Finding, 0, graph.Len())
	for _, dep := range graph.Nodes() {
		res := resolutions[dep.Key()]
		findings = append(findings, feluda.Finding{
			Dependency:    dep,
			Resolution:    res,
			Restrictive:   spdx.IsRestrictive(res.License, known, req.Policy.Restrictive),
			Compatibility: spdx.Compatible(res.License, req.ProjectLicense),
			Verdict:       req.Policy.Evaluate(res),
		})
	}

	report := &feluda.Report{
		RunID:          uuid.New().String(),
		Path:           req.Root,
		ProjectLicense: req.ProjectLicense,
		GeneratedAt:    time.Now().UTC(),
		Findings:       findings,
		Warnings:       warnings,
	}
	report.Finalize(req.FailOn)
	return report, nil
}

// parseManifests parses every discovered manifest into one merged graph.
// Manifests parse concurrently; a failed parse contributes a warning, not a
// scan failure.
func (s *Scanner) parseManifests(ctx context.Context, manifests []feluda.Manifest) (*feluda.Graph, []feluda.Warning) {
	parsers := make(map[feluda.Ecosystem]feluda.Parser, len(s.Parsers))
	for _, p := range s.Parsers {
		parsers[p.Ecosystem()] = p
	}

	graph := feluda.NewGraph()
	var warnings []feluda.Warning
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())

	for _, m := range manifests {
		m := m
		g.Go(func() error {
			parser, ok := parsers[m.Ecosystem]
			if !ok {
				mu.Lock()
				warnings = append(warnings, feluda.Warning{
					Path:    m.Path,
					Message: "no parser for ecosystem " + string(m.Ecosystem),
				})
				mu.Unlock()
				return nil
			}

			fragment, err := parser.Parse(gctx, m)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				warnings = append(warnings, feluda.Warning{Path: m.Path, Message: err.Error()})
				return nil
			}
			graph.Merge(fragment)
			return nil
		})
	}
	_ = g.Wait()

	return graph, warnings
}

// licenseMetadata returns SPDX license metadata from the store, refreshing
// it from the source when stale. Failures degrade to rank-based restrictive
// classification with a warning.
func (s *Scanner) licenseMetadata(ctx context.Context) (map[string]feluda.License, []feluda.Warning) {
	if s.Store != nil {
		if known, ok, err := s.Store.Licenses(ctx); err == nil && ok {
			return known, nil
		}
	}
	if s.Licenses == nil {
		return nil, nil
	}

	known, err := s.Licenses.FetchLicenses(ctx)
	if err != nil {
		return nil, []feluda.Warning{{Message: "license metadata unavailable: " + err.Error()}}
	}
	if s.Store != nil {
		_ = s.Store.SaveLicenses(ctx, known)
	}
	return known, nil
}

// resolveAll resolves every graph node through the resolver using a bounded
// worker pool. Direct dependencies resolve first. The scan timeout covers
// this stage; dependencies still unresolved when it expires keep unknown
// confidence.
func (s *Scanner) resolveAll(ctx context.Context, graph *feluda.Graph, progress ProgressFunc) (map[string]feluda.Resolution, []feluda.Warning) {
	deps := graph.Nodes()

	frontier := NewFrontier(frontierExpectedDeps, frontierFalsePositiveRate)
	for _, dep := range deps {
		frontier.Push(dep)
	}

	total := frontier.Len()
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	rctx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	resolutions := make(map[string]feluda.Resolution, total)
	var warnings []feluda.Warning
	var mu sync.Mutex
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(rctx)
	g.SetLimit(s.concurrency())

	for {
		dep, ok := frontier.Pop()
		if !ok {
			break
		}
		g.Go(func() error {
			res, err := s.Resolver.Resolve(gctx, dep)
			done := int(completed.Add(1))

			mu.Lock()
			resolutions[dep.Key()] = res
			if err != nil {
				warnings = append(warnings, feluda.Warning{
					Path:    dep.ManifestPath,
					Message: dep.Key() + ": " + err.Error(),
				})
			}
			mu.Unlock()

			if progress != nil {
				event := ProgressEvent{Type: ProgressCompleted, Completed: done, Total: total, Key: dep.Key()}
				if err != nil {
					event.Type = ProgressFailed
					event.Error = err
				}
				progress(event)
			}
			return nil
		})
	}
	_ = g.Wait()

	// Anything cut off by the timeout resolves as unknown.
	for _, dep := range deps {
		if _, ok := resolutions[dep.Key()]; !ok {
			resolutions[dep.Key()] = feluda.Resolution{Confidence: feluda.ConfidenceUnknown}
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return resolutions, warnings
}

func (s *Scanner) concurrency() int {
	if s.Concurrency > 0 {
		return s.Concurrency
	}
	return feluda.DefaultConcurrency
}
