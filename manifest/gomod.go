package manifest

import (
	"context"
	"os"

	"github.com/feluda-dev/feluda"
	"golang.org/x/mod/modfile"
)

// Compile-time interface verification.
var _ feluda.Parser = (*GoModParser)(nil)

// GoModParser parses go.mod files. Go modules carry no license metadata in
// the manifest, so all resolution happens downstream.
type GoModParser struct{}

// NewGoModParser creates a new GoModParser.
func NewGoModParser() *GoModParser {
	return &GoModParser{}
}

// Ecosystem implements feluda.Parser.
func (p *GoModParser) Ecosystem() feluda.Ecosystem { return feluda.EcosystemGo }

// Parse implements feluda.Parser.
func (p *GoModParser) Parse(ctx context.Context, m feluda.Manifest) (*feluda.Graph, error) {
	data, err := os.ReadFile(m.Path)
	if err != nil {
		return nil, err
	}

	f, err := modfile.Parse(m.Path, data, nil)
	if err != nil {
		return nil, feluda.Errorf(feluda.EINVALID, "parse %s: %v", m.Path, err)
	}

	g := feluda.NewGraph()
	for _, req := range f.Require {
		g.AddNode(feluda.Dependency{
			Name:         req.Mod.Path,
			Version:      req.Mod.Version,
			Ecosystem:    feluda.EcosystemGo,
			Direct:       !req.Indirect,
			ManifestPath: m.Path,
		})
	}
	return g, nil
}
