package mock

import (
	"context"

	"github.com/feluda-dev/feluda"
)

var _ feluda.Parser = (*Parser)(nil)

// Parser is a mock implementation of feluda.Parser.
type Parser struct {
	EcosystemFn func() feluda.Ecosystem
	ParseFn     func(ctx context.Context, m feluda.Manifest) (*feluda.Graph, error)
}

func (p *Parser) Ecosystem() feluda.Ecosystem {
	return p.EcosystemFn()
}

func (p *Parser) Parse(ctx context.Context, m feluda.Manifest) (*feluda.Graph, error) {
	return p.ParseFn(ctx, m)
}
