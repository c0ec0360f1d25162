// Package spdx provides SPDX license expression parsing, identifier
// normalization, license-text detection, and policy-relevant classification
// of licenses. Everything in this package is pure: no I/O, no ambient state.
package spdx

import (
	"strings"

	"github.com/feluda-dev/feluda"
)

// Expr is a parsed license expression. The concrete types are ID, And,
// and Or.
type Expr interface {
	// String renders the expression back in SPDX syntax.
	String() string

	// Licenses returns the normalized identifiers mentioned in the
	// expression, left to right, without duplicates.
	Licenses() []string
}

// ID is a single license identifier, optionally with a WITH exception.
type ID struct {
	Name      string
	Exception string
}

func (i ID) String() string {
	if i.Exception != "" {
		return i.Name + " WITH " + i.Exception
	}
	return i.Name
}

// Licenses implements Expr.
func (i ID) Licenses() []string { return []string{i.Name} }

// And is a conjunction: both sides apply.
type And struct {
	Left, Right Expr
}

func (a And) String() string {
	return a.Left.String() + " AND " + a.Right.String()
}

// Licenses implements Expr.
func (a And) Licenses() []string {
	return mergeLicenses(a.Left.Licenses(), a.Right.Licenses())
}

// Or is a disjunction: the consumer may choose either side.
type Or struct {
	Left, Right Expr
}

func (o Or) String() string {
	return o.Left.String() + " OR " + o.Right.String()
}

// Licenses implements Expr.
func (o Or) Licenses() []string {
	return mergeLicenses(o.Left.Licenses(), o.Right.Licenses())
}

func mergeLicenses(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, id := range append(a, b...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Parse parses an SPDX license expression such as "MIT OR Apache-2.0" or
// "(MIT AND BSD-3-Clause) OR GPL-3.0". Identifiers are normalized via
// Normalize. The legacy "/" separator used by older npm packages is treated
// as OR. Returns EINVALID for malformed expressions.
func Parse(input string) (Expr, error) {
	p := &parser{tokens: tokenize(input)}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, feluda.Errorf(feluda.EINVALID, "unexpected token %q in license expression %q", p.tokens[p.pos], input)
	}
	return expr, nil
}

func tokenize(input string) []string {
	input = strings.ReplaceAll(input, "(", " ( ")
	input = strings.ReplaceAll(input, ")", " ) ")
	input = strings.ReplaceAll(input, "/", " OR ")
	return strings.Fields(input)
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (string, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || !strings.EqualFold(tok, "OR") {
			return left, nil
		}
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or{Left: left, Right: right}
	}
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || !strings.EqualFold(tok, "AND") {
			return left, nil
		}
		p.pos++
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}
}

func (p *parser) parsePrimary() (Expr, error) {
	tok, ok := p.next()
	if !ok {
		return nil, feluda.Errorf(feluda.EINVALID, "empty license expression")
	}
	if tok == "(" {
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing, ok := p.next(); !ok || closing != ")" {
			return nil, feluda.Errorf(feluda.EINVALID, "missing closing parenthesis in license expression")
		}
		return expr, nil
	}
	if tok == ")" || strings.EqualFold(tok, "AND") || strings.EqualFold(tok, "OR") {
		return nil, feluda.Errorf(feluda.EINVALID, "unexpected %q in license expression", tok)
	}

	id := ID{Name: Normalize(tok)}
	if with, ok := p.peek(); ok && strings.EqualFold(with, "WITH") {
		p.pos++
		exc, ok := p.next()
		if !ok {
			return nil, feluda.Errorf(feluda.EINVALID, "WITH requires an exception identifier")
		}
		id.Exception = exc
	}
	return id, nil
}

// Choose picks a single identifier out of an expression according to the
// preference. For OR alternatives the preferred side wins; AND terms all
// apply, so the most restrictive term represents the conjunction regardless
// of preference.
func Choose(expr Expr, prefer feluda.Preference) string {
	switch e := expr.(type) {
	case ID:
		return e.Name
	case And:
		return moreRestrictive(Choose(e.Left, prefer), Choose(e.Right, prefer))
	case Or:
		left, right := Choose(e.Left, prefer), Choose(e.Right, prefer)
		if prefer == feluda.PreferPermissive {
			return lessRestrictive(left, right)
		}
		return moreRestrictive(left, right)
	}
	return ""
}

// Rank orders licenses by restrictiveness: permissive < weak copyleft <
// strong copyleft < unrecognized.
func Rank(id string) int {
	switch Normalize(id) {
	case "0BSD", "MIT", "ISC", "BSD-2-Clause", "BSD-3-Clause", "Apache-2.0",
		"Zlib", "Unlicense", "WTFPL":
		return 0
	case "MPL-2.0", "LGPL-2.1", "LGPL-3.0":
		return 1
	case "GPL-2.0", "GPL-3.0", "AGPL-3.0":
		return 2
	}
	return 3
}

func moreRestrictive(a, b string) string {
	if Rank(b) > Rank(a) {
		return b
	}
	return a
}

func lessRestrictive(a, b string) string {
	if Rank(b) < Rank(a) {
		return b
	}
	return a
}
