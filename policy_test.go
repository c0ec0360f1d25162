package feluda_test

import (
	"testing"

	"github.com/feluda-dev/feluda"
	"github.com/stretchr/testify/assert"
)

func TestPolicy_Evaluate(t *testing.T) {
	t.Parallel()

	declared := func(id string) feluda.Resolution {
		return feluda.Resolution{Expression: id, License: id, Confidence: feluda.ConfidenceDeclared}
	}
	unknown := feluda.Resolution{Confidence: feluda.ConfidenceUnknown}

	t.Run("declared MIT with MIT allowed is allowed", func(t *testing.T) {
		t.Parallel()
		p := &feluda.Policy{Allow: []string{"MIT"}}
		assert.Equal(t, feluda.VerdictAllowed, p.Evaluate(declared("MIT")))
	})

	t.Run("allow list denies everything else", func(t *testing.T) {
		t.Parallel()
		p := &feluda.Policy{Allow: []string{"MIT"}}
		assert.Equal(t, feluda.VerdictDenied, p.Evaluate(declared("GPL-3.0")))
	})

	t.Run("deny wins over allow", func(t *testing.T) {
		t.Parallel()
		p := &feluda.Policy{Allow: []string{"MIT"}, Deny: []string{"MIT"}}
		assert.Equal(t, feluda.VerdictDenied, p.Evaluate(declared("MIT")))
	})

	t.Run("empty policy allows resolved licenses", func(t *testing.T) {
		t.Parallel()
		p := &feluda.Policy{}
		assert.Equal(t, feluda.VerdictAllowed, p.Evaluate(declared("GPL-3.0")))
	})

	t.Run("unresolvable license is denied by default", func(t *testing.T) {
		t.Parallel()
		p := &feluda.Policy{}
		assert.Equal(t, feluda.VerdictDenied, p.Evaluate(unknown))
	})

	t.Run("allow unknown yields unknown verdict", func(t *testing.T) {
		t.Parallel()
		p := &feluda.Policy{AllowUnknown: true}
		assert.Equal(t, feluda.VerdictUnknown, p.Evaluate(unknown))
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		t.Parallel()
		p := &feluda.Policy{Deny: []string{"gpl-3.0"}}
		assert.Equal(t, feluda.VerdictDenied, p.Evaluate(declared("GPL-3.0")))
	})

	t.Run("evaluation is deterministic", func(t *testing.T) {
		t.Parallel()
		p := &feluda.Policy{Allow: []string{"MIT", "Apache-2.0"}, Deny: []string{"GPL-3.0"}}
		inputs := []feluda.Resolution{
			declared("MIT"),
			declared("Apache-2.0"),
			declared("GPL-3.0"),
			unknown,
		}
		first := make([]feluda.Verdict, len(inputs))
		for i, in := range inputs {
			first[i] = p.Evaluate(in)
		}
		for run := 0; run < 10; run++ {
			for i, in := range inputs {
				assert.Equal(t, first[i], p.Evaluate(in))
			}
		}
	})
}

func TestPolicy_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		p := &feluda.Policy{Allow: []string{"MIT"}, Prefer: feluda.PreferPermissive}
		assert.NoError(t, p.Validate())
	})

	t.Run("empty allow entry", func(t *testing.T) {
		t.Parallel()
		p := &feluda.Policy{Allow: []string{" "}}
		assert.Equal(t, feluda.EINVALID, feluda.ErrorCode(p.Validate()))
	})

	t.Run("bad prefer value", func(t *testing.T) {
		t.Parallel()
		p := &feluda.Policy{Prefer: "strictest"}
		assert.Equal(t, feluda.EINVALID, feluda.ErrorCode(p.Validate()))
	})
}
