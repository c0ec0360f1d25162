package bloom_test

import (
	"fmt"
	"testing"

	"github.com/feluda-dev/feluda/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	// Key not yet added should return false
	assert.False(t, f.Test("cargo/serde@1.0.210"))

	f.Add("cargo/serde@1.0.210")
	assert.True(t, f.Test("cargo/serde@1.0.210"))

	// Different key should still return false
	assert.False(t, f.Test("cargo/serde@1.0.209"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("npm/express@4.18.2")
	f.Add("npm/accepts@1.3.8")
	f.Add("npm/mime-types@2.1.35")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	key := "go/github.com/stretchr/testify@v1.11.1"

	f.Add(key)
	countAfterFirst := f.EstimatedCount()

	// Adding the same key multiple times should not change the filter
	f.Add(key)
	f.Add(key)
	f.Add(key)

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Test(key))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := 0; i < numItems; i++ {
		f.Add(fmt.Sprintf("npm/added-%d@1.0.0", i))
	}

	falsePositives := 0
	for i := 0; i < testProbes; i++ {
		key := fmt.Sprintf("npm/notadded-%d@1.0.0", i)
		if f.Test(key) {
			falsePositives++
		}
	}

	// False positive rate should be approximately 1%
	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
