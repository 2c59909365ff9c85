package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	review := docsearch.HashContent("quarterly review")

	// Hash not yet added should return false
	assert.False(t, f.Test(review))

	f.Add(review)

	assert.True(t, f.Test(review))

	// Different content should still return false
	assert.False(t, f.Test(docsearch.HashContent("brand book")))
}

func TestNewFilterFrom(t *testing.T) {
	t.Parallel()

	hashes := []string{docsearch.HashContent("a"), docsearch.HashContent("b")}
	f := bloom.NewFilterFrom(hashes, 100, 0.01)

	assert.True(t, f.Test(hashes[0]))
	assert.True(t, f.Test(hashes[1]))
	assert.False(t, f.Test(docsearch.HashContent("c")))
}

func TestNewFilterFrom_Empty(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilterFrom(nil, 0, 0.01)
	f.Add("x")

	assert.True(t, f.Test("x"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	// Empty filter should have count near 0
	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add(docsearch.HashContent("one"))
	f.Add(docsearch.HashContent("two"))
	f.Add(docsearch.HashContent("three"))

	// Estimated count should be approximately 3
	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	hash := docsearch.HashContent("one")

	f.Add(hash)
	countAfterFirst := f.EstimatedCount()

	f.Add(hash)
	f.Add(hash)

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Test(hash))
}

func TestFilter_ConcurrentUse(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				h := docsearch.HashContent(fmt.Sprintf("doc-%d-%d", i, j))
				f.Add(h)
				f.Test(h)
			}
		}()
	}
	wg.Wait()

	assert.True(t, f.Test(docsearch.HashContent("doc-3-7")))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(docsearch.HashContent(fmt.Sprintf("added %d", i)))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(docsearch.HashContent(fmt.Sprintf("not added %d", i))) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
