// Package bloom provides content-hash deduplication using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter of document content hashes.
// It is safe for concurrent use.
type Filter struct {
	mu sync.RWMutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewFilterFrom creates a filter holding hashes, sized for the hashes plus
// headroom for items added later.
func NewFilterFrom(hashes []string, headroom uint, fpRate float64) *Filter {
	f := NewFilter(uint(len(hashes))+headroom, fpRate)
	for _, h := range hashes {
		f.f.AddString(h)
	}
	return f
}

// Add adds a content hash to the filter.
func (f *Filter) Add(hash string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(hash)
}

// Test returns true if the hash might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(hash string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.f.TestString(hash)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return uint(f.f.ApproximatedSize())
}
