package ingest

import (
	"context"

	"github.com/fwojciec/docsearch"
	"golang.org/x/time/rate"
)

var _ docsearch.RateLimiter = (*Limiter)(nil)

// Limiter paces categorization requests with a token bucket so a large
// batch stays under the inference provider's quota.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter allows rps requests per second with the given burst.
// A non-positive rps disables limiting.
func NewLimiter(rps float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &Limiter{limiter: rate.NewLimiter(limit, burst)}
}

// Wait blocks until a request is allowed.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
