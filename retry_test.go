package docsearch_test

import (
	"testing"
	"time"

	"github.com/fwojciec/docsearch"
	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_Next(t *testing.T) {
	t.Parallel()

	policy := docsearch.DefaultRetryPolicy()

	t.Run("transport failures back off exponentially", func(t *testing.T) {
		t.Parallel()

		delay, ok := policy.Next(0, docsearch.FailureTransport)
		assert.True(t, ok)
		assert.Equal(t, 1*time.Second, delay)

		delay, ok = policy.Next(1, docsearch.FailureTransport)
		assert.True(t, ok)
		assert.Equal(t, 2*time.Second, delay)
	})

	t.Run("stops after the final attempt", func(t *testing.T) {
		t.Parallel()

		_, ok := policy.Next(2, docsearch.FailureTransport)
		assert.False(t, ok)
	})

	t.Run("endpoint failures are terminal", func(t *testing.T) {
		t.Parallel()

		_, ok := policy.Next(0, docsearch.FailureEndpoint)
		assert.False(t, ok)
	})

	t.Run("malformed responses are terminal", func(t *testing.T) {
		t.Parallel()

		_, ok := policy.Next(0, docsearch.FailureMalformed)
		assert.False(t, ok)
	})

	t.Run("single attempt budget never retries", func(t *testing.T) {
		t.Parallel()

		p := docsearch.RetryPolicy{MaxAttempts: 1, BaseDelay: time.Second, Multiplier: 2}
		_, ok := p.Next(0, docsearch.FailureTransport)
		assert.False(t, ok)
	})

	t.Run("non-positive multiplier keeps a constant delay", func(t *testing.T) {
		t.Parallel()

		p := docsearch.RetryPolicy{MaxAttempts: 4, BaseDelay: 50 * time.Millisecond}
		assert.Equal(t, []time.Duration{50 * time.Millisecond, 50 * time.Millisecond, 50 * time.Millisecond}, p.Delays())
	})
}

func TestRetryPolicy_Delays(t *testing.T) {
	t.Parallel()

	delays := docsearch.DefaultRetryPolicy().Delays()

	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, delays)
}

func TestFailureKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "transport", docsearch.FailureTransport.String())
	assert.Equal(t, "endpoint", docsearch.FailureEndpoint.String())
	assert.Equal(t, "malformed", docsearch.FailureMalformed.String())
	assert.Equal(t, "unknown", docsearch.FailureKind(0).String())
}
