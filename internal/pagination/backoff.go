package pagination

import (
	"math/rand/v2"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// JitterBackOff is a full-jitter exponential backoff: the n-th wait is drawn
// uniformly from [0, min(maxWait, multiplier*2^(n-1))].
type JitterBackOff struct {
	multiplier time.Duration
	maxWait    time.Duration
	retry      int
	randN      func(n int64) int64
}

var _ backoff.BackOff = (*JitterBackOff)(nil)

// NewJitterBackOff creates a backoff with the given multiplier and cap.
func NewJitterBackOff(multiplier, maxWait time.Duration) *JitterBackOff {
	return &JitterBackOff{
		multiplier: multiplier,
		maxWait:    maxWait,
		randN:      rand.Int64N,
	}
}

// NextBackOff returns the next wait.
func (b *JitterBackOff) NextBackOff() time.Duration {
	b.retry++

	ceiling := b.Ceiling(b.retry)
	if ceiling <= 0 {
		return 0
	}

	return time.Duration(b.randN(int64(ceiling) + 1))
}

// Reset restarts the sequence.
func (b *JitterBackOff) Reset() {
	b.retry = 0
}

// Ceiling is the upper bound of the wait before retry n (n >= 1).
func (b *JitterBackOff) Ceiling(n int) time.Duration {
	if b.multiplier <= 0 {
		return 0
	}

	ceiling := b.multiplier
	for i := 1; i < n; i++ {
		if ceiling >= b.maxWait {
			break
		}

		ceiling *= 2
	}

	return min(ceiling, b.maxWait)
}
