package resolver

import (
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// newBackOff yields base, 2*base, 4*base, ... between attempts and stops
// after maxAttempts-1 waits. There is no jitter.
func newBackOff(base time.Duration, maxAttempts int) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = base
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = time.Duration(math.MaxInt64)
	b.MaxElapsedTime = 0
	b.Reset()

	retries := maxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithMaxRetries(b, uint64(retries))
}
