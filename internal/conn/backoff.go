package conn

import (
	"time"

	"github.com/sethvargo/go-retry"
)

// newBackoff builds the reconnect delay generator: exponential growth from
// initial by multiplier, capped at max, with optional jitter to avoid
// thundering-herd reconnects against the server.
//
// The un-jittered delay sequence is non-decreasing and stays at max once
// reached.
func newBackoff(initial, max time.Duration, multiplier float64, jitter time.Duration) retry.Backoff {
	next := initial
	var b retry.Backoff = retry.BackoffFunc(func() (time.Duration, bool) {
		d := next
		grown := time.Duration(float64(next) * multiplier)
		if grown > max || grown < next { // overflow guard
			grown = max
		}
		next = grown
		return d, false
	})

	b = retry.WithCappedDuration(max, b)
	if jitter > 0 {
		b = retry.WithJitter(jitter, b)
	}

	return b
}
