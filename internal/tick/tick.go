// Package tick provides periodic triggers cheap enough to poll from a
// producer or consumer hot loop, e.g. to print progress while a ring is
// being drained.
//
// Implementations of the Ticker interface:
//   - AtomicTicker: compares a monotonic timestamp held in an atomic
//   - BatchTicker: only reads the clock every N calls
package tick

import "time"

// Ticker signals when a time interval has elapsed.
type Ticker interface {
	// Tick returns true if the interval has elapsed since the last tick.
	// This is a non-blocking check.
	Tick() bool

	// Reset starts a new interval from now.
	Reset()
}

// epoch anchors monotonic readings; time.Since keeps the monotonic clock.
var epoch = time.Now()

// now returns monotonic nanoseconds since epoch.
func now() int64 {
	return int64(time.Since(epoch))
}
