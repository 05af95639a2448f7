package tick

import (
	"sync/atomic"
	"time"
)

// AtomicTicker keeps the last tick time in an atomic so any goroutine can
// poll it without locks.
type AtomicTicker struct {
	interval int64 // nanoseconds
	lastTick atomic.Int64
}

// NewAtomicTicker creates an AtomicTicker with the specified interval.
func NewAtomicTicker(interval time.Duration) *AtomicTicker {
	t := &AtomicTicker{
		interval: int64(interval),
	}
	t.lastTick.Store(now())
	return t
}

// Tick returns true if the interval has elapsed since the last tick.
// A CAS makes sure only one concurrent caller sees each tick.
func (a *AtomicTicker) Tick() bool {
	n := now()
	last := a.lastTick.Load()

	if n-last >= a.interval {
		return a.lastTick.CompareAndSwap(last, n)
	}
	return false
}

// Reset resets the ticker to start a new interval from now.
func (a *AtomicTicker) Reset() {
	a.lastTick.Store(now())
}

// Interval returns the ticker's interval.
func (a *AtomicTicker) Interval() time.Duration {
	return time.Duration(a.interval)
}
