package tick

import "time"

// BatchTicker checks the clock only every N calls to Tick().
//
// Not safe for concurrent use; give each loop its own.
type BatchTicker struct {
	interval int64
	every    int
	count    int
	lastTick int64
}

// NewBatch creates a BatchTicker that reads the clock every N calls.
// every < 1 is treated as 1.
func NewBatch(interval time.Duration, every int) *BatchTicker {
	if every < 1 {
		every = 1
	}
	return &BatchTicker{
		interval: int64(interval),
		every:    every,
		lastTick: now(),
	}
}

// Tick returns true if the interval has elapsed. Between clock reads it
// returns false without looking at the time.
func (b *BatchTicker) Tick() bool {
	b.count++
	if b.count < b.every {
		return false
	}
	b.count = 0

	n := now()
	if n-b.lastTick >= b.interval {
		b.lastTick = n
		return true
	}
	return false
}

// Reset resets the ticker state.
func (b *BatchTicker) Reset() {
	b.count = 0
	b.lastTick = now()
}

// Every returns the batch size.
func (b *BatchTicker) Every() int {
	return b.every
}
