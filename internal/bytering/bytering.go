// Package bytering provides a fixed-capacity lock-free byte ring for
// exactly one producer goroutine and one consumer goroutine.
//
// # Safety (IMPORTANT)
//
// ByteRing is Single-Producer Single-Consumer (SPSC):
//   - Exactly ONE goroutine calls Push
//   - Exactly ONE goroutine calls Pop, Peek and Discard
//   - These may be the same goroutine or different goroutines
//
// Violating this is a data race with undefined results. It is not detected
// at runtime.
//
// # Transfers
//
// Push and Pop move the whole slice or nothing. A call that does not fit
// returns false and leaves the ring untouched; retrying is the caller's
// business. No operation blocks and none allocates after New.
package bytering

import (
	"errors"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// ErrInvalidCapacity is returned by New for a capacity below 1.
var ErrInvalidCapacity = errors.New("bytering: capacity must be >= 1")

// ByteRing is a circular byte buffer indexed by two atomic cursors.
//
// The backing slice holds capacity+1 bytes so head == tail always means
// empty; full is head one slot behind tail.
type ByteRing struct {
	buf []byte

	_ cpu.CacheLinePad

	head atomic.Uint64 // next write offset; stored by producer, loaded by consumer

	_ cpu.CacheLinePad

	tail atomic.Uint64 // next read offset; stored by consumer, loaded by producer

	_ cpu.CacheLinePad
}

// New creates a ByteRing able to hold capacity bytes.
func New(capacity int) (*ByteRing, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &ByteRing{
		buf: make([]byte, capacity+1),
	}, nil
}

// Push copies all of p into the ring.
// Returns false if r is nil, p is empty, or p does not fit in Free().
//
// SPSC CONTRACT: Only ONE goroutine may call Push().
func (r *ByteRing) Push(p []byte) bool {
	if r == nil || len(p) == 0 {
		return false
	}

	n := uint64(len(r.buf))
	head := r.head.Load()
	tail := r.tail.Load() // acquire: consumer is done with bytes before tail

	if uint64(len(p)) > (tail+n-head-1)%n {
		return false
	}

	first := copy(r.buf[head:], p)
	copy(r.buf, p[first:])

	// Publish only after the copy: the consumer must never see the new
	// head before the bytes it covers.
	r.head.Store((head + uint64(len(p))) % n)
	return true
}

// Pop copies len(p) bytes out of the ring into p.
// Returns false if r is nil, p is empty, or fewer than len(p) bytes are
// buffered.
//
// SPSC CONTRACT: Only ONE goroutine may call Pop().
func (r *ByteRing) Pop(p []byte) bool {
	if !r.read(p) {
		return false
	}
	r.advance(uint64(len(p)))
	return true
}

// Peek is Pop without consuming: the bytes stay in the ring.
// Consumer side only.
func (r *ByteRing) Peek(p []byte) bool {
	return r.read(p)
}

// Discard drops k buffered bytes without copying them.
// Returns false if k < 1 or fewer than k bytes are buffered.
// Consumer side only.
func (r *ByteRing) Discard(k int) bool {
	if r == nil || k < 1 || k > r.Len() {
		return false
	}
	r.advance(uint64(k))
	return true
}

// read copies len(p) bytes starting at tail without moving tail.
func (r *ByteRing) read(p []byte) bool {
	if r == nil || len(p) == 0 {
		return false
	}

	n := uint64(len(r.buf))
	tail := r.tail.Load()
	head := r.head.Load() // acquire: bytes before head are published

	if uint64(len(p)) > (head+n-tail)%n {
		return false
	}

	first := copy(p, r.buf[tail:])
	copy(p[first:], r.buf)
	return true
}

// advance publishes tail+k once the consumer is done with those bytes.
func (r *ByteRing) advance(k uint64) {
	n := uint64(len(r.buf))
	r.tail.Store((r.tail.Load() + k) % n)
}

// Len returns the number of buffered bytes.
// This is a snapshot; a running peer may change it immediately.
func (r *ByteRing) Len() int {
	if r == nil {
		return 0
	}
	n := uint64(len(r.buf))
	// tail before head: head only moves toward the next tail, so a stale
	// tail can overstate the count but a stale head cannot wrap it.
	// Rechecking tail makes the pair exact for an observer goroutine.
	var head, tail uint64
	for i := 0; i < 4; i++ {
		tail = r.tail.Load()
		head = r.head.Load()
		if r.tail.Load() == tail {
			break
		}
	}
	return int((head + n - tail) % n)
}

// Free returns how many bytes Push can accept right now.
func (r *ByteRing) Free() int {
	if r == nil {
		return 0
	}
	return r.Cap() - r.Len()
}

// Empty reports whether no bytes are buffered.
func (r *ByteRing) Empty() bool {
	return r.Len() == 0
}

// Full reports whether Push would reject even a single byte.
func (r *ByteRing) Full() bool {
	return r.Free() == 0
}

// Cap returns the capacity requested at New.
func (r *ByteRing) Cap() int {
	if r == nil {
		return 0
	}
	return len(r.buf) - 1
}
