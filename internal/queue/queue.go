// Package queue provides a bounded blocking FIFO queue for handing values
// between goroutines.
//
// Blocking is safe for any number of producers and consumers. It offers
// blocking, non-blocking, timed and context-aware removal, plus a one-way
// Close that wakes every waiter.
//
// # Shutdown
//
// Close is the only way to release goroutines parked in Push or Pop without
// handing them a value. After Close returns:
//   - every Push variant fails and enqueues nothing
//   - every Pop variant keeps returning buffered items until the queue is
//     drained, then reports no value without blocking
//
// # Fairness
//
// Items leave in the order they were added. Which of several blocked
// goroutines is woken first is up to the runtime and is not FIFO by
// arrival.
package queue

import "errors"

// ErrClosed is returned by the context variants once the queue is closed
// (and, for removal, drained).
var ErrClosed = errors.New("queue: closed")

// Queue is the non-blocking half of the Blocking contract.
//
// TryPush returns false if the queue is full or closed,
// TryPop returns false if the queue is empty.
type Queue[T any] interface {
	TryPush(T) bool
	TryPop() (T, bool)
}

var _ Queue[int] = (*Blocking[int])(nil)
