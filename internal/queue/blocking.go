package queue

import (
	"context"
	"sync"
	"time"

	deque "github.com/eapache/queue/v2"
)

// Blocking is a thread-safe FIFO queue with optional backpressure.
//
// A capacity of 0 means unbounded: Push never waits for space.
// A Blocking must not be copied after first use.
type Blocking[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond // signaled when an item is added
	notFull  *sync.Cond // signaled when space is freed

	items    *deque.Queue[T]
	capacity int
	closed   bool
}

// NewBlocking creates a Blocking queue holding at most capacity items.
// A capacity <= 0 creates an unbounded queue.
func NewBlocking[T any](capacity int) *Blocking[T] {
	if capacity < 0 {
		capacity = 0
	}
	q := &Blocking[T]{
		items:    deque.New[T](),
		capacity: capacity,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// full reports whether a bounded queue has no free slot. Caller holds mu.
func (q *Blocking[T]) full() bool {
	return q.capacity > 0 && q.items.Length() >= q.capacity
}

// Push appends v, waiting while the queue is full.
//
// Returns false if the queue is closed before or while waiting; v is not
// enqueued in that case.
func (q *Blocking[T]) Push(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.full() && !q.closed {
		q.notFull.Wait()
	}
	if q.closed {
		return false
	}

	q.items.Add(v)
	q.notEmpty.Signal()
	return true
}

// Emplace is Push with the value built in place: fn runs under the queue
// lock, only once space has been granted, and never on a closed queue.
//
// fn must not call back into q.
func (q *Blocking[T]) Emplace(fn func() T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.full() && !q.closed {
		q.notFull.Wait()
	}
	if q.closed {
		return false
	}

	q.items.Add(fn())
	q.notEmpty.Signal()
	return true
}

// TryPush appends v without waiting.
// Returns false if the queue is full or closed.
func (q *Blocking[T]) TryPush(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed || q.full() {
		return false
	}

	q.items.Add(v)
	q.notEmpty.Signal()
	return true
}

// PushContext is Push bounded by ctx.
//
// Returns ErrClosed if the queue is closed, or ctx.Err() if ctx ends
// first.
func (q *Blocking[T]) PushContext(ctx context.Context, v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.full() && !q.closed {
		stop := context.AfterFunc(ctx, func() { q.broadcast(q.notFull) })
		defer stop()

		for q.full() && !q.closed {
			if err := ctx.Err(); err != nil {
				return err
			}
			q.notFull.Wait()
		}
	}
	if q.closed {
		return ErrClosed
	}

	q.items.Add(v)
	q.notEmpty.Signal()
	return nil
}

// Pop removes the oldest item, waiting while the queue is empty.
//
// The second result is false only when the queue is closed and drained.
func (q *Blocking[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.Length() == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	return q.take()
}

// TryPop removes the oldest item without waiting.
// Returns false if the queue is currently empty, closed or not.
func (q *Blocking[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.take()
}

// PopFor is Pop bounded by a relative timeout.
// Returns false on timeout or once the queue is closed and drained.
func (q *Blocking[T]) PopFor(timeout time.Duration) (T, bool) {
	return q.PopUntil(time.Now().Add(timeout))
}

// PopUntil is Pop bounded by an absolute deadline.
// Returns false on timeout or once the queue is closed and drained.
func (q *Blocking[T]) PopUntil(deadline time.Time) (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.Length() == 0 && !q.closed {
		d := time.Until(deadline)
		if d <= 0 {
			var zero T
			return zero, false
		}

		// sync.Cond has no timed wait: the timer wakes every popper and
		// each one re-checks its own deadline.
		t := time.AfterFunc(d, func() { q.broadcast(q.notEmpty) })
		defer t.Stop()

		for q.items.Length() == 0 && !q.closed {
			if !time.Now().Before(deadline) {
				var zero T
				return zero, false
			}
			q.notEmpty.Wait()
		}
	}
	return q.take()
}

// PopContext is Pop bounded by ctx.
//
// Returns ErrClosed once the queue is closed and drained, or ctx.Err() if
// ctx ends first.
func (q *Blocking[T]) PopContext(ctx context.Context) (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.Length() == 0 && !q.closed {
		stop := context.AfterFunc(ctx, func() { q.broadcast(q.notEmpty) })
		defer stop()

		for q.items.Length() == 0 && !q.closed {
			if err := ctx.Err(); err != nil {
				var zero T
				return zero, err
			}
			q.notEmpty.Wait()
		}
	}

	if v, ok := q.take(); ok {
		return v, nil
	}
	var zero T
	return zero, ErrClosed
}

// take removes the head item and wakes one pusher. Caller holds mu.
func (q *Blocking[T]) take() (T, bool) {
	if q.items.Length() == 0 {
		var zero T
		return zero, false
	}

	v := q.items.Remove()
	q.notFull.Signal()
	return v, true
}

// broadcast wakes every waiter on c. Taking mu first orders the wakeup
// after any waiter that has checked its predicate but not yet parked.
func (q *Blocking[T]) broadcast(c *sync.Cond) {
	q.mu.Lock()
	c.Broadcast()
	q.mu.Unlock()
}

// Close marks the queue closed and wakes every blocked producer and
// consumer. Calling Close more than once is a no-op.
func (q *Blocking[T]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// Clear discards every buffered item and wakes producers waiting for
// space. It does not close the queue.
func (q *Blocking[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = deque.New[T]()
	q.notFull.Broadcast()
}

// Closed reports whether Close has been called.
func (q *Blocking[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Len returns the number of buffered items.
// This is a snapshot and may be stale by the time it is used.
func (q *Blocking[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}

// Empty reports whether no items are buffered. Same caveat as Len.
func (q *Blocking[T]) Empty() bool {
	return q.Len() == 0
}

// Cap returns the configured capacity, 0 for unbounded.
func (q *Blocking[T]) Cap() int {
	return q.capacity
}
