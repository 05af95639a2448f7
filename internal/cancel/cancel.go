// Package cancel provides one-way stop signals for producer and consumer
// loops.
//
// Two implementations of the Canceler interface:
//   - Flag: a single atomic load per Done(), for spin loops that poll
//   - Context: wraps context.WithCancelCause, for code that also needs a
//     context.Context to hand to blocking calls
//
// Both record the first cause passed to Cancel; later causes are dropped.
package cancel

import "errors"

// ErrCanceled is the cause recorded when Cancel is called with nil.
var ErrCanceled = errors.New("cancel: canceled")

// Canceler signals workers to stop.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() and Err() concurrently
//   - Cancel() may be called concurrently with Done(), from any goroutine
type Canceler interface {
	// Done returns true once Cancel has been called. Never blocks.
	Done() bool

	// Cancel triggers cancellation. Only the first call's cause is kept.
	Cancel(cause error)

	// Err returns the recorded cause, or nil if not canceled.
	Err() error
}
