package cancel

import "sync/atomic"

// Flag is an atomic one-way stop flag.
//
// Done() is a single atomic load, cheap enough to check on every
// iteration of a spin-retry loop around a lock-free ring.
type Flag struct {
	cause atomic.Pointer[error]
}

// NewFlag creates a Flag that is not yet canceled.
func NewFlag() *Flag {
	return &Flag{}
}

// Done returns true if Cancel has been called.
func (f *Flag) Done() bool {
	return f.cause.Load() != nil
}

// Cancel sets the flag. The first non-racing call wins the cause.
func (f *Flag) Cancel(cause error) {
	if cause == nil {
		cause = ErrCanceled
	}
	f.cause.CompareAndSwap(nil, &cause)
}

// Err returns the cause passed to the winning Cancel call.
func (f *Flag) Err() error {
	if p := f.cause.Load(); p != nil {
		return *p
	}
	return nil
}
