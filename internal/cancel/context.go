package cancel

import "context"

// Context adapts context.WithCancelCause to the Canceler interface.
//
// Done() performs a non-blocking select on ctx.Done(), which costs more
// than Flag but lets the same signal end context-aware blocking calls.
type Context struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
}

// NewContext creates a Context canceled when parent ends or on Cancel.
func NewContext(parent context.Context) *Context {
	ctx, cancel := context.WithCancelCause(parent)
	return &Context{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Done returns true if the context has ended.
func (c *Context) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel ends the context with cause.
func (c *Context) Cancel(cause error) {
	if cause == nil {
		cause = ErrCanceled
	}
	c.cancel(cause)
}

// Err returns the cancellation cause, or nil while the context is live.
// A parent that ended on its own reports its own error.
func (c *Context) Err() error {
	if c.ctx.Err() == nil {
		return nil
	}
	return context.Cause(c.ctx)
}

// Context returns the underlying context.Context.
func (c *Context) Context() context.Context {
	return c.ctx
}
