package cancel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/randomizedcoder/go-handoff/internal/cancel"
)

var errStop = errors.New("consumer: sequence gap")

func TestFlag(t *testing.T) {
	f := cancel.NewFlag()

	if f.Done() {
		t.Error("expected Done() = false before Cancel()")
	}
	if f.Err() != nil {
		t.Errorf("expected Err() = nil, got %v", f.Err())
	}

	f.Cancel(errStop)
	if !f.Done() {
		t.Error("expected Done() = true after Cancel()")
	}

	// First cause wins
	f.Cancel(errors.New("later"))
	if !errors.Is(f.Err(), errStop) {
		t.Errorf("expected first cause, got %v", f.Err())
	}
}

func TestFlag_NilCause(t *testing.T) {
	f := cancel.NewFlag()
	f.Cancel(nil)

	if !errors.Is(f.Err(), cancel.ErrCanceled) {
		t.Errorf("expected ErrCanceled, got %v", f.Err())
	}
}

func TestContext(t *testing.T) {
	c := cancel.NewContext(context.Background())

	if c.Done() {
		t.Error("expected Done() = false before Cancel()")
	}
	if c.Err() != nil {
		t.Errorf("expected Err() = nil, got %v", c.Err())
	}

	c.Cancel(errStop)
	if !c.Done() {
		t.Error("expected Done() = true after Cancel()")
	}
	if !errors.Is(c.Err(), errStop) {
		t.Errorf("expected cause, got %v", c.Err())
	}

	select {
	case <-c.Context().Done():
	default:
		t.Error("expected context to be done after Cancel()")
	}
}

func TestContext_Parent(t *testing.T) {
	parent, stop := context.WithCancel(context.Background())
	c := cancel.NewContext(parent)

	stop()
	if !c.Done() {
		t.Error("expected Done() = true after parent cancel")
	}
	if !errors.Is(c.Err(), context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", c.Err())
	}
}

// Test that both implementations satisfy the interface
func TestCancelerInterface(t *testing.T) {
	testCases := []struct {
		name string
		c    cancel.Canceler
	}{
		{"Flag", cancel.NewFlag()},
		{"Context", cancel.NewContext(context.Background())},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.c.Done() {
				t.Error("expected Done() = false initially")
			}

			tc.c.Cancel(nil)

			if !tc.c.Done() {
				t.Error("expected Done() = true after Cancel()")
			}
			if !errors.Is(tc.c.Err(), cancel.ErrCanceled) {
				t.Errorf("expected ErrCanceled, got %v", tc.c.Err())
			}
		})
	}
}
