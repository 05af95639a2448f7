package cancel_test

import (
	"context"
	"sync"
	"testing"

	"github.com/randomizedcoder/go-handoff/internal/cancel"
)

// TestCanceler_Race tests concurrent Done/Cancel/Err on each implementation.
// Run with: go test -race ./internal/cancel
func TestCanceler_Race(t *testing.T) {
	testCases := []struct {
		name string
		c    cancel.Canceler
	}{
		{"Flag", cancel.NewFlag()},
		{"Context", cancel.NewContext(context.Background())},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var wg sync.WaitGroup

			// Spawn readers
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 10000; j++ {
						_ = tc.c.Done()
						_ = tc.c.Err()
					}
				}()
			}

			// Spawn competing writers
			for i := 0; i < 4; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					tc.c.Cancel(errStop)
				}()
			}

			wg.Wait()

			if !tc.c.Done() {
				t.Error("expected Done() = true after Cancel()")
			}
		})
	}
}
