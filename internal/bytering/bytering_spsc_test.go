package bytering_test

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/randomizedcoder/go-handoff/internal/bytering"
)

// TestByteRing_SPSC_Valid tests the valid SPSC pattern: one producer
// goroutine, one consumer goroutine, variable-size frames that wrap.
// Run with: go test -race ./internal/bytering
func TestByteRing_SPSC_Valid(t *testing.T) {
	r, err := bytering.New(61) // odd size so frames straddle the wrap point
	if err != nil {
		t.Fatal(err)
	}
	const count = 20000
	done := make(chan struct{})

	// Producer (single goroutine)
	go func() {
		defer close(done)
		var frame [12]byte
		for i := uint32(0); i < count; i++ {
			binary.LittleEndian.PutUint32(frame[:4], i)
			binary.LittleEndian.PutUint64(frame[4:], uint64(i)*0x9e3779b97f4a7c15)
			for !r.Push(frame[:]) {
				// Spin until push succeeds
			}
		}
	}()

	// Consumer (single goroutine - this test's main goroutine)
	var frame [12]byte
	for i := uint32(0); i < count; {
		if !r.Pop(frame[:]) {
			continue
		}
		seq := binary.LittleEndian.Uint32(frame[:4])
		sum := binary.LittleEndian.Uint64(frame[4:])
		if seq != i {
			t.Fatalf("order violation: expected %d, got %d", i, seq)
		}
		if sum != uint64(i)*0x9e3779b97f4a7c15 {
			t.Fatalf("torn frame %d: payload %x", i, sum)
		}
		i++
	}

	<-done
	if !r.Empty() {
		t.Errorf("expected empty ring, Len() = %d", r.Len())
	}
}

// TestByteRing_SPSC_SizeBounds checks Len() from the consumer side always
// stays within [0, Cap()] while the producer runs.
func TestByteRing_SPSC_SizeBounds(t *testing.T) {
	r, err := bytering.New(32)
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan struct{})

	go func() {
		defer close(done)
		b := []byte{1, 2, 3}
		for i := 0; i < 5000; i++ {
			for !r.Push(b) {
			}
		}
	}()

	out := make([]byte, 3)
	for popped := 0; popped < 5000; {
		if n := r.Len(); n < 0 || n > r.Cap() {
			t.Fatalf("Len() = %d out of bounds [0, %d]", n, r.Cap())
		}
		if r.Pop(out) {
			popped++
		}
	}
	<-done
}

// TestByteRing_SPSC_ObserverLen checks Len from a third goroutine while
// both peers run. The producer only pushes into an empty ring, so at most
// 4 bytes are ever buffered.
// Run with: go test -race ./internal/bytering
func TestByteRing_SPSC_ObserverLen(t *testing.T) {
	r, err := bytering.New(1000)
	if err != nil {
		t.Fatal(err)
	}
	const count = 20000
	var stop atomic.Bool
	produced := make(chan struct{})
	observed := make(chan int, 1)

	go func() {
		defer close(produced)
		b := []byte{1, 2, 3, 4}
		for i := 0; i < count; i++ {
			for !r.Empty() {
			}
			if !r.Push(b) {
				t.Errorf("Push(%d) into an empty ring failed", i)
				return
			}
		}
	}()

	go func() {
		maxLen := 0
		for !stop.Load() {
			if n := r.Len(); n > maxLen {
				maxLen = n
			}
		}
		observed <- maxLen
	}()

	out := make([]byte, 4)
	for popped := 0; popped < count; {
		if r.Pop(out) {
			popped++
		}
	}
	<-produced
	stop.Store(true)

	if maxLen := <-observed; maxLen > 4 {
		t.Errorf("expected observer Len() <= 4, got %d", maxLen)
	}
}
