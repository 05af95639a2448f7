package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/randomizedcoder/go-handoff/internal/affinity"
	"github.com/randomizedcoder/go-handoff/internal/bytering"
	"github.com/randomizedcoder/go-handoff/internal/cancel"
	"github.com/randomizedcoder/go-handoff/internal/report"
	"github.com/randomizedcoder/go-handoff/internal/tick"
)

// yieldEvery is how many failed spins pass before a worker yields.
const yieldEvery = 64

type options struct {
	frames   int
	size     int
	capacity int
	cpu      int
	progress time.Duration
}

var errOptions = errors.New("ringbench: invalid options")

func (o options) validate() error {
	switch {
	case o.frames < 1:
		return fmt.Errorf("%w: -n must be >= 1", errOptions)
	case o.size < 8:
		return fmt.Errorf("%w: -size must be >= 8", errOptions)
	case o.capacity < o.size:
		return fmt.Errorf("%w: -cap %d cannot hold a %d-byte frame", errOptions, o.capacity, o.size)
	}
	return nil
}

type stats struct {
	pushRetries int64
	popRetries  int64
}

// run executes one benchmark. Progress lines go to w.
func run(o options, w io.Writer) report.Result {
	res := report.Result{Name: "ByteRing SPSC"}

	r, err := bytering.New(o.capacity)
	if err != nil {
		res.Err = err.Error()
		return res
	}

	stop := cancel.NewFlag()
	var prod, cons stats
	var received int64
	done := make(chan struct{})

	start := time.Now()

	go func() {
		defer close(done)
		received, cons = consume(r, o, stop, w)
	}()
	prod = produce(r, o, stop)
	<-done

	res.Duration = time.Since(start)
	res.Ops = received
	res.Bytes = received * int64(o.size)
	res.Counters = map[string]int64{
		"push_retries": prod.pushRetries,
		"pop_retries":  cons.popRetries,
	}
	if err := stop.Err(); err != nil {
		res.Err = err.Error()
	}
	return res
}

// produce is the only goroutine that calls r.Push.
func produce(r *bytering.ByteRing, o options, stop *cancel.Flag) stats {
	var st stats
	frame := make([]byte, o.size)

	for seq := uint64(0); seq < uint64(o.frames); seq++ {
		stamp(frame, seq)
		for spins := 1; !r.Push(frame); spins++ {
			if stop.Done() {
				return st
			}
			st.pushRetries++
			if spins%yieldEvery == 0 {
				runtime.Gosched()
			}
		}
	}
	return st
}

// consume is the only goroutine that calls r.Pop. A bad frame cancels stop
// so the producer gives up.
func consume(r *bytering.ByteRing, o options, stop *cancel.Flag, w io.Writer) (int64, stats) {
	var st stats

	if o.cpu >= 0 {
		release, err := affinity.Pin(o.cpu)
		if err != nil {
			stop.Cancel(err)
			return 0, st
		}
		defer release()
	}

	var progress tick.Ticker
	if o.progress > 0 {
		progress = tick.NewBatch(o.progress, 4096)
	}

	frame := make([]byte, o.size)
	for seq := uint64(0); seq < uint64(o.frames); seq++ {
		for spins := 1; !r.Pop(frame); spins++ {
			st.popRetries++
			if spins%yieldEvery == 0 {
				runtime.Gosched()
			}
		}
		if !verify(frame, seq) {
			stop.Cancel(fmt.Errorf("frame %d corrupt (header %d)", seq, binary.LittleEndian.Uint64(frame)))
			return int64(seq), st
		}
		if progress != nil && progress.Tick() {
			fmt.Fprintf(w, "  %d/%d frames, ring %d/%d bytes\n", seq+1, o.frames, r.Len(), r.Cap())
		}
	}
	return int64(o.frames), st
}

// stamp writes seq into the header and a seq-derived pattern after it.
func stamp(frame []byte, seq uint64) {
	binary.LittleEndian.PutUint64(frame, seq)
	for i := 8; i < len(frame); i++ {
		frame[i] = byte(seq) + byte(i)
	}
}

func verify(frame []byte, seq uint64) bool {
	if binary.LittleEndian.Uint64(frame) != seq {
		return false
	}
	for i := 8; i < len(frame); i++ {
		if frame[i] != byte(seq)+byte(i) {
			return false
		}
	}
	return true
}
