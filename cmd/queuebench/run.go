package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/randomizedcoder/go-handoff/internal/cancel"
	"github.com/randomizedcoder/go-handoff/internal/pool"
	"github.com/randomizedcoder/go-handoff/internal/queue"
	"github.com/randomizedcoder/go-handoff/internal/report"
	"github.com/randomizedcoder/go-handoff/internal/tick"
)

type options struct {
	producers   int
	consumers   int
	perProducer int
	capacity    int
	block       int
	timeout     time.Duration
	progress    time.Duration
}

var errOptions = errors.New("queuebench: invalid options")

func (o options) validate() error {
	switch {
	case o.producers < 1, o.consumers < 1:
		return fmt.Errorf("%w: need at least one producer and one consumer", errOptions)
	case o.perProducer < 1:
		return fmt.Errorf("%w: -n must be >= 1", errOptions)
	case o.capacity < 0:
		return fmt.Errorf("%w: -cap must be >= 0", errOptions)
	case o.block < 8:
		return fmt.Errorf("%w: -block must be >= 8", errOptions)
	}
	return nil
}

// item is one unit of work: a pooled block stamped with its origin.
type item struct {
	producer int
	seq      uint64
	buf      []byte
}

// counters are shared by all workers of one run.
type counters struct {
	received  atomic.Int64
	timeouts  atomic.Int64
	poolWaits atomic.Int64
	corrupt   atomic.Int64
	rejected  atomic.Int64
}

// run executes one benchmark. Progress lines go to w; c ends the run early.
func run(c *cancel.Context, o options, w io.Writer) report.Result {
	q := queue.NewBlocking[item](o.capacity)

	// Every block is either in the queue or held by one worker.
	blocks := max(o.capacity, 1024) + o.producers + o.consumers
	p, err := pool.New(o.block, blocks)
	if err != nil {
		return report.Result{Name: "Blocking queue", Err: err.Error()}
	}

	var st counters
	var progress tick.Ticker
	if o.progress > 0 {
		progress = tick.NewAtomicTicker(o.progress)
	}
	total := int64(o.producers) * int64(o.perProducer)

	start := time.Now()

	var prodWG sync.WaitGroup
	for id := 0; id < o.producers; id++ {
		prodWG.Add(1)
		go func(id int) {
			defer prodWG.Done()
			produce(c, q, p, id, o.perProducer, &st)
		}(id)
	}

	var consWG sync.WaitGroup
	for i := 0; i < o.consumers; i++ {
		consWG.Add(1)
		go func() {
			defer consWG.Done()
			consume(q, p, o.timeout, &st, func() {
				if progress != nil && progress.Tick() {
					fmt.Fprintf(w, "  %d/%d items\n", st.received.Load(), total)
				}
			})
		}()
	}

	prodWG.Wait()
	q.Close()
	consWG.Wait()
	dur := time.Since(start)

	got := st.received.Load()
	res := report.Result{
		Name:     "Blocking queue",
		Ops:      got,
		Bytes:    got * int64(o.block),
		Duration: dur,
		Counters: map[string]int64{
			"timeouts":   st.timeouts.Load(),
			"pool_waits": st.poolWaits.Load(),
		},
	}

	switch {
	case c.Done():
		res.Err = fmt.Sprintf("interrupted after %d/%d items: %v", got, total, c.Err())
	case st.corrupt.Load() > 0:
		res.Err = fmt.Sprintf("%d corrupt items", st.corrupt.Load())
	case st.rejected.Load() > 0:
		res.Err = fmt.Sprintf("%d items rejected by a closed queue", st.rejected.Load())
	case got != total:
		res.Err = fmt.Sprintf("received %d of %d items", got, total)
	case p.Available() != blocks:
		res.Err = fmt.Sprintf("%d blocks leaked", blocks-p.Available())
	}
	return res
}

func produce(c *cancel.Context, q *queue.Blocking[item], p *pool.Pool, id, n int, st *counters) {
	for seq := uint64(0); seq < uint64(n); seq++ {
		if c.Done() {
			return
		}
		buf, ok := p.Get()
		for !ok {
			if c.Done() {
				return
			}
			st.poolWaits.Add(1)
			runtime.Gosched()
			buf, ok = p.Get()
		}
		stamp(buf, id, seq)

		if err := q.PushContext(c.Context(), item{producer: id, seq: seq, buf: buf}); err != nil {
			_ = p.Put(buf)
			if errors.Is(err, queue.ErrClosed) {
				st.rejected.Add(1)
			}
			return
		}
	}
}

func consume(q *queue.Blocking[item], p *pool.Pool, timeout time.Duration, st *counters, onItem func()) {
	for {
		var it item
		var ok bool
		if timeout > 0 {
			it, ok = q.PopFor(timeout)
			if !ok {
				if q.Closed() && q.Empty() {
					return
				}
				st.timeouts.Add(1)
				continue
			}
		} else if it, ok = q.Pop(); !ok {
			return
		}

		if !verify(it.buf, it.producer, it.seq) {
			st.corrupt.Add(1)
		}
		if err := p.Put(it.buf); err != nil {
			st.corrupt.Add(1)
		}
		st.received.Add(1)
		onItem()
	}
}

// stamp writes the item's identity into the block and fills the rest.
func stamp(buf []byte, producer int, seq uint64) {
	binary.LittleEndian.PutUint64(buf, seq<<16|uint64(producer&0xffff))
	fill := byte(seq) ^ byte(producer)
	for i := 8; i < len(buf); i++ {
		buf[i] = fill
	}
}

func verify(buf []byte, producer int, seq uint64) bool {
	if binary.LittleEndian.Uint64(buf) != seq<<16|uint64(producer&0xffff) {
		return false
	}
	fill := byte(seq) ^ byte(producer)
	for i := 8; i < len(buf); i++ {
		if buf[i] != fill {
			return false
		}
	}
	return true
}
