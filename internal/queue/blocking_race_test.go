package queue_test

import (
	"sync"
	"testing"
	"time"

	"github.com/randomizedcoder/go-handoff/internal/queue"
)

// TestBlocking_MPMC_Race runs several producers and consumers through a
// small bounded queue and checks nothing is lost or duplicated.
// Run with: go test -race ./internal/queue
func TestBlocking_MPMC_Race(t *testing.T) {
	const (
		producers = 4
		consumers = 4
		perProd   = 2000
	)
	q := queue.NewBlocking[int](16)

	var prodWG sync.WaitGroup
	for p := 0; p < producers; p++ {
		prodWG.Add(1)
		go func(base int) {
			defer prodWG.Done()
			for i := 0; i < perProd; i++ {
				if !q.Push(base + i) {
					t.Errorf("Push(%d) rejected before Close()", base+i)
					return
				}
			}
		}(p * perProd)
	}

	seen := make([][]int, consumers)
	var consWG sync.WaitGroup
	for c := 0; c < consumers; c++ {
		consWG.Add(1)
		go func(c int) {
			defer consWG.Done()
			for {
				v, ok := q.Pop()
				if !ok {
					return
				}
				seen[c] = append(seen[c], v)
			}
		}(c)
	}

	prodWG.Wait()
	q.Close()
	consWG.Wait()

	counts := make([]int, producers*perProd)
	for _, s := range seen {
		for _, v := range s {
			counts[v]++
		}
	}
	for v, n := range counts {
		if n != 1 {
			t.Fatalf("item %d received %d times", v, n)
		}
	}
}

// TestBlocking_PerProducerOrder checks that values from one producer keep
// their relative order with a single consumer.
func TestBlocking_PerProducerOrder(t *testing.T) {
	const (
		producers = 3
		perProd   = 1000
	)
	q := queue.NewBlocking[[2]int](8)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProd; i++ {
				q.Push([2]int{p, i})
			}
		}(p)
	}
	go func() {
		wg.Wait()
		q.Close()
	}()

	next := make([]int, producers)
	for {
		v, ok := q.Pop()
		if !ok {
			break
		}
		if v[1] != next[v[0]] {
			t.Fatalf("producer %d: expected %d, got %d", v[0], next[v[0]], v[1])
		}
		next[v[0]]++
	}
	for p, n := range next {
		if n != perProd {
			t.Errorf("producer %d: expected %d items, got %d", p, perProd, n)
		}
	}
}

// TestBlocking_TimedWaitersRace mixes PopFor waiters with pushes and a
// final Close; every waiter must return.
func TestBlocking_TimedWaitersRace(t *testing.T) {
	q := queue.NewBlocking[int](4)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if _, ok := q.PopFor(time.Millisecond); !ok && q.Closed() {
					return
				}
			}
		}()
	}

	for i := 0; i < 1000; i++ {
		q.Push(i)
	}
	q.Close()

	if !waitGroupDone(&wg, waitTimeout) {
		t.Fatal("timed waiters did not exit after Close()")
	}
}
