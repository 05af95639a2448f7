// Command ringbench measures single-producer/single-consumer throughput of
// the lock-free byte ring.
//
// The producer writes fixed-size frames carrying a sequence number and
// spin-retries while the ring is full; the consumer spin-retries while it
// is empty and checks every frame. The consumer can be pinned to a CPU.
//
// Usage:
//
//	go run ./cmd/ringbench -n 10000000 -size 64 -cap 65536
//	go run ./cmd/ringbench -cpu 2 -json
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/randomizedcoder/go-handoff/internal/config"
	"github.com/randomizedcoder/go-handoff/internal/report"
)

func main() {
	var o options
	flag.IntVar(&o.frames, "n", 10_000_000, "number of frames")
	flag.IntVar(&o.size, "size", 64, "frame size in bytes (>= 8)")
	flag.IntVar(&o.capacity, "cap", 64*1024, "ring capacity in bytes")
	flag.IntVar(&o.cpu, "cpu", -1, "pin the consumer to this CPU (-1 = no pinning)")
	flag.DurationVar(&o.progress, "progress", time.Second, "progress interval (0 = quiet)")
	asJSON := flag.Bool("json", false, "print the result as JSON")
	cfgPath := flag.String("config", "", "INI file with a [ringbench] section")
	flag.Parse()

	if err := config.ApplyFile(flag.CommandLine, *cfgPath, "ringbench"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := o.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if !*asJSON {
		fmt.Printf("Benchmarking SPSC byte ring (%d frames x %d bytes, cap=%d)\n", o.frames, o.size, o.capacity)
		fmt.Println("─────────────────────────────────────────────────")
	}

	res := run(o, os.Stdout)
	res.Params = map[string]string{
		"n":    strconv.Itoa(o.frames),
		"size": strconv.Itoa(o.size),
		"cap":  strconv.Itoa(o.capacity),
		"cpu":  strconv.Itoa(o.cpu),
	}

	if err := report.Write(os.Stdout, res, *asJSON); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if res.Err != "" {
		os.Exit(1)
	}
}
