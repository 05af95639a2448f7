// Command queuebench measures multi-producer/multi-consumer throughput of
// the blocking queue.
//
// Producers stamp pooled blocks with a sequence number and push them;
// consumers pop, verify and release them. After the producers finish the
// queue is closed and the consumers drain it.
//
// Usage:
//
//	go run ./cmd/queuebench -producers 4 -consumers 4 -n 1000000 -cap 1024
//	go run ./cmd/queuebench -config bench.ini -json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/randomizedcoder/go-handoff/internal/cancel"
	"github.com/randomizedcoder/go-handoff/internal/config"
	"github.com/randomizedcoder/go-handoff/internal/report"
)

func main() {
	var o options
	flag.IntVar(&o.producers, "producers", 4, "number of producer goroutines")
	flag.IntVar(&o.consumers, "consumers", 4, "number of consumer goroutines")
	flag.IntVar(&o.perProducer, "n", 1_000_000, "items per producer")
	flag.IntVar(&o.capacity, "cap", 1024, "queue capacity (0 = unbounded)")
	flag.IntVar(&o.block, "block", 64, "payload bytes per item (>= 8)")
	flag.DurationVar(&o.timeout, "timeout", 0, "consumer PopFor timeout (0 = blocking Pop)")
	flag.DurationVar(&o.progress, "progress", time.Second, "progress interval (0 = quiet)")
	asJSON := flag.Bool("json", false, "print the result as JSON")
	cfgPath := flag.String("config", "", "INI file with a [queuebench] section")
	flag.Parse()

	if err := config.ApplyFile(flag.CommandLine, *cfgPath, "queuebench"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := o.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !*asJSON {
		fmt.Printf("Benchmarking blocking queue (%d producers x %d items, %d consumers, cap=%d)\n",
			o.producers, o.perProducer, o.consumers, o.capacity)
		fmt.Println("─────────────────────────────────────────────────")
	}

	res := run(cancel.NewContext(ctx), o, os.Stdout)
	res.Params = map[string]string{
		"producers": strconv.Itoa(o.producers),
		"consumers": strconv.Itoa(o.consumers),
		"n":         strconv.Itoa(o.perProducer),
		"cap":       strconv.Itoa(o.capacity),
		"block":     strconv.Itoa(o.block),
		"timeout":   o.timeout.String(),
	}

	if err := report.Write(os.Stdout, res, *asJSON); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if res.Err != "" {
		os.Exit(1)
	}
}
