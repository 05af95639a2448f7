package config_test

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/randomizedcoder/go-handoff/internal/config"
)

func newFlagSet() (*flag.FlagSet, *int, *time.Duration, *bool) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	n := fs.Int("producers", 1, "")
	d := fs.Duration("timeout", 0, "")
	j := fs.Bool("json", false, "")
	return fs, n, d, j
}

func TestApplyFlags(t *testing.T) {
	cfg := mustParse(t, "[queuebench]\nproducers = 8\ntimeout = 250ms\njson = true\nunknown = 1\n")
	fs, n, d, j := newFlagSet()

	// Explicit flag wins over the file
	if err := fs.Parse([]string{"-json=false"}); err != nil {
		t.Fatal(err)
	}
	if err := cfg.ApplyFlags(fs, "queuebench"); err != nil {
		t.Fatalf("ApplyFlags(): %v", err)
	}

	if *n != 8 {
		t.Errorf("expected producers = 8 from file, got %d", *n)
	}
	if *d != 250*time.Millisecond {
		t.Errorf("expected timeout = 250ms from file, got %v", *d)
	}
	if *j {
		t.Error("expected explicit -json=false to win")
	}
}

func TestApplyFlags_BadValue(t *testing.T) {
	cfg := mustParse(t, "[queuebench]\nproducers = many\n")
	fs, _, _, _ := newFlagSet()
	_ = fs.Parse(nil)

	if err := cfg.ApplyFlags(fs, "queuebench"); err == nil {
		t.Error("expected error for non-integer producers")
	}
}

func TestApplyFile_EmptyPath(t *testing.T) {
	fs, n, _, _ := newFlagSet()
	_ = fs.Parse(nil)

	if err := config.ApplyFile(fs, "", "queuebench"); err != nil {
		t.Errorf("expected nil for empty path, got %v", err)
	}
	if *n != 1 {
		t.Errorf("expected default producers = 1, got %d", *n)
	}
}
