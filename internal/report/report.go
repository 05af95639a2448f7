// Package report formats throughput results for the command-line tools,
// either as an aligned text block or as a single JSON object.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sugawarayuuta/sonnet"
)

// Result is one measured run.
type Result struct {
	Name     string
	Ops      int64
	Bytes    int64
	Duration time.Duration
	Params   map[string]string
	Counters map[string]int64
	Err      string
}

// NsPerOp returns the mean cost of one operation in nanoseconds.
func (r Result) NsPerOp() float64 {
	if r.Ops == 0 {
		return 0
	}
	return float64(r.Duration.Nanoseconds()) / float64(r.Ops)
}

// OpsPerSec returns throughput in operations per second.
func (r Result) OpsPerSec() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Ops) / r.Duration.Seconds()
}

// MBPerSec returns byte throughput in MB/s (10^6), 0 if Bytes is unset.
func (r Result) MBPerSec() float64 {
	if r.Duration <= 0 || r.Bytes == 0 {
		return 0
	}
	return float64(r.Bytes) / 1e6 / r.Duration.Seconds()
}

// jsonResult is the encoded form of a Result, derived rates included.
type jsonResult struct {
	Name       string            `json:"name"`
	Ops        int64             `json:"ops"`
	Bytes      int64             `json:"bytes,omitempty"`
	DurationNs int64             `json:"duration_ns"`
	NsPerOp    float64           `json:"ns_per_op"`
	OpsPerSec  float64           `json:"ops_per_sec"`
	MBPerSec   float64           `json:"mb_per_sec,omitempty"`
	Params     map[string]string `json:"params,omitempty"`
	Counters   map[string]int64  `json:"counters,omitempty"`
	Err        string            `json:"error,omitempty"`
}

// WriteJSON writes r as one JSON object followed by a newline.
func WriteJSON(w io.Writer, r Result) error {
	b, err := sonnet.Marshal(jsonResult{
		Name:       r.Name,
		Ops:        r.Ops,
		Bytes:      r.Bytes,
		DurationNs: r.Duration.Nanoseconds(),
		NsPerOp:    r.NsPerOp(),
		OpsPerSec:  r.OpsPerSec(),
		MBPerSec:   r.MBPerSec(),
		Params:     r.Params,
		Counters:   r.Counters,
		Err:        r.Err,
	})
	if err != nil {
		return fmt.Errorf("report: encode %s: %w", r.Name, err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("report: write: %w", err)
	}
	return nil
}

// WriteText writes r as a human-readable block.
func WriteText(w io.Writer, r Result) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", r.Name)
	sb.WriteString(strings.Repeat("─", 49))
	sb.WriteByte('\n')
	for _, k := range sortedKeys(r.Params) {
		fmt.Fprintf(&sb, "  %-12s %s\n", k+":", r.Params[k])
	}
	fmt.Fprintf(&sb, "\n  Ops:         %d\n", r.Ops)
	fmt.Fprintf(&sb, "  Duration:    %v\n", r.Duration)
	fmt.Fprintf(&sb, "  Per-op:      %.2f ns\n", r.NsPerOp())
	fmt.Fprintf(&sb, "  Throughput:  %.2f M ops/sec\n", r.OpsPerSec()/1e6)
	if r.Bytes > 0 {
		fmt.Fprintf(&sb, "  Bandwidth:   %.2f MB/sec\n", r.MBPerSec())
	}
	for _, k := range sortedKeys(r.Counters) {
		fmt.Fprintf(&sb, "  %-12s %d\n", k+":", r.Counters[k])
	}
	if r.Err != "" {
		fmt.Fprintf(&sb, "\n  ERROR: %s\n", r.Err)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Write picks WriteJSON or WriteText.
func Write(w io.Writer, r Result, asJSON bool) error {
	if asJSON {
		return WriteJSON(w, r)
	}
	return WriteText(w, r)
}
