// Package combined holds benchmarks that put the handoff primitives side by
// side with a buffered channel and with go-lock-free-ring's sharded MPSC
// ring, under the same producer/consumer shapes.
//
// These capture the cost of the whole handoff (cursor publication, wakeups,
// spin-retry) rather than a single call in isolation.
package combined
