// Package sched provides one-shot alarms and repeating timers with
// abstraction for testing.
// The real implementation arms runtime timers but never runs callbacks on
// the timer goroutine: due callbacks are handed to a single dispatch loop.
// The fake implementation runs callbacks against a virtual clock.
package sched

import "time"

// Scheduler arms timer callbacks. Armed callbacks cannot be cancelled.
type Scheduler interface {
	// After runs fn once, d after the call.
	After(d time.Duration, fn func())

	// Every runs fn every period, starting one period after the call,
	// for as long as fn returns true.
	Every(period time.Duration, fn func() bool)
}
