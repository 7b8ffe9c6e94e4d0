package sched

import (
	"sync"
	"time"
)

// firedBuffer bounds how many due callbacks may wait for the dispatch loop.
const firedBuffer = 16

// RealScheduler arms runtime timers and posts due callbacks to Fired.
// The owner must drain Fired and run each callback, so all callbacks execute
// on the same goroutine and never overlap.
type RealScheduler struct {
	fired chan func()
	done  chan struct{}

	mu      sync.Mutex
	timers  map[*time.Timer]struct{}
	stopped bool
}

// NewRealScheduler creates a scheduler with no armed timers.
func NewRealScheduler() *RealScheduler {
	return &RealScheduler{
		fired:  make(chan func(), firedBuffer),
		done:   make(chan struct{}),
		timers: make(map[*time.Timer]struct{}),
	}
}

// Fired returns the channel of callbacks that are due to run.
func (s *RealScheduler) Fired() <-chan func() {
	return s.fired
}

// After arms a one-shot alarm.
func (s *RealScheduler) After(d time.Duration, fn func()) {
	s.arm(d, fn)
}

// Every arms a repeating timer. Deadlines are computed from the time Every
// is called, so a slow callback does not shift later ticks.
func (s *RealScheduler) Every(period time.Duration, fn func() bool) {
	start := time.Now()
	n := 1
	var tick func()
	tick = func() {
		if !fn() {
			return
		}
		n++
		next := start.Add(time.Duration(n) * period)
		s.arm(time.Until(next), tick)
	}
	s.arm(period, tick)
}

func (s *RealScheduler) arm(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, t)
		s.mu.Unlock()

		select {
		case s.fired <- fn:
		case <-s.done:
		}
	})
	s.timers[t] = struct{}{}
}

// Pending returns the number of armed timers that have not fired yet.
func (s *RealScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop disarms every timer. It is used only at process shutdown.
func (s *RealScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	close(s.done)
	for t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}
