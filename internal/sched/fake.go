package sched

import (
	"sort"
	"time"
)

// entry is an armed callback on the virtual clock.
type entry struct {
	when   time.Time
	seq    int
	fn     func()
	repeat func() bool
	period time.Duration
}

// FakeScheduler is a test double driven by a virtual clock.
// Callbacks run synchronously inside Advance, in deadline order; callbacks
// with the same deadline run in the order they were armed.
// Not safe for concurrent use.
type FakeScheduler struct {
	now     time.Time
	seq     int
	pending []*entry
}

// NewFakeScheduler creates a FakeScheduler whose clock starts at start.
func NewFakeScheduler(start time.Time) *FakeScheduler {
	return &FakeScheduler{now: start}
}

// Now returns the virtual time.
func (f *FakeScheduler) Now() time.Time {
	return f.now
}

// After arms a one-shot callback.
func (f *FakeScheduler) After(d time.Duration, fn func()) {
	f.insert(&entry{when: f.now.Add(d), fn: fn})
}

// Every arms a repeating callback.
func (f *FakeScheduler) Every(period time.Duration, fn func() bool) {
	f.insert(&entry{when: f.now.Add(period), repeat: fn, period: period})
}

// Pending returns the number of armed callbacks.
func (f *FakeScheduler) Pending() int {
	return len(f.pending)
}

// Advance moves the clock forward by d, running every callback that falls
// due on the way. The clock reads each callback's deadline while it runs.
func (f *FakeScheduler) Advance(d time.Duration) {
	target := f.now.Add(d)

	for len(f.pending) > 0 && !f.pending[0].when.After(target) {
		e := f.pending[0]
		f.pending = f.pending[1:]
		f.now = e.when

		if e.repeat == nil {
			e.fn()
			continue
		}
		if e.repeat() {
			e.when = e.when.Add(e.period)
			f.insert(e)
		}
	}

	f.now = target
}

// insert keeps pending sorted by deadline, then by arm order.
func (f *FakeScheduler) insert(e *entry) {
	f.seq++
	e.seq = f.seq
	i := sort.Search(len(f.pending), func(i int) bool {
		p := f.pending[i]
		if p.when.Equal(e.when) {
			return p.seq > e.seq
		}
		return p.when.After(e.when)
	})
	f.pending = append(f.pending, nil)
	copy(f.pending[i+1:], f.pending[i:])
	f.pending[i] = e
}
