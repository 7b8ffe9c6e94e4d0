// Package status provides a thread-safe status tracker for the light programs.
// It is written by the controllers and read when logging status lines.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/pico-lights/internal/logic"
)

// Config contains program configuration for display.
type Config struct {
	Chip        string
	IntervalMs  int64 // traffic-light period or flasher delay
	HeartbeatMs int64
	ButtonPin   int   // -1 when the program has no button
}

// Light is a configured output and its current level.
type Light struct {
	Name string
	Pin  int
	On   bool
}

// Snapshot is a point-in-time view of program state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Program   string
	Stage     string
	Lights    []Light
	Active    bool
	Counts    logic.Counts
	StartTime time.Time
	Now       time.Time
	Config    Config
}

// Uptime returns the duration since the program started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable program state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker for the named program.
func NewTracker(program string, startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Program:   program,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the stage, light levels, lockout state and counts.
// Called by the controllers after every handled event.
func (t *Tracker) Update(stage string, lights []Light, active bool, counts logic.Counts) {
	cp := append([]Light(nil), lights...)
	t.mu.Lock()
	t.snap.Stage = stage
	t.snap.Lights = cp
	t.snap.Active = active
	t.snap.Counts = counts
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the program state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	s.Lights = append([]Light(nil), t.snap.Lights...)
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
