package logic

import "time"

// DefaultPeriod is the traffic-light cycle period.
const DefaultPeriod = 3000 * time.Millisecond

// TrafficLight is a 3-state cyclic machine that lights exactly one of three
// outputs per tick.
type TrafficLight struct {
	lights [3]Light
	period time.Duration
	state  int
	lit    int // index into lights, -1 before the first tick
	counts Counts
}

// NewTrafficLight creates a traffic light with state 0.
func NewTrafficLight(red, yellow, green Light, period time.Duration) *TrafficLight {
	return &TrafficLight{
		lights: [3]Light{red, yellow, green},
		period: period,
		lit:    -1,
	}
}

// Tick handles one timer tick: all outputs low, the output selected by the
// current state high, then state advances by one (mod 3).
func (t *TrafficLight) Tick() []Action {
	actions := make([]Action, 0, len(t.lights)+1)
	for _, l := range t.lights {
		actions = append(actions, SetLevel(l.Pin, false))
	}

	switch t.state {
	case 0:
		t.lit = 0
	case 1:
		t.lit = 1
	default:
		t.lit = 2
	}
	actions = append(actions, SetLevel(t.lights[t.lit].Pin, true))

	t.state = (t.state + 1) % 3
	t.counts.Ticks++
	return actions
}

// State returns the value that selects the light on the next tick.
func (t *TrafficLight) State() int {
	return t.state
}

// Period returns the tick period.
func (t *TrafficLight) Period() time.Duration {
	return t.period
}

// Lights returns the three lights in cycle order.
func (t *TrafficLight) Lights() []Light {
	return append([]Light(nil), t.lights[:]...)
}

// Lit returns the lights currently driven high (none before the first tick).
func (t *TrafficLight) Lit() []Light {
	if t.lit < 0 {
		return nil
	}
	return []Light{t.lights[t.lit]}
}

// Stage returns the name of the lit light, or "OFF" before the first tick.
func (t *TrafficLight) Stage() string {
	if t.lit < 0 {
		return "OFF"
	}
	return t.lights[t.lit].Name
}

// Counts returns a copy of the tick counter.
func (t *TrafficLight) Counts() Counts {
	return t.counts
}
