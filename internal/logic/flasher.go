package logic

import "time"

// DefaultDelay is the delay between flasher stages.
const DefaultDelay = 3000 * time.Millisecond

// Stage is a step of the flasher sequence.
type Stage int

const (
	StageIdle Stage = iota
	StageAllOn
	StageFirstOff
	StageSecondOff
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "IDLE"
	case StageAllOn:
		return "ALL_ON"
	case StageFirstOff:
		return "FIRST_OFF"
	case StageSecondOff:
		return "SECOND_OFF"
	}
	return "UNKNOWN"
}

// Flasher turns three outputs on at a button press, then off one at a time,
// one delay apart. Presses are ignored while a sequence is in flight.
type Flasher struct {
	lights [3]Light
	delay  time.Duration
	stage  Stage
	counts Counts
}

// NewFlasher creates an idle flasher. Lights are turned off in argument order.
func NewFlasher(first, second, third Light, delay time.Duration) *Flasher {
	return &Flasher{
		lights: [3]Light{first, second, third},
		delay:  delay,
	}
}

// Press handles a falling edge on the button.
func (f *Flasher) Press() []Action {
	f.counts.Presses++
	if f.stage != StageIdle {
		f.counts.Ignored++
		return nil
	}

	f.stage = StageAllOn
	f.counts.Sequences++
	return []Action{
		SetLevel(f.lights[0].Pin, true),
		SetLevel(f.lights[1].Pin, true),
		SetLevel(f.lights[2].Pin, true),
		ScheduleAlarm(f.delay),
	}
}

// AlarmFired handles a one-shot alarm armed by a previous transition.
func (f *Flasher) AlarmFired() []Action {
	switch f.stage {
	case StageAllOn:
		f.stage = StageFirstOff
		return []Action{SetLevel(f.lights[0].Pin, false), ScheduleAlarm(f.delay)}
	case StageFirstOff:
		f.stage = StageSecondOff
		return []Action{SetLevel(f.lights[1].Pin, false), ScheduleAlarm(f.delay)}
	case StageSecondOff:
		f.stage = StageIdle
		return []Action{SetLevel(f.lights[2].Pin, false)}
	}
	// No alarm is armed while idle.
	return nil
}

// Active reports whether a sequence is in flight (the lockout guard).
func (f *Flasher) Active() bool {
	return f.stage != StageIdle
}

// Stage returns the current stage.
func (f *Flasher) Stage() Stage {
	return f.stage
}

// Delay returns the inter-stage delay.
func (f *Flasher) Delay() time.Duration {
	return f.delay
}

// Lights returns the three lights in turn-off order.
func (f *Flasher) Lights() []Light {
	return append([]Light(nil), f.lights[:]...)
}

// Lit returns the lights currently driven high.
func (f *Flasher) Lit() []Light {
	switch f.stage {
	case StageAllOn:
		return append([]Light(nil), f.lights[:]...)
	case StageFirstOff:
		return append([]Light(nil), f.lights[1:]...)
	case StageSecondOff:
		return []Light{f.lights[2]}
	}
	return nil
}

// Counts returns a copy of the press counters.
func (f *Flasher) Counts() Counts {
	return f.counts
}
