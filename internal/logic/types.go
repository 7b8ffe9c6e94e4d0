// Package logic contains the pure state machines for the traffic light and
// the sequential flasher.
// This package has NO external dependencies (no GPIO, timers, OS, or time.Sleep).
// Handlers return the side effects to perform instead of performing them.
package logic

import "time"

// HeartbeatMessage is printed by the traffic-light foreground loop to show
// the main thread is alive.
const HeartbeatMessage = "Semáforo funcionando..."

// Light is a named digital output.
type Light struct {
	Name string
	Pin  int // fixed at startup, never reassigned
}

// ActionKind identifies what an Action asks the hardware layer to do.
type ActionKind int

const (
	// ActionSetLevel drives Pin to On.
	ActionSetLevel ActionKind = iota
	// ActionScheduleAlarm arms a one-shot alarm that fires after Delay.
	ActionScheduleAlarm
)

func (k ActionKind) String() string {
	switch k {
	case ActionSetLevel:
		return "SET_LEVEL"
	case ActionScheduleAlarm:
		return "SCHEDULE_ALARM"
	}
	return "UNKNOWN"
}

// Action is a side effect produced by a state machine transition.
type Action struct {
	Kind  ActionKind
	Pin   int
	On    bool
	Delay time.Duration
}

// SetLevel returns an action driving pin high (on) or low.
func SetLevel(pin int, on bool) Action {
	return Action{Kind: ActionSetLevel, Pin: pin, On: on}
}

// ScheduleAlarm returns an action arming a one-shot alarm.
func ScheduleAlarm(delay time.Duration) Action {
	return Action{Kind: ActionScheduleAlarm, Delay: delay}
}

// Counts tracks handler invocations since startup.
type Counts struct {
	Ticks     int // traffic-light timer ticks
	Presses   int // button edges seen
	Ignored   int // edges dropped by the lockout
	Sequences int // flasher sequences started
}
