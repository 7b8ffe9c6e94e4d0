// Package lights binds the state machines in internal/logic to GPIO outputs
// and timers. Every handler must be called from a single goroutine.
package lights

import (
	"log"

	"github.com/sweeney/pico-lights/internal/gpio"
	"github.com/sweeney/pico-lights/internal/logic"
	"github.com/sweeney/pico-lights/internal/sched"
	"github.com/sweeney/pico-lights/internal/status"
)

// apply performs actions in order. Write errors are logged and do not stop
// later actions; alarms are armed with onAlarm as their callback.
func apply(out gpio.Outputs, s sched.Scheduler, actions []logic.Action, onAlarm func()) {
	for _, a := range actions {
		switch a.Kind {
		case logic.ActionSetLevel:
			if err := out.SetOutput(a.Pin, a.On); err != nil {
				log.Printf("gpio write error: %v", err)
			}
		case logic.ActionScheduleAlarm:
			s.After(a.Delay, onAlarm)
		}
	}
}

// allOff drives every light low.
func allOff(out gpio.Outputs, lights []logic.Light) error {
	for _, l := range lights {
		if err := out.SetOutput(l.Pin, false); err != nil {
			return err
		}
	}
	return nil
}

// statusLights marks which of all are in lit.
func statusLights(all, lit []logic.Light) []status.Light {
	out := make([]status.Light, 0, len(all))
	for _, l := range all {
		on := false
		for _, x := range lit {
			if x.Pin == l.Pin {
				on = true
				break
			}
		}
		out = append(out, status.Light{Name: l.Name, Pin: l.Pin, On: on})
	}
	return out
}
