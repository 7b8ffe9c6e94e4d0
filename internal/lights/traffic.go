package lights

import (
	"fmt"

	"github.com/sweeney/pico-lights/internal/gpio"
	"github.com/sweeney/pico-lights/internal/logic"
	"github.com/sweeney/pico-lights/internal/sched"
	"github.com/sweeney/pico-lights/internal/status"
)

// TrafficController runs a logic.TrafficLight from a repeating timer.
type TrafficController struct {
	fsm     *logic.TrafficLight
	out     gpio.Outputs
	sched   sched.Scheduler
	tracker *status.Tracker
}

// NewTrafficController creates a controller. tracker may be nil.
func NewTrafficController(fsm *logic.TrafficLight, out gpio.Outputs, s sched.Scheduler, tracker *status.Tracker) *TrafficController {
	return &TrafficController{
		fsm:     fsm,
		out:     out,
		sched:   s,
		tracker: tracker,
	}
}

// Start drives every light low, lights the first one immediately and arms
// the repeating timer. The timer is never disarmed.
func (c *TrafficController) Start() error {
	if err := allOff(c.out, c.fsm.Lights()); err != nil {
		return fmt.Errorf("clear outputs: %w", err)
	}
	c.tick()
	c.sched.Every(c.fsm.Period(), c.tick)
	return nil
}

// tick is the repeating timer callback. It always asks to be called again.
func (c *TrafficController) tick() bool {
	apply(c.out, c.sched, c.fsm.Tick(), nil)
	c.report()
	return true
}

func (c *TrafficController) report() {
	if c.tracker == nil {
		return
	}
	c.tracker.Update(c.fsm.Stage(), statusLights(c.fsm.Lights(), c.fsm.Lit()), false, c.fsm.Counts())
}
