package lights

import (
	"fmt"

	"github.com/sweeney/pico-lights/internal/gpio"
	"github.com/sweeney/pico-lights/internal/logic"
	"github.com/sweeney/pico-lights/internal/sched"
	"github.com/sweeney/pico-lights/internal/status"
)

// FlasherController runs a logic.Flasher from button edges and a chain of
// one-shot alarms.
type FlasherController struct {
	fsm     *logic.Flasher
	out     gpio.Outputs
	sched   sched.Scheduler
	tracker *status.Tracker
}

// NewFlasherController creates a controller. tracker may be nil.
func NewFlasherController(fsm *logic.Flasher, out gpio.Outputs, s sched.Scheduler, tracker *status.Tracker) *FlasherController {
	return &FlasherController{
		fsm:     fsm,
		out:     out,
		sched:   s,
		tracker: tracker,
	}
}

// Start drives every light low.
func (c *FlasherController) Start() error {
	if err := allOff(c.out, c.fsm.Lights()); err != nil {
		return fmt.Errorf("clear outputs: %w", err)
	}
	c.report()
	return nil
}

// Press handles a falling edge on the button. It reports whether the press
// started a sequence; presses during a sequence are ignored.
func (c *FlasherController) Press() bool {
	actions := c.fsm.Press()
	apply(c.out, c.sched, actions, c.alarm)
	c.report()
	return len(actions) > 0
}

// Active reports whether a sequence is in flight.
func (c *FlasherController) Active() bool {
	return c.fsm.Active()
}

func (c *FlasherController) alarm() {
	apply(c.out, c.sched, c.fsm.AlarmFired(), c.alarm)
	c.report()
}

func (c *FlasherController) report() {
	if c.tracker == nil {
		return
	}
	c.tracker.Update(c.fsm.Stage().String(), statusLights(c.fsm.Lights(), c.fsm.Lit()), c.fsm.Active(), c.fsm.Counts())
}
