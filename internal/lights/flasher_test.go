package lights

import (
	"errors"
	"testing"
	"time"

	"github.com/sweeney/pico-lights/internal/gpio"
	"github.com/sweeney/pico-lights/internal/logic"
	"github.com/sweeney/pico-lights/internal/sched"
	"github.com/sweeney/pico-lights/internal/status"
)

func newFlasher(t *testing.T) (*FlasherController, *gpio.FakeOutputs, *sched.FakeScheduler, *status.Tracker) {
	t.Helper()
	fsm := logic.NewFlasher(
		logic.Light{Name: "BLUE", Pin: 11},
		logic.Light{Name: "RED", Pin: 12},
		logic.Light{Name: "GREEN", Pin: 13},
		3*time.Second,
	)
	out := gpio.NewFakeOutputs()
	s := sched.NewFakeScheduler(start)
	tr := status.NewTracker("sequential-flasher", start, status.Config{ButtonPin: 5})
	c := NewFlasherController(fsm, out, s, tr)
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return c, out, s, tr
}

func equalPins(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFlasherScenario(t *testing.T) {
	c, out, s, tr := newFlasher(t)

	if high := out.High(11, 12, 13); len(high) != 0 {
		t.Fatalf("expected all off after Start, got %v", high)
	}

	if !c.Press() {
		t.Fatal("press from idle should start a sequence")
	}

	steps := []struct {
		at     time.Duration
		high   []int
		stage  string
		active bool
	}{
		{0, []int{11, 12, 13}, "ALL_ON", true},
		{3 * time.Second, []int{12, 13}, "FIRST_OFF", true},
		{6 * time.Second, []int{13}, "SECOND_OFF", true},
		{9 * time.Second, nil, "IDLE", false},
	}

	var elapsed time.Duration
	for _, step := range steps {
		s.Advance(step.at - elapsed)
		elapsed = step.at

		if high := out.High(11, 12, 13); !equalPins(high, step.high) {
			t.Errorf("t=%v: expected high %v, got %v", step.at, step.high, high)
		}
		snap := tr.Snapshot()
		if snap.Stage != step.stage {
			t.Errorf("t=%v: expected stage %s, got %s", step.at, step.stage, snap.Stage)
		}
		if snap.Active != step.active || c.Active() != step.active {
			t.Errorf("t=%v: expected active=%v", step.at, step.active)
		}
	}

	if s.Pending() != 0 {
		t.Errorf("expected no alarms pending after sequence, got %d", s.Pending())
	}

	// A new press is accepted once the guard clears.
	if !c.Press() {
		t.Error("press after sequence should start a new one")
	}
}

func TestFlasherAlarmsOnlyAtDelay(t *testing.T) {
	c, out, s, _ := newFlasher(t)
	c.Press()
	out.Reset()

	s.Advance(2999 * time.Millisecond)
	if len(out.Writes) != 0 {
		t.Errorf("expected no writes before the delay elapses, got %v", out.Writes)
	}
	s.Advance(time.Millisecond)
	want := []gpio.Write{{Pin: 11, On: false}}
	if len(out.Writes) != 1 || out.Writes[0] != want[0] {
		t.Errorf("expected %v, got %v", want, out.Writes)
	}
}

func TestFlasherPressIgnoredWhileActive(t *testing.T) {
	c, out, s, tr := newFlasher(t)
	c.Press()
	s.Advance(3 * time.Second)

	before := len(out.Writes)
	pendingBefore := s.Pending()

	if c.Press() {
		t.Error("press while active should be ignored")
	}
	if len(out.Writes) != before {
		t.Errorf("ignored press wrote outputs: %v", out.Writes[before:])
	}
	if s.Pending() != pendingBefore {
		t.Errorf("ignored press changed pending alarms: %d -> %d", pendingBefore, s.Pending())
	}

	// The original chain finishes on its own schedule.
	s.Advance(3 * time.Second)
	if high := out.High(11, 12, 13); !equalPins(high, []int{13}) {
		t.Errorf("expected only pin 13 high at t=6s, got %v", high)
	}
	s.Advance(3 * time.Second)
	if c.Active() {
		t.Error("expected guard cleared at t=9s")
	}

	counts := tr.Snapshot().Counts
	if counts.Ignored != 1 {
		t.Errorf("expected 1 ignored press, got %d", counts.Ignored)
	}
	if counts.Sequences != 1 {
		t.Errorf("expected 1 sequence, got %d", counts.Sequences)
	}
}

func TestFlasherWriteErrorStillArmsAlarm(t *testing.T) {
	c, out, s, _ := newFlasher(t)
	out.WriteError = errors.New("line busy")

	if !c.Press() {
		t.Fatal("press should start a sequence even if writes fail")
	}
	if s.Pending() != 1 {
		t.Fatalf("expected alarm armed, pending=%d", s.Pending())
	}

	out.WriteError = nil
	s.Advance(9 * time.Second)
	if c.Active() {
		t.Error("sequence should complete")
	}
}

func TestFlasherStartError(t *testing.T) {
	fsm := logic.NewFlasher(
		logic.Light{Name: "BLUE", Pin: 11},
		logic.Light{Name: "RED", Pin: 12},
		logic.Light{Name: "GREEN", Pin: 13},
		time.Second,
	)
	out := gpio.NewFakeOutputs()
	out.WriteError = errors.New("line busy")
	c := NewFlasherController(fsm, out, sched.NewFakeScheduler(start), nil)

	if err := c.Start(); err == nil {
		t.Fatal("expected error from Start")
	}
}
