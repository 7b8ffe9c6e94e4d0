package gpio

import "time"

// Write is a single recorded SetOutput call.
type Write struct {
	Pin int
	On  bool
}

// FakeOutputs is a test double that records output writes.
type FakeOutputs struct {
	// Writes contains every successful SetOutput call, in order.
	Writes []Write

	// Levels holds the last level written to each pin.
	Levels map[int]bool

	// Closed tracks if Close was called
	Closed bool

	// WriteError, if set, will be returned by SetOutput and nothing is recorded.
	WriteError error
}

// NewFakeOutputs creates a FakeOutputs with every pin low.
func NewFakeOutputs() *FakeOutputs {
	return &FakeOutputs{Levels: make(map[int]bool)}
}

// SetOutput records the write.
func (f *FakeOutputs) SetOutput(pin int, on bool) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Writes = append(f.Writes, Write{Pin: pin, On: on})
	f.Levels[pin] = on
	return nil
}

// High returns the pins currently high, in the order given.
func (f *FakeOutputs) High(pins ...int) []int {
	var out []int
	for _, p := range pins {
		if f.Levels[p] {
			out = append(out, p)
		}
	}
	return out
}

// Close marks the outputs as closed.
func (f *FakeOutputs) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded writes and levels.
func (f *FakeOutputs) Reset() {
	f.Writes = nil
	f.Levels = make(map[int]bool)
	f.Closed = false
	f.WriteError = nil
}

// FakeButton is a test double whose edges are injected by the test.
type FakeButton struct {
	pin   int
	edges chan Edge

	// Closed tracks if Close was called
	Closed bool
}

// NewFakeButton creates a FakeButton on pin.
func NewFakeButton(pin int) *FakeButton {
	return &FakeButton{pin: pin, edges: make(chan Edge, edgeBuffer)}
}

// Press injects a falling edge. It reports false if the edge was dropped
// because the buffer is full.
func (f *FakeButton) Press(at time.Time) bool {
	select {
	case f.edges <- Edge{Pin: f.pin, Time: at}:
		return true
	default:
		return false
	}
}

// Edges returns the channel on which injected edges are delivered.
func (f *FakeButton) Edges() <-chan Edge {
	return f.edges
}

// Close marks the button as closed.
func (f *FakeButton) Close() error {
	f.Closed = true
	return nil
}
