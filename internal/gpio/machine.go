//go:build tinygo

package gpio

import (
	"fmt"
	"machine"
	"time"
)

// RealOutputs drives output pins through the TinyGo machine package.
type RealOutputs struct {
	pins map[int]machine.Pin
}

// NewRealOutputs configures each pin as an output, driven low.
// chipName is ignored: microcontroller pins are addressed directly.
func NewRealOutputs(chipName string, pins []int) (*RealOutputs, error) {
	o := &RealOutputs{pins: make(map[int]machine.Pin, len(pins))}
	for _, n := range pins {
		p := machine.Pin(n)
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
		o.pins[n] = p
	}
	return o, nil
}

// SetOutput drives pin high (on) or low.
func (o *RealOutputs) SetOutput(pin int, on bool) error {
	p, ok := o.pins[pin]
	if !ok {
		return fmt.Errorf("pin %d not configured as output", pin)
	}
	p.Set(on)
	return nil
}

// Close drives all outputs low.
func (o *RealOutputs) Close() error {
	for _, p := range o.pins {
		p.Low()
	}
	return nil
}

// RealButton reports falling edges from a pin interrupt.
type RealButton struct {
	pin   machine.Pin
	edges chan Edge
}

// NewRealButton configures pin as an input with pull-up and enables the
// falling-edge interrupt. Debounce is not supported in hardware here and is ignored.
func NewRealButton(chipName string, pin int, debounce time.Duration) (*RealButton, error) {
	b := &RealButton{
		pin:   machine.Pin(pin),
		edges: make(chan Edge, edgeBuffer),
	}
	b.pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	err := b.pin.SetInterrupt(machine.PinFalling, func(p machine.Pin) {
		// Interrupt context: never block.
		select {
		case b.edges <- Edge{Pin: int(p), Time: time.Now()}:
		default:
		}
	})
	if err != nil {
		return nil, fmt.Errorf("enable interrupt on pin %d: %w", pin, err)
	}
	return b, nil
}

// Edges returns the channel on which falling edges are delivered.
func (b *RealButton) Edges() <-chan Edge {
	return b.edges
}

// Close disables the pin interrupt.
func (b *RealButton) Close() error {
	return b.pin.SetInterrupt(0, nil)
}
