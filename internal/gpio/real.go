//go:build linux && !tinygo

package gpio

import (
	"fmt"
	"log"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// RealOutputs drives output lines on actual hardware using the Linux GPIO character device.
type RealOutputs struct {
	chip  *gpiocdev.Chip
	lines map[int]*gpiocdev.Line
	order []int
}

// NewRealOutputs requests each pin on the named chip as an output, driven low.
func NewRealOutputs(chipName string, pins []int) (*RealOutputs, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	o := &RealOutputs{
		chip:  chip,
		lines: make(map[int]*gpiocdev.Line, len(pins)),
	}
	for _, pin := range pins {
		line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
		if err != nil {
			o.Close()
			return nil, fmt.Errorf("request output pin %d: %w", pin, err)
		}
		o.lines[pin] = line
		o.order = append(o.order, pin)
	}

	return o, nil
}

// SetOutput drives pin high (on) or low.
func (o *RealOutputs) SetOutput(pin int, on bool) error {
	line, ok := o.lines[pin]
	if !ok {
		return fmt.Errorf("pin %d not requested as output", pin)
	}
	v := 0
	if on {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		return fmt.Errorf("set pin %d: %w", pin, err)
	}
	return nil
}

// Close drives all outputs low and releases them.
// Lines are reconfigured to input with pull-down (matching Pi boot defaults)
// before closing so LEDs do not stay lit after the process exits.
func (o *RealOutputs) Close() error {
	var errs []error

	for _, pin := range o.order {
		line := o.lines[pin]
		if err := line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear pin %d: %w", pin, err))
		}
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure pin %d: %w", pin, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin %d: %w", pin, err))
		}
	}
	o.lines = nil
	o.order = nil

	if o.chip != nil {
		if err := o.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		o.chip = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealButton watches a button pin for falling edges using kernel edge detection.
type RealButton struct {
	pin   int
	line  *gpiocdev.Line
	edges chan Edge
}

// NewRealButton requests pin as an input with pull-up, reporting falling edges.
// A positive debounce enables the kernel debounce filter on the line.
func NewRealButton(chipName string, pin int, debounce time.Duration) (*RealButton, error) {
	b := &RealButton{
		pin:   pin,
		edges: make(chan Edge, edgeBuffer),
	}

	opts := []gpiocdev.LineReqOption{
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(b.handle),
	}
	if debounce > 0 {
		opts = append(opts, gpiocdev.WithDebounce(debounce))
	}

	line, err := gpiocdev.RequestLine(chipName, pin, opts...)
	if err != nil {
		return nil, fmt.Errorf("request button pin %d: %w", pin, err)
	}
	b.line = line

	return b, nil
}

// handle runs on the gpiocdev watcher goroutine and must not block.
func (b *RealButton) handle(evt gpiocdev.LineEvent) {
	if evt.Type != gpiocdev.LineEventFallingEdge {
		return
	}
	select {
	case b.edges <- Edge{Pin: evt.Offset, Time: time.Now()}:
	default:
		log.Printf("gpio: edge buffer full, dropping edge on pin %d", evt.Offset)
	}
}

// Edges returns the channel on which falling edges are delivered.
func (b *RealButton) Edges() <-chan Edge {
	return b.edges
}

// Close releases the button line.
func (b *RealButton) Close() error {
	if b.line == nil {
		return nil
	}
	err := b.line.Close()
	b.line = nil
	if err != nil {
		return fmt.Errorf("close button pin %d: %w", b.pin, err)
	}
	return nil
}
