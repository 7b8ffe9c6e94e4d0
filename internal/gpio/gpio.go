// Package gpio provides digital output and button input with hardware abstraction.
// The real implementation uses the Linux GPIO character device, or the
// machine package when built with TinyGo.
// The fake implementation allows testing without hardware.
package gpio

import "time"

// Outputs drives digital output pins.
type Outputs interface {
	// SetOutput drives pin high (on) or low.
	SetOutput(pin int, on bool) error

	// Close releases GPIO resources.
	Close() error
}

// Button delivers falling edges from an active-low button (pressed = low).
type Button interface {
	// Edges returns the channel on which falling edges are delivered.
	Edges() <-chan Edge

	// Close releases GPIO resources.
	Close() error
}

// Edge is a falling transition observed on an input pin.
type Edge struct {
	Pin  int
	Time time.Time
}

// edgeBuffer is the capacity of a button's edge channel. Edges arriving while
// it is full are dropped.
const edgeBuffer = 8

// DefaultChip is the GPIO character device used on Raspberry Pi class boards.
const DefaultChip = "gpiochip0"
