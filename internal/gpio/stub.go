//go:build !linux && !tinygo

package gpio

import (
	"errors"
	"time"
)

// RealOutputs is not available on non-Linux platforms.
type RealOutputs struct{}

// NewRealOutputs returns an error on non-Linux platforms.
func NewRealOutputs(chipName string, pins []int) (*RealOutputs, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux or TinyGo)")
}

// SetOutput is not implemented on non-Linux platforms.
func (o *RealOutputs) SetOutput(pin int, on bool) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (o *RealOutputs) Close() error {
	return nil
}

// RealButton is not available on non-Linux platforms.
type RealButton struct{}

// NewRealButton returns an error on non-Linux platforms.
func NewRealButton(chipName string, pin int, debounce time.Duration) (*RealButton, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux or TinyGo)")
}

// Edges returns a nil channel; no edges are ever delivered.
func (b *RealButton) Edges() <-chan Edge {
	return nil
}

// Close is not implemented on non-Linux platforms.
func (b *RealButton) Close() error {
	return nil
}
