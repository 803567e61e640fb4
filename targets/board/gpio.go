//go:build tinygo

// Package board holds the TinyGo drivers shared by every target: a GPIO driver
// over machine.Pin and a byte channel over any UART.
package board

import (
	"machine"

	"pulserelay/core"
)

// GPIODriver implements core.GPIODriver with machine pins.
// Pin numbers follow the board's own labels; machinePin translates them.
type GPIODriver struct {
	// Track configured pins to prevent reconfiguring
	configuredPins map[core.GPIOPin]machine.Pin
}

// NewGPIODriver creates a new GPIO driver
func NewGPIODriver() *GPIODriver {
	return &GPIODriver{
		configuredPins: make(map[core.GPIOPin]machine.Pin),
	}
}

// ConfigureOutput configures a pin as a digital output
func (d *GPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	// Check if already configured
	if _, exists := d.configuredPins[pin]; exists {
		// Already configured, this is OK
		return nil
	}

	mp, err := machinePin(pin)
	if err != nil {
		return err
	}
	mp.Configure(machine.PinConfig{Mode: machine.PinOutput})

	d.configuredPins[pin] = mp
	return nil
}

// SetPin sets the pin to high (true) or low (false)
func (d *GPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	mp, exists := d.configuredPins[pin]
	if !exists {
		// Pin isn't configured - configure it first
		if err := d.ConfigureOutput(pin); err != nil {
			return err
		}
		mp = d.configuredPins[pin]
	}

	mp.Set(value)
	return nil
}

// GetPin reads the current pin state
func (d *GPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	mp, exists := d.configuredPins[pin]
	if !exists {
		// Pin not configured
		return false, nil
	}

	return mp.Get(), nil
}
