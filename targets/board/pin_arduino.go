//go:build arduino

package board

import (
	"machine"

	"pulserelay/core"
)

// machinePin translates Arduino pin numbering (D8 = 8) to a machine pin
func machinePin(pin core.GPIOPin) (machine.Pin, error) {
	n, ok := arduinoUnoPin(uint32(pin))
	if !ok {
		return machine.NoPin, errInvalidPin
	}
	return machine.Pin(n), nil
}
