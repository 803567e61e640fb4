//go:build tinygo && !arduino

package board

import (
	"machine"

	"pulserelay/core"
)

// machinePin maps GPIO numbers straight to machine pins (GPIO8 = 8 on RP2040/RP2350)
func machinePin(pin core.GPIOPin) (machine.Pin, error) {
	return machine.Pin(pin), nil
}
