//go:build arduino

package main

import (
	"machine"
	"time"

	"pulserelay/core"
	"pulserelay/targets/board"
)

// currentVariant selects which firmware this build runs.
// The ATmega328p has a single hardware UART and no soft UART here,
// so only the pulse-only variants are supported. Return core.VariantPulse
// for the 270s pulse instead of the blink sketch.
func currentVariant() core.Variant {
	return core.VariantBlink
}

var boot time.Time

// loopTime returns milliseconds since boot, wrapping at 2^32
func loopTime() uint32 {
	return core.TimerFromUS(uint64(time.Since(boot).Microseconds()))
}

func main() {
	boot = time.Now()
	variant := currentVariant()

	// The hardware UART is the console at the variant's baud rate
	machine.Serial.Configure(machine.UARTConfig{BaudRate: variant.Baud})
	console := board.NewUARTChannel(machine.Serial)
	core.SetDebugWriter(func(s string) {
		for i := 0; i < len(s); i++ {
			console.WriteByte(s[i])
		}
		console.WriteByte('\r')
		console.WriteByte('\n')
	})

	gpioDriver := board.NewGPIODriver()
	core.SetGPIODriver(gpioDriver)

	if variant.StartupDelay > 0 {
		time.Sleep(time.Duration(variant.StartupDelay) * time.Millisecond)
	}

	loop := core.NewLoop(variant, gpioDriver, nil, nil)
	if err := loop.Init(loopTime()); err != nil {
		core.DebugPrintln("[BOOT] " + variant.Name + " init failed: " + err.Error())
		return
	}

	for {
		loop.Step(loopTime())
	}
}
