//go:build rp2040

package main

import (
	"machine"
	"time"

	"pulserelay/core"
	"pulserelay/targets/board"
)

// Soft UART resources
const (
	softUARTTxSM    = 0
	softUARTRxSM    = 1
	softUARTBufSize = 256
)

var (
	loop *core.Loop

	// Hardware UART pins for the primary channel
	primaryTX = machine.UART0_TX_PIN
	primaryRX = machine.UART0_RX_PIN
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	variant := currentVariant()

	// Debug output goes to USB CDC so both UARTs stay free for the relay
	initDebug()

	gpioDriver := board.NewGPIODriver()
	core.SetGPIODriver(gpioDriver)

	var primary, secondary core.Channel
	if variant.Relay {
		err = machine.UART0.Configure(machine.UARTConfig{
			BaudRate: variant.Baud,
			TX:       primaryTX,
			RX:       primaryRX,
		})
		if err != nil {
			core.DebugPrintln("[BOOT] UART0 configure failed: " + err.Error())
			return
		}
		primary = board.NewUARTChannel(machine.UART0)

		softUART := board.NewPIOUART(softUARTTxSM, softUARTRxSM, softUARTBufSize)
		err = softUART.Configure(machine.Pin(variant.SoftTX), machine.Pin(variant.SoftRX), variant.Baud)
		if err != nil {
			core.DebugPrintln("[BOOT] soft UART configure failed: " + err.Error())
			return
		}
		secondary = softUART
	}

	if variant.StartupDelay > 0 {
		time.Sleep(time.Duration(variant.StartupDelay) * time.Millisecond)
	}

	loop = core.NewLoop(variant, gpioDriver, primary, secondary)
	if err := loop.Init(UpdateSystemTime()); err != nil {
		core.DebugPrintln("[BOOT] " + variant.Name + " init failed: " + err.Error())
		return
	}

	// Main loop - never blocks, never exits
	for {
		loop.Step(UpdateSystemTime())
	}
}

// initDebug routes core debug output to the USB serial console
func initDebug() {
	err := machine.Serial.Configure(machine.UARTConfig{})
	if err != nil {
		return
	}
	core.SetDebugWriter(func(s string) {
		machine.Serial.Write([]byte(s))
		machine.Serial.Write([]byte("\r\n"))
	})
	core.SetDebugEnabled(true)
}
