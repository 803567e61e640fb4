//go:build rp2350

package main

import (
	"machine"
	"time"

	"pulserelay/core"
	"pulserelay/targets/board"
)

const (
	softUARTTxSM    = 0
	softUARTRxSM    = 1
	softUARTBufSize = 256
)

var boot time.Time

// loopTime returns milliseconds since boot from the runtime's microsecond timer
func loopTime() uint32 {
	return core.TimerFromUS(uint64(time.Since(boot).Microseconds()))
}

func main() {
	boot = time.Now()
	variant := currentVariant()

	initDebug()

	gpioDriver := board.NewGPIODriver()
	core.SetGPIODriver(gpioDriver)

	err := machine.UART0.Configure(machine.UARTConfig{
		BaudRate: variant.Baud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	if err != nil {
		core.DebugPrintln("[BOOT] UART0 configure failed: " + err.Error())
		return
	}

	softUART := board.NewPIOUART(softUARTTxSM, softUARTRxSM, softUARTBufSize)
	err = softUART.Configure(machine.Pin(variant.SoftTX), machine.Pin(variant.SoftRX), variant.Baud)
	if err != nil {
		core.DebugPrintln("[BOOT] soft UART configure failed: " + err.Error())
		return
	}

	loop := core.NewLoop(variant, gpioDriver, board.NewUARTChannel(machine.UART0), softUART)
	if err := loop.Init(loopTime()); err != nil {
		core.DebugPrintln("[BOOT] " + variant.Name + " init failed: " + err.Error())
		return
	}

	for {
		loop.Step(loopTime())
	}
}

// initDebug routes core debug output to USB CDC
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
