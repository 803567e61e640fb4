//go:build rp2040 || rp2350

package board

import (
	"errors"
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"pulserelay/buffer"
)

// PIO cycles per UART bit in both programs
const uartCyclesPerBit = 8

// Programs are loaded at fixed offsets because their jumps are absolute
const (
	uartTxOrigin = 0
	uartRxOrigin = 8
)

// buildUARTTxProgram emits 8N1 frames, LSB first.
// The line idles HIGH while the state machine blocks on an empty FIFO.
func buildUARTTxProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),                   // 0: pull block
		asm.Set(rp2pio.SetDestX, 7).Encode(),             // 1: set x, 7
		asm.Set(rp2pio.SetDestPins, 0).Delay(7).Encode(), // 2: set pins, 0 [7] (start bit)
		// bitloop:
		asm.Out(rp2pio.OutDestPins, 1).Encode(),                        // 3: out pins, 1
		asm.Jmp(uartTxOrigin+3, rp2pio.JmpXNZeroDec).Delay(6).Encode(), // 4: jmp x--, bitloop [6]
		asm.Set(rp2pio.SetDestPins, 1).Delay(7).Encode(),               // 5: set pins, 1 [7] (stop bit)
		// .wrap
	}
}

// buildUARTRxProgram samples 8 data bits in the middle of each bit period.
// Received bytes land in the top byte of the RX FIFO word.
func buildUARTRxProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.WaitPin(false, 0).Encode(),                 // 0: wait 0 pin 0 (start bit)
		asm.Set(rp2pio.SetDestX, 7).Delay(10).Encode(), // 1: set x, 7 [10] (to middle of bit 0)
		// bitloop:
		asm.In(rp2pio.InSrcPins, 1).Encode(),                           // 2: in pins, 1
		asm.Jmp(uartRxOrigin+2, rp2pio.JmpXNZeroDec).Delay(6).Encode(), // 3: jmp x--, bitloop [6]
		asm.WaitPin(true, 0).Encode(),                                  // 4: wait 1 pin 0 (stop bit)
		asm.Push(false, false).Encode(),                                // 5: push noblock
		// .wrap
	}
}

// PIOUART is a software-emulated UART on two PIO state machines.
// The PIO RX FIFO is only four words deep, so received bytes are moved
// into a larger buffer every time the relay polls.
type PIOUART struct {
	pio     *rp2pio.PIO
	tx      rp2pio.StateMachine
	rx      rp2pio.StateMachine
	rxBuf   *buffer.FifoBuffer
	txPin   machine.Pin
	rxPin   machine.Pin
	overrun uint32 // Bytes lost because rxBuf was full
}

var errUARTClaim = errors.New("PIO state machine already claimed")

// NewPIOUART creates a soft UART on PIO0 using state machines txSM and rxSM
func NewPIOUART(txSM, rxSM uint8, bufSize int) *PIOUART {
	p := rp2pio.PIO0
	return &PIOUART{
		pio:   p,
		tx:    p.StateMachine(txSM),
		rx:    p.StateMachine(rxSM),
		rxBuf: buffer.NewFifoBuffer(bufSize),
	}
}

// clockDivider returns the integer and 1/256 fractional divider for a baud rate
func clockDivider(baud uint32) (uint16, uint8) {
	div := uint64(machine.CPUFrequency()) * 256 / (uint64(baud) * uartCyclesPerBit)
	return uint16(div >> 8), uint8(div & 0xff)
}

// Configure loads both programs and starts the state machines
func (u *PIOUART) Configure(txPin, rxPin machine.Pin, baud uint32) error {
	u.txPin = txPin
	u.rxPin = rxPin
	u.rxBuf.Reset()
	u.overrun = 0

	if !u.tx.TryClaim() || !u.rx.TryClaim() {
		return errUARTClaim
	}

	whole, frac := clockDivider(baud)

	// Transmitter
	txProgram := buildUARTTxProgram()
	txOffset, err := u.pio.AddProgram(txProgram, uartTxOrigin)
	if err != nil {
		return err
	}
	txPin.Configure(machine.PinConfig{Mode: u.pio.PinMode()})

	txCfg := rp2pio.DefaultStateMachineConfig()
	txCfg.SetSetPins(txPin, 1)
	txCfg.SetOutPins(txPin, 1)
	txCfg.SetOutShift(true, false, 32) // LSB first, explicit pull
	txCfg.SetWrap(txOffset+uint8(len(txProgram))-1, txOffset)
	txCfg.SetClkDivIntFrac(whole, frac)

	u.tx.Init(txOffset, txCfg)
	u.tx.SetPinsConsecutive(txPin, 1, true) // idle HIGH before driving the line
	u.tx.SetPindirsConsecutive(txPin, 1, true)
	u.tx.SetEnabled(true)

	// Receiver
	rxProgram := buildUARTRxProgram()
	rxOffset, err := u.pio.AddProgram(rxProgram, uartRxOrigin)
	if err != nil {
		return err
	}
	rxPin.Configure(machine.PinConfig{Mode: u.pio.PinMode()})

	rxCfg := rp2pio.DefaultStateMachineConfig()
	rxCfg.SetInPins(rxPin, 1)
	rxCfg.SetInShift(true, false, 32) // Bits shift in from the top, explicit push
	rxCfg.SetWrap(rxOffset+uint8(len(rxProgram))-1, rxOffset)
	rxCfg.SetClkDivIntFrac(whole, frac)

	u.rx.Init(rxOffset, rxCfg)
	u.rx.SetPindirsConsecutive(rxPin, 1, false)
	u.rx.SetEnabled(true)

	return nil
}

// pump moves bytes from the PIO RX FIFO into the receive buffer
func (u *PIOUART) pump() {
	for !u.rx.IsRxFIFOEmpty() {
		b := byte(u.rx.RxGet() >> 24)
		if err := u.rxBuf.WriteByte(b); err != nil {
			u.overrun++
		}
	}
}

// Buffered returns the number of received bytes ready to read
func (u *PIOUART) Buffered() int {
	u.pump()
	return u.rxBuf.Buffered()
}

// ReadByte returns the oldest received byte
func (u *PIOUART) ReadByte() (byte, error) {
	u.pump()
	return u.rxBuf.ReadByte()
}

// WriteByte queues one byte for transmission.
// It spins only while the four-entry TX FIFO is full.
func (u *PIOUART) WriteByte(c byte) error {
	for u.tx.IsTxFIFOFull() {
		// Busy wait - at most one frame time
	}
	u.tx.TxPut(uint32(c))
	return nil
}

// Overruns returns the number of received bytes dropped for lack of buffer space
func (u *PIOUART) Overruns() uint32 {
	return u.overrun
}
