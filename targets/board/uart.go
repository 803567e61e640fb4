//go:build tinygo

package board

import (
	"errors"

	"tinygo.org/x/drivers"
)

var errNoData = errors.New("uart: no data")

// UARTChannel adapts a drivers.UART (such as machine.UART0) to core.Channel
type UARTChannel struct {
	uart drivers.UART
	rx   [1]byte
	tx   [1]byte
}

// NewUARTChannel wraps a configured UART
func NewUARTChannel(uart drivers.UART) *UARTChannel {
	return &UARTChannel{uart: uart}
}

// Buffered returns the number of bytes in the UART receive buffer
func (u *UARTChannel) Buffered() int {
	return u.uart.Buffered()
}

// ReadByte reads one buffered byte
func (u *UARTChannel) ReadByte() (byte, error) {
	n, err := u.uart.Read(u.rx[:])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errNoData
	}
	return u.rx[0], nil
}

// WriteByte transmits one byte
func (u *UARTChannel) WriteByte(c byte) error {
	u.tx[0] = c
	_, err := u.uart.Write(u.tx[:])
	return err
}
