package board

import "errors"

var errInvalidPin = errors.New("pin number has no mapping on this board")

// arduinoUnoPin maps Arduino Uno pin numbers to TinyGo's ATmega328p numbering,
// where port B starts at 0, port C at 8 and port D at 16.
// D0-D13 are digital pins 0-13 and A0-A5 are 14-19, as on the board silkscreen.
func arduinoUnoPin(n uint32) (uint32, bool) {
	switch {
	case n <= 7:
		return 16 + n, true // D0-D7 = PD0-PD7
	case n <= 13:
		return n - 8, true // D8-D13 = PB0-PB5
	case n <= 19:
		return n - 6, true // A0-A5 = PC0-PC5
	}
	return 0, false
}
