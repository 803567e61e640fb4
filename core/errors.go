package core

import "errors"

var (
	ErrInvalidPulse   = errors.New("pulse interval and duration must be non-zero")
	ErrUnknownVariant = errors.New("unknown variant")
	ErrNoGPIODriver   = errors.New("GPIO driver not configured")
)
