//go:build rp2040

package main

import "pulserelay/core"

// currentVariant selects which firmware this build runs.
// The RP2040 build has the PIO soft UART, so it defaults to the relay variant.
// To flash a pulse-only build, return core.VariantPulse or core.VariantBlink instead.
func currentVariant() core.Variant {
	return core.VariantPulseRelay
}
