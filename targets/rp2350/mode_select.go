//go:build rp2350

package main

import "pulserelay/core"

// currentVariant selects which firmware this build runs.
// The RP2350 has PIO like the RP2040, so it defaults to the relay variant.
func currentVariant() core.Variant {
	return core.VariantPulseRelay
}
