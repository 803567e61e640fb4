//go:build !tinygo

package core

// getSystemTicks returns the current loop ticks (regular Go implementation)
func getSystemTicks() uint32 {
	return systemTicks
}

// setSystemTicks sets the loop ticks (regular Go implementation)
func setSystemTicks(ticks uint32) {
	systemTicks = ticks
}
