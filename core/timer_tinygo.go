//go:build tinygo

package core

import "sync/atomic"

var systemTicksValue uint32

// getSystemTicks returns the current loop ticks
func getSystemTicks() uint32 {
	return atomic.LoadUint32(&systemTicksValue)
}

// setSystemTicks sets the loop ticks
func setSystemTicks(ticks uint32) {
	atomic.StoreUint32(&systemTicksValue, ticks)
}
