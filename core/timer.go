package core

// Loop time is kept in milliseconds, matching the tick units of the pulse constants.
var (
	systemTicks uint32
	bootTime    uint32 // Time at boot for uptime calculation
)

// GetTime returns the current loop time in ticks
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime sets the current loop time (for testing/hardware integration)
func SetTime(ticks uint32) {
	setSystemTicks(ticks)
}

// GetUptime returns the ticks elapsed since TimerInit, modulo 2^32
func GetUptime() uint32 {
	return Elapsed(GetTime(), bootTime)
}

// TimerInit records the boot time
func TimerInit() {
	bootTime = GetTime()
}

// TimerFromUS converts a microsecond hardware counter to loop ticks.
// The result is truncated to 32 bits so it wraps like any free-running counter.
func TimerFromUS(us uint64) uint32 {
	return uint32(us / 1000)
}

// Elapsed returns now - since on the wrapping 32-bit clock.
// Correct as long as the real interval is shorter than 2^32 ticks.
func Elapsed(now, since uint32) uint32 {
	return now - since
}

// Reached reports whether at least d ticks have passed since the given time
func Reached(now, since, d uint32) bool {
	return Elapsed(now, since) >= d
}
