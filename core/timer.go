package core

// TimerFreq is the rate of the firmware clock. Every WakeTime, interval and
// PWM period in the firmware is counted in these ticks.
const TimerFreq = 12000000

var (
	systemTicks uint32 // host builds only; tinygo reads the runtime clock
	bootTime    uint32
)

// GetTime returns the clock. It wraps roughly every six minutes, so compare
// clock values by difference, never with < directly.
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime moves the clock. Tests drive time with it.
func SetTime(ticks uint32) {
	setSystemTicks(ticks)
}

// GetUptime returns ticks since TimerInit, modulo one clock wrap
func GetUptime() uint32 {
	return GetTime() - bootTime
}

// TimerFromUS converts microseconds to ticks
func TimerFromUS(us uint32) uint32 {
	return uint32(uint64(us) * TimerFreq / 1000000)
}

// TimerToUS converts ticks to microseconds
func TimerToUS(ticks uint32) uint32 {
	return uint32(uint64(ticks) * 1000000 / TimerFreq)
}

// TimerInit marks boot time
func TimerInit() {
	bootTime = GetTime()
}

// ProcessTimers latches the clock and runs every timer that is due
func ProcessTimers() {
	currentTime = GetTime()
	TimerDispatch()
}
