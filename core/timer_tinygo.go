//go:build tinygo

package core

import (
	"sync/atomic"
	"time"
)

var (
	clockEpoch  = time.Now()
	clockOffset uint32
)

// monotonicTicks counts TimerFreq ticks since the clock epoch
func monotonicTicks() uint32 {
	return uint32(time.Since(clockEpoch).Microseconds() * (TimerFreq / 1000000))
}

// getSystemTicks reads the free-running clock
func getSystemTicks() uint32 {
	return monotonicTicks() + atomic.LoadUint32(&clockOffset)
}

// setSystemTicks shifts the clock so that it reads ticks now
func setSystemTicks(ticks uint32) {
	atomic.StoreUint32(&clockOffset, ticks-monotonicTicks())
}
