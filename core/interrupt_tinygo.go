//go:build tinygo

package core

import "runtime/interrupt"

type interruptState = interrupt.State

// disableInterrupts masks interrupts and returns the previous mask
func disableInterrupts() interruptState {
	return interrupt.Disable()
}

// restoreInterrupts puts back a mask returned by disableInterrupts
func restoreInterrupts(state interruptState) {
	interrupt.Restore(state)
}
