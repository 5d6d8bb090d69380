package core

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// CriticalSection is a handle on one mutual-exclusion resource.
//
// Acquire blocks the calling context until the section is free. Release
// frees it again and never blocks. Sections are not re-entrant: acquiring a
// section that the same context already holds never returns.
type CriticalSection interface {
	Acquire()
	Release()
}

// Section is the firmware critical section. While a Section is held,
// interrupts are masked, so timer handlers and ISRs cannot preempt the
// holder. Sections are meant to be long-lived values (package variables or
// fields of devices that live for the whole program) and must not be copied
// after first use.
//
// Sections held at the same time must be released in reverse order of
// acquisition, otherwise the saved interrupt masks are restored out of
// order. Enter and Synchronized guarantee that ordering.
type Section struct {
	locked uint32
	state  interruptState // mask saved by the current holder
}

// Acquire takes the section, spinning until it is free. Interrupts are only
// masked once the section is ours, so an ISR can still run while we wait.
func (s *Section) Acquire() {
	for {
		state := disableInterrupts()
		if atomic.CompareAndSwapUint32(&s.locked, 0, 1) {
			s.state = state
			return
		}
		restoreInterrupts(state)
		runtime.Gosched()
	}
}

// Release frees the section and restores the interrupt mask that was active
// when it was acquired. Releasing a free section is a programming error.
func (s *Section) Release() {
	state := s.state
	if !atomic.CompareAndSwapUint32(&s.locked, 1, 0) {
		panic("core: critical section released while free")
	}
	restoreInterrupts(state)
}

// Locked reports whether some context currently holds the section.
func (s *Section) Locked() bool {
	return atomic.LoadUint32(&s.locked) == 1
}

// lockerSection adapts a sync.Locker
type lockerSection struct {
	l sync.Locker
}

// LockerSection wraps a sync.Locker so it can be used wherever a
// CriticalSection is expected. Host-side code uses it with a sync.Mutex.
func LockerSection(l sync.Locker) CriticalSection {
	return lockerSection{l: l}
}

func (s lockerSection) Acquire() { s.l.Lock() }
func (s lockerSection) Release() { s.l.Unlock() }
