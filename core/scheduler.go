package core

// Timer is a scheduled event. Handlers run from ProcessTimers, which the
// firmware calls from its timer interrupt or main loop, so anything a handler
// shares with the main loop has to be touched under a CriticalSection.
type Timer struct {
	WakeTime uint32
	Handler  func(*Timer) uint8
	Next     *Timer
}

// Handler results
const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

var (
	timerLock   Section
	timerList   *Timer
	currentTime uint32
)

// ScheduleTimer adds a timer to the schedule. Scheduling a timer that is
// already queued moves it to its new WakeTime.
func ScheduleTimer(t *Timer) {
	Synchronized(&timerLock, func() {
		removeTimer(t)
		insertTimer(t)
	})
}

// ScheduleTimerAt sets t's WakeTime and schedules it in one step. Timers that
// other contexts may schedule or cancel while their handler runs use this
// instead of writing WakeTime themselves.
func ScheduleTimerAt(t *Timer, wake uint32) {
	Synchronized(&timerLock, func() {
		removeTimer(t)
		t.WakeTime = wake
		insertTimer(t)
	})
}

// CancelTimer removes t from the schedule. It reports whether t was queued.
func CancelTimer(t *Timer) bool {
	return SynchronizedValue(&timerLock, func() bool {
		return removeTimer(t)
	})
}

// timerIsBefore compares clock values across a 32-bit wrap
func timerIsBefore(a, b uint32) bool {
	return int32(a-b) < 0
}

// insertTimer inserts a timer in sorted order by WakeTime.
// Must be called with timerLock held.
func insertTimer(t *Timer) {
	if timerList == nil || timerIsBefore(t.WakeTime, timerList.WakeTime) {
		t.Next = timerList
		timerList = t
		return
	}

	current := timerList
	for current.Next != nil && !timerIsBefore(t.WakeTime, current.Next.WakeTime) {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

// removeTimer unlinks t. Must be called with timerLock held.
func removeTimer(t *Timer) bool {
	link := &timerList
	for *link != nil {
		if *link == t {
			*link = t.Next
			t.Next = nil
			return true
		}
		link = &(*link).Next
	}
	return false
}

// popDueTimer unlinks the first timer due at or before now, or returns nil
func popDueTimer(now uint32) *Timer {
	return SynchronizedValue(&timerLock, func() *Timer {
		t := timerList
		if t == nil || timerIsBefore(now, t.WakeTime) {
			return nil
		}
		timerList = t.Next
		t.Next = nil
		return t
	})
}

// TimerDispatch runs every timer that is due. Handlers run without the
// schedule lock held, so they may schedule or cancel other timers.
func TimerDispatch() {
	now := currentTime
	for {
		t := popDueTimer(now)
		if t == nil {
			return
		}
		if t.Handler(t) == SF_RESCHEDULE {
			ScheduleTimer(t)
		}
	}
}

// PendingTimers returns the number of scheduled timers
func PendingTimers() int {
	return SynchronizedValue(&timerLock, func() int {
		n := 0
		for t := timerList; t != nil; t = t.Next {
			n++
		}
		return n
	})
}

// ResetTimers drops every scheduled timer (firmware restart, tests)
func ResetTimers() {
	Synchronized(&timerLock, func() {
		for t := timerList; t != nil; {
			next := t.Next
			t.Next = nil
			t = next
		}
		timerList = nil
	})
}
