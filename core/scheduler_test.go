package core

import "testing"

func TestScheduleTimerOrdering(t *testing.T) {
	ResetTimers()
	defer ResetTimers()

	var fired []uint32
	handler := func(tm *Timer) uint8 {
		fired = append(fired, tm.WakeTime)
		return SF_DONE
	}

	t3 := &Timer{WakeTime: 300, Handler: handler}
	t1 := &Timer{WakeTime: 100, Handler: handler}
	t2 := &Timer{WakeTime: 200, Handler: handler}
	ScheduleTimer(t3)
	ScheduleTimer(t1)
	ScheduleTimer(t2)

	if n := PendingTimers(); n != 3 {
		t.Fatalf("Expected 3 pending timers, got %d", n)
	}

	SetTime(250)
	ProcessTimers()

	if len(fired) != 2 || fired[0] != 100 || fired[1] != 200 {
		t.Errorf("Expected timers 100 and 200 to fire in order, got %v", fired)
	}
	if n := PendingTimers(); n != 1 {
		t.Errorf("Expected 1 pending timer, got %d", n)
	}
}

func TestTimerReschedule(t *testing.T) {
	ResetTimers()
	defer ResetTimers()

	count := 0
	tm := &Timer{WakeTime: 10}
	tm.Handler = func(tm *Timer) uint8 {
		count++
		tm.WakeTime += 10
		if count == 3 {
			return SF_DONE
		}
		return SF_RESCHEDULE
	}
	ScheduleTimer(tm)

	for now := uint32(10); now <= 50; now += 10 {
		SetTime(now)
		ProcessTimers()
	}

	if count != 3 {
		t.Errorf("Expected handler to run 3 times, ran %d", count)
	}
	if PendingTimers() != 0 {
		t.Error("Expected no pending timers after SF_DONE")
	}
}

func TestHandlerMaySchedule(t *testing.T) {
	ResetTimers()
	defer ResetTimers()

	followUp := &Timer{WakeTime: 20, Handler: func(*Timer) uint8 { return SF_DONE }}
	first := &Timer{WakeTime: 10, Handler: func(*Timer) uint8 {
		ScheduleTimer(followUp)
		return SF_DONE
	}}
	ScheduleTimer(first)

	SetTime(10)
	ProcessTimers()

	if PendingTimers() != 1 {
		t.Errorf("Expected follow-up timer to be pending, got %d timers", PendingTimers())
	}
	if timerLock.Locked() {
		t.Error("Schedule lock left held after dispatch")
	}
}

func TestCancelTimer(t *testing.T) {
	ResetTimers()
	defer ResetTimers()

	a := &Timer{WakeTime: 10, Handler: func(*Timer) uint8 { return SF_DONE }}
	b := &Timer{WakeTime: 20, Handler: func(*Timer) uint8 { return SF_DONE }}
	ScheduleTimer(a)
	ScheduleTimer(b)

	if !CancelTimer(b) {
		t.Error("Expected CancelTimer to find b")
	}
	if CancelTimer(b) {
		t.Error("Expected second CancelTimer of b to report false")
	}
	if PendingTimers() != 1 {
		t.Errorf("Expected 1 pending timer, got %d", PendingTimers())
	}
}

func TestTimerConversions(t *testing.T) {
	if got := TimerFromUS(1000); got != 12000 {
		t.Errorf("Expected 12000 ticks for 1ms, got %d", got)
	}
	if got := TimerToUS(12000000); got != 1000000 {
		t.Errorf("Expected 1000000us for 1s of ticks, got %d", got)
	}
}

func TestUptimeAcrossWrap(t *testing.T) {
	SetTime(0xFFFFFFF0)
	TimerInit()
	SetTime(0x10)

	if got := GetUptime(); got != 0x20 {
		t.Errorf("Expected uptime 0x20, got 0x%x", got)
	}
}

func TestTimersAcrossClockWrap(t *testing.T) {
	ResetTimers()
	defer ResetTimers()

	var fired []uint32
	handler := func(tm *Timer) uint8 {
		fired = append(fired, tm.WakeTime)
		return SF_DONE
	}

	// 0x10 comes after 0xFFFFFF00 once the clock has wrapped
	ScheduleTimer(&Timer{WakeTime: 0x10, Handler: handler})
	ScheduleTimer(&Timer{WakeTime: 0xFFFFFF00, Handler: handler})

	SetTime(0xFFFFFF80)
	ProcessTimers()
	if len(fired) != 1 || fired[0] != 0xFFFFFF00 {
		t.Fatalf("Expected only the pre-wrap timer to fire, got %v", fired)
	}

	SetTime(0x20)
	ProcessTimers()
	if len(fired) != 2 || fired[1] != 0x10 {
		t.Errorf("Expected the post-wrap timer to fire second, got %v", fired)
	}
}

func TestScheduleQueuedTimerMovesIt(t *testing.T) {
	ResetTimers()
	defer ResetTimers()

	count := 0
	tm := &Timer{WakeTime: 100, Handler: func(*Timer) uint8 {
		count++
		return SF_DONE
	}}
	ScheduleTimer(tm)
	tm.WakeTime = 50
	ScheduleTimer(tm)

	if n := PendingTimers(); n != 1 {
		t.Fatalf("Expected 1 pending timer, got %d", n)
	}

	SetTime(60)
	ProcessTimers()
	if count != 1 {
		t.Errorf("Expected the moved timer to fire once, fired %d", count)
	}
	if PendingTimers() != 0 {
		t.Error("Expected no pending timers")
	}
}

func TestScheduleTimerAt(t *testing.T) {
	ResetTimers()
	defer ResetTimers()

	count := 0
	tm := &Timer{Handler: func(*Timer) uint8 {
		count++
		return SF_DONE
	}}
	ScheduleTimerAt(tm, 500)
	ScheduleTimerAt(tm, 200)

	if n := PendingTimers(); n != 1 {
		t.Fatalf("Expected 1 pending timer, got %d", n)
	}
	if tm.WakeTime != 200 {
		t.Errorf("Expected WakeTime 200, got %d", tm.WakeTime)
	}

	SetTime(250)
	ProcessTimers()
	if count != 1 {
		t.Errorf("Expected the timer to fire once, fired %d", count)
	}
}
