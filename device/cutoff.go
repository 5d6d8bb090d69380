package device

import (
	"brickgo/config"
	"brickgo/core"
)

// DefaultCutoffInterval is the sampling period used when the configuration
// leaves it unset
const DefaultCutoffInterval = core.TimerFreq / 10

// Cutoff watches the battery from a timer handler and shuts the motor pair
// down once the voltage has stayed under the limit for several samples in a
// row. It latches: the pair stays inhibited until Reset.
type Cutoff struct {
	battery *Battery
	pair    *MotorPair
	cfg     config.BatteryConfig

	timer core.Timer

	lock    core.Section
	active  bool
	next    uint32
	low     uint8
	tripped bool
	tripMV  int
}

// NewCutoff builds a cutoff for the given battery and pair. Start schedules it.
func NewCutoff(battery *Battery, pair *MotorPair, cfg config.BatteryConfig) *Cutoff {
	c := &Cutoff{
		battery: battery,
		pair:    pair,
		cfg:     cfg,
	}
	if c.cfg.CutoffCount == 0 {
		c.cfg.CutoffCount = 1
	}
	// A zero interval would reschedule the handler at the time it just ran
	if c.cfg.IntervalTicks == 0 {
		c.cfg.IntervalTicks = DefaultCutoffInterval
	}
	c.timer.Handler = c.sample
	return c
}

// Start schedules the first sample one interval from now. A zero
// CutoffMillivolts disables the cutoff and Start does nothing.
func (c *Cutoff) Start() {
	if c.cfg.CutoffMillivolts == 0 {
		return
	}
	core.Synchronized(&c.lock, func() {
		c.active = true
		c.next = core.GetTime() + c.cfg.IntervalTicks
		core.ScheduleTimerAt(&c.timer, c.next)
	})
}

// Stop removes the cutoff from the schedule
func (c *Cutoff) Stop() {
	core.Synchronized(&c.lock, func() {
		c.active = false
		core.CancelTimer(&c.timer)
	})
}

// Tripped reports whether the cutoff has shut the motors down, and the
// voltage that did it.
func (c *Cutoff) Tripped() (bool, int) {
	var tripped bool
	var mv int
	core.Synchronized(&c.lock, func() {
		tripped, mv = c.tripped, c.tripMV
	})
	return tripped, mv
}

// Reset clears the latch, lets the pair drive again and restarts sampling.
// Latch and inhibit change together under the cutoff's section, so a
// concurrent trip can never leave one without the other.
func (c *Cutoff) Reset() {
	core.Synchronized(&c.lock, func() {
		c.tripped = false
		c.tripMV = 0
		c.low = 0
		c.pair.Resume()
	})
	c.Start()
}

// sample is the timer handler. It schedules its own next run under the
// cutoff's section, so Start, Stop and Reset from the main loop always win.
func (c *Cutoff) sample(t *core.Timer) uint8 {
	r, err := c.battery.Read()
	if err != nil {
		core.DebugAsync("cutoff: battery read failed: " + err.Error())
	}

	var inhibitErr error
	trip := core.SynchronizedValue(&c.lock, func() bool {
		if !c.active {
			return false
		}
		if err == nil && c.observe(r.Millivolts) {
			c.active = false
			core.CancelTimer(t)
			c.tripped = true
			c.tripMV = r.Millivolts
			inhibitErr = c.pair.Inhibit()
			return true
		}
		c.next += c.cfg.IntervalTicks
		core.ScheduleTimerAt(t, c.next)
		return false
	})
	if !trip {
		return core.SF_DONE
	}

	if inhibitErr != nil {
		core.DebugAsync("cutoff: inhibit failed: " + inhibitErr.Error())
	}
	core.RecordEvent(core.EvtCutoff, c.cfg.Channel, uint32(r.Millivolts), 0)
	core.DebugAsync("cutoff: battery low at " + core.Itoa(r.Millivolts) + "mV, motors off")
	return core.SF_DONE
}

// observe counts consecutive low readings and reports when the count is
// reached. Must be called with c.lock held.
func (c *Cutoff) observe(mv int) bool {
	if uint32(mv) >= c.cfg.CutoffMillivolts {
		c.low = 0
		return false
	}
	c.low++
	return c.low >= c.cfg.CutoffCount
}
