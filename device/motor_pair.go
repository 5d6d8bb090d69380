package device

import (
	"errors"
	"time"

	"brickgo/core"
)

// ErrInhibited is returned when a drive command reaches a pair that the
// low-battery cutoff has shut down.
var ErrInhibited = errors.New("motor pair inhibited")

// MotorPair treats the two drive motors of a robot, one on each side, as a
// single unit. The motors are mounted facing each other, so driving the robot
// forward runs the left motor forward and the right motor in reverse.
//
// Every manoeuvre is two motor updates. They are made under the pair's
// critical section so timer handlers never see the robot half way through one.
type MotorPair struct {
	left  *Motor
	right *Motor
	delay func(time.Duration)

	lock      core.Section
	inhibited bool
}

// NewMotorPair groups two motors. BrakeFor waits with time.Sleep unless
// SetDelay installs something else.
func NewMotorPair(left, right *Motor) *MotorPair {
	return &MotorPair{
		left:  left,
		right: right,
		delay: time.Sleep,
	}
}

// SetDelay replaces the function BrakeFor waits with
func (p *MotorPair) SetDelay(delay func(time.Duration)) {
	p.delay = delay
}

// SetSpeed sets both motors to the same power level
func (p *MotorPair) SetSpeed(level int) error {
	return core.SynchronizedErr(&p.lock, func() error {
		return p.setSpeed(level)
	})
}

// SetDirection drives the pair as one motor. Forward and Reverse are
// mirrored onto the right motor; Brake and Off apply to both as given.
func (p *MotorPair) SetDirection(dir Direction) error {
	return core.SynchronizedErr(&p.lock, func() error {
		return p.direction(dir)
	})
}

// Forward moves the robot forward
func (p *MotorPair) Forward() error { return p.SetDirection(Forward) }

// Reverse moves the robot backwards
func (p *MotorPair) Reverse() error { return p.SetDirection(Reverse) }

// Brake stops both motors without coasting. Allowed while inhibited.
func (p *MotorPair) Brake() error { return p.SetDirection(Brake) }

// Off stops both motors and lets them coast. Allowed while inhibited.
func (p *MotorPair) Off() error { return p.SetDirection(Off) }

// Left spins the robot left about its centre
func (p *MotorPair) Left() error { return p.turn(Forward, Forward, -1) }

// Right spins the robot right about its centre
func (p *MotorPair) Right() error { return p.turn(Reverse, Reverse, -1) }

// PivotLeft turns left about the left wheel, which is braked
func (p *MotorPair) PivotLeft() error { return p.turn(Brake, Reverse, -1) }

// PivotRight turns right about the right wheel, which is braked
func (p *MotorPair) PivotRight() error { return p.turn(Forward, Brake, -1) }

// ForwardAt moves forward at the given speed
func (p *MotorPair) ForwardAt(level int) error { return p.turn(Forward, Reverse, level) }

// ReverseAt moves backwards at the given speed
func (p *MotorPair) ReverseAt(level int) error { return p.turn(Reverse, Forward, level) }

// LeftAt spins left about the centre at the given speed
func (p *MotorPair) LeftAt(level int) error { return p.turn(Forward, Forward, level) }

// RightAt spins right about the centre at the given speed
func (p *MotorPair) RightAt(level int) error { return p.turn(Reverse, Reverse, level) }

// PivotLeftAt pivots about the left wheel at the given speed
func (p *MotorPair) PivotLeftAt(level int) error { return p.turn(Brake, Reverse, level) }

// PivotRightAt pivots about the right wheel at the given speed
func (p *MotorPair) PivotRightAt(level int) error { return p.turn(Forward, Brake, level) }

// BrakeFor brakes and then waits d before returning. The wait happens
// outside the critical section.
func (p *MotorPair) BrakeFor(d time.Duration) error {
	if err := p.Brake(); err != nil {
		return err
	}
	p.delay(d)
	return nil
}

// Inhibit turns both motors off and refuses further drive commands until
// Resume. Brake and Off keep working.
func (p *MotorPair) Inhibit() error {
	return core.SynchronizedErr(&p.lock, func() error {
		p.inhibited = true
		return p.both(Off, Off)
	})
}

// Resume lifts an Inhibit
func (p *MotorPair) Resume() {
	core.Synchronized(&p.lock, func() {
		p.inhibited = false
	})
}

// Inhibited reports whether the pair refuses drive commands
func (p *MotorPair) Inhibited() bool {
	return core.SynchronizedValue(&p.lock, func() bool {
		return p.inhibited
	})
}

// State returns both motor states, taken under the pair's section so they
// belong to the same manoeuvre.
func (p *MotorPair) State() (left, right MotorState) {
	core.Synchronized(&p.lock, func() {
		left = p.left.State()
		right = p.right.State()
	})
	return left, right
}

// Close lets both motors coast and shuts their PWM outputs down. Both are
// closed even if the first fails.
func (p *MotorPair) Close() error {
	return core.SynchronizedErr(&p.lock, func() error {
		err := p.left.Close()
		if rerr := p.right.Close(); err == nil {
			err = rerr
		}
		return err
	})
}

// turn sets both directions and, when level >= 0, the speed, all under one
// section. Must not be called with p.lock held.
func (p *MotorPair) turn(left, right Direction, level int) error {
	return core.SynchronizedErr(&p.lock, func() error {
		if err := p.both(left, right); err != nil {
			return err
		}
		if level < 0 {
			return nil
		}
		return p.setSpeed(level)
	})
}

// direction maps a pair direction onto the two motors. Must be called with p.lock held.
func (p *MotorPair) direction(dir Direction) error {
	switch dir {
	case Forward:
		return p.both(Forward, Reverse)
	case Reverse:
		return p.both(Reverse, Forward)
	default:
		return p.both(dir, dir)
	}
}

// both sets the two directions. Must be called with p.lock held.
func (p *MotorPair) both(left, right Direction) error {
	if p.inhibited && !(stopping(left) && stopping(right)) {
		return ErrInhibited
	}
	if err := p.left.SetDirection(left); err != nil {
		return err
	}
	return p.right.SetDirection(right)
}

// setSpeed must be called with p.lock held
func (p *MotorPair) setSpeed(level int) error {
	if err := p.left.SetSpeed(level); err != nil {
		return err
	}
	return p.right.SetSpeed(level)
}

func stopping(dir Direction) bool {
	return dir == Off || dir == Brake
}
