// Package device drives the robot's outputs and sensors: motors on H-bridge
// channels, the motor pair that steers the robot, and the battery sense
// input. Device state is shared between the main loop and timer handlers, so
// every update goes through a core critical section.
package device

import (
	"brickgo/config"
	"brickgo/core"
)

// Port names a motor output
type Port uint8

// Motor outputs
const (
	PortA Port = iota
	PortB
	PortC
)

// String returns "A", "B" or "C"
func (p Port) String() string {
	return string(rune('A' + p))
}

// Direction is the drive mode of a motor
type Direction uint8

// Directions
const (
	Off     Direction = iota // Bridge open, motor coasts
	Forward                  // Run forward
	Reverse                  // Run backwards
	Brake                    // Bridge shorted, motor stops hard
)

// String returns the direction name
func (d Direction) String() string {
	switch d {
	case Off:
		return "off"
	case Forward:
		return "fwd"
	case Reverse:
		return "rev"
	case Brake:
		return "brake"
	default:
		return "?"
	}
}

// Speed limits
const (
	MinSpeed = 0
	MaxSpeed = core.PWMMax
)

// MotorState is a snapshot of what a motor is doing
type MotorState struct {
	Port      Port
	Speed     uint8
	Direction Direction
}

// Motor drives one H-bridge channel: two logic inputs pick the direction and
// a PWM enable pin sets the power level.
type Motor struct {
	port Port
	cfg  config.MotorConfig
	gpio core.GPIODriver
	pwm  core.PWMDriver

	lock  core.Section
	speed uint8
	dir   Direction
}

// NewMotor configures the pins of one channel using the registered HAL
// drivers and leaves the motor off.
func NewMotor(port Port, cfg config.MotorConfig) (*Motor, error) {
	m := &Motor{
		port: port,
		cfg:  cfg,
		gpio: core.MustGPIO(),
		pwm:  core.MustPWM(),
		dir:  Off,
	}

	if err := m.gpio.ConfigureOutput(core.GPIOPin(cfg.In1)); err != nil {
		return nil, err
	}
	if err := m.gpio.ConfigureOutput(core.GPIOPin(cfg.In2)); err != nil {
		return nil, err
	}
	if _, err := m.pwm.ConfigureHardwarePWM(core.PWMPin(cfg.Enable), cfg.CycleTicks); err != nil {
		return nil, err
	}
	if err := m.apply(); err != nil {
		return nil, err
	}

	return m, nil
}

// SetSpeed sets the power level, clamped to MinSpeed..MaxSpeed
func (m *Motor) SetSpeed(level int) error {
	if level < MinSpeed {
		level = MinSpeed
	} else if level > MaxSpeed {
		level = MaxSpeed
	}

	return core.SynchronizedErr(&m.lock, func() error {
		m.speed = uint8(level)
		core.RecordEvent(core.EvtMotorSpeed, uint8(m.port), uint32(level), 0)
		return m.apply()
	})
}

// SetDirection sets the drive mode
func (m *Motor) SetDirection(dir Direction) error {
	return core.SynchronizedErr(&m.lock, func() error {
		m.dir = dir
		core.RecordEvent(core.EvtMotorDirection, uint8(m.port), uint32(dir), 0)
		return m.apply()
	})
}

// Forward runs the motor forward at its current speed
func (m *Motor) Forward() error { return m.SetDirection(Forward) }

// Reverse runs the motor backwards at its current speed
func (m *Motor) Reverse() error { return m.SetDirection(Reverse) }

// Brake stops the motor hard
func (m *Motor) Brake() error { return m.SetDirection(Brake) }

// Off lets the motor coast
func (m *Motor) Off() error { return m.SetDirection(Off) }

// Close lets the motor coast and shuts its PWM output down. The motor is
// unusable afterwards.
func (m *Motor) Close() error {
	return core.SynchronizedErr(&m.lock, func() error {
		m.dir = Off
		if err := m.apply(); err != nil {
			return err
		}
		return m.pwm.DisablePWM(core.PWMPin(m.cfg.Enable))
	})
}

// State returns a consistent snapshot of speed and direction
func (m *Motor) State() MotorState {
	return core.SynchronizedValue(&m.lock, func() MotorState {
		return MotorState{Port: m.port, Speed: m.speed, Direction: m.dir}
	})
}

// apply pushes speed and direction to the bridge. Must be called with m.lock held.
func (m *Motor) apply() error {
	var in1, in2 bool
	duty := core.PWMValue(m.speed)

	dir := m.dir
	if m.cfg.Invert {
		switch dir {
		case Forward:
			dir = Reverse
		case Reverse:
			dir = Forward
		}
	}

	switch dir {
	case Forward:
		in1, in2 = true, false
	case Reverse:
		in1, in2 = false, true
	case Brake:
		in1, in2 = true, true
		duty = core.PWMMax
	default:
		in1, in2 = false, false
		duty = 0
	}

	// Drop the enable first so the bridge never drives a stale direction
	if err := m.pwm.SetDutyCycle(core.PWMPin(m.cfg.Enable), 0); err != nil {
		return err
	}
	if err := m.gpio.SetPin(core.GPIOPin(m.cfg.In1), in1); err != nil {
		return err
	}
	if err := m.gpio.SetPin(core.GPIOPin(m.cfg.In2), in2); err != nil {
		return err
	}
	return m.pwm.SetDutyCycle(core.PWMPin(m.cfg.Enable), duty)
}
