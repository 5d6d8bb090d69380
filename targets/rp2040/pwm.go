//go:build rp2040

package main

import (
	"brickgo/core"
	"machine"
)

// pwmPeripheral abstracts over TinyGo's unexported *pwmGroup type
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// RP2040PWMDriver drives motor enable pins from the 8 hardware PWM slices
type RP2040PWMDriver struct {
	// slice number -> configured period in nanoseconds
	slices map[uint8]uint64

	// pin number -> PWM channel
	channels map[uint32]uint8

	// slice number -> peripheral
	peripherals map[uint8]pwmPeripheral
}

// NewRP2040PWMDriver creates a new RP2040 PWM driver
func NewRP2040PWMDriver() *RP2040PWMDriver {
	return &RP2040PWMDriver{
		slices:      make(map[uint8]uint64),
		channels:    make(map[uint32]uint8),
		peripherals: make(map[uint8]pwmPeripheral),
	}
}

// sliceOf maps GPIO N to slice (N>>1)&7
func sliceOf(pin uint32) uint8 {
	return uint8((pin >> 1) & 0x7)
}

// ConfigureHardwarePWM configures a pin for hardware PWM output. Both pins
// of a slice share one period; the last configuration wins.
func (d *RP2040PWMDriver) ConfigureHardwarePWM(pin core.PWMPin, cycleTicks uint32) (uint32, error) {
	pinNum := uint32(pin)
	sliceNum := sliceOf(pinNum)

	pwm, exists := d.peripherals[sliceNum]
	if !exists {
		pwm = pwmSlice(sliceNum)
		d.peripherals[sliceNum] = pwm
	}

	// period_ns = cycleTicks * 1e9 / TimerFreq
	period := (uint64(cycleTicks) * 1000000000) / core.TimerFreq

	if err := pwm.Configure(machine.PWMConfig{Period: period}); err != nil {
		return 0, err
	}

	channel, err := pwm.Channel(machine.Pin(pinNum))
	if err != nil {
		return 0, err
	}

	d.slices[sliceNum] = period
	d.channels[pinNum] = channel
	pwm.Set(channel, 0)

	return cycleTicks, nil
}

// SetDutyCycle scales value (0..core.PWMMax) onto the slice's counter top
func (d *RP2040PWMDriver) SetDutyCycle(pin core.PWMPin, value core.PWMValue) error {
	pinNum := uint32(pin)

	channel, exists := d.channels[pinNum]
	if !exists {
		return nil
	}
	pwm := d.peripherals[sliceOf(pinNum)]

	if value > core.PWMMax {
		value = core.PWMMax
	}
	pwm.Set(channel, (uint32(value)*pwm.Top())/core.PWMMax)
	return nil
}

// DisablePWM drives the output low. TinyGo has no way to hand the pin back
// to plain GPIO, so it stays in PWM mode.
func (d *RP2040PWMDriver) DisablePWM(pin core.PWMPin) error {
	pinNum := uint32(pin)

	channel, exists := d.channels[pinNum]
	if !exists {
		return nil
	}
	d.peripherals[sliceOf(pinNum)].Set(channel, 0)
	delete(d.channels, pinNum)
	return nil
}

// pwmSlice returns PWM0-PWM7
func pwmSlice(sliceNum uint8) pwmPeripheral {
	switch sliceNum {
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return machine.PWM0
	}
}
