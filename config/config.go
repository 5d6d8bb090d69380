// Package config describes how a robot is wired: which pins drive each motor,
// where the battery divider is read, and when the low-battery cutoff trips.
package config

import (
	"encoding/json"
)

// MotorConfig wires one H-bridge channel
type MotorConfig struct {
	In1        uint32 `json:"in1"`         // GPIO for bridge input 1
	In2        uint32 `json:"in2"`         // GPIO for bridge input 2
	Enable     uint32 `json:"enable"`      // PWM-capable enable pin
	CycleTicks uint32 `json:"cycle_ticks"` // PWM period in timer ticks
	Invert     bool   `json:"invert"`      // Swap forward and reverse
}

// BatteryConfig describes the battery sense divider and cutoff
type BatteryConfig struct {
	Channel             uint8  `json:"channel"`              // ADC channel
	ReferenceMillivolts uint32 `json:"reference_millivolts"` // ADC full scale
	DividerNum          uint32 `json:"divider_num"`          // Vbat = Vadc * Num / Den
	DividerDen          uint32 `json:"divider_den"`
	Samples             uint8  `json:"samples"`           // Conversions averaged per reading
	CutoffMillivolts    uint32 `json:"cutoff_millivolts"` // 0 disables the cutoff
	CutoffCount         uint8  `json:"cutoff_count"`      // Consecutive low readings before tripping
	IntervalTicks       uint32 `json:"interval_ticks"`    // Cutoff sampling period
}

// DisplayConfig sizes the character LCD
type DisplayConfig struct {
	Width  int16 `json:"width"`
	Height int16 `json:"height"`
}

// RobotConfig is the complete robot wiring
type RobotConfig struct {
	Left    MotorConfig   `json:"left"`
	Right   MotorConfig   `json:"right"`
	Battery BatteryConfig `json:"battery"`
	Display DisplayConfig `json:"display"`
}

// LoadConfig parses a JSON configuration and fills in defaults
func LoadConfig(jsonData []byte) (*RobotConfig, error) {
	var config RobotConfig

	err := json.Unmarshal(jsonData, &config)
	if err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

// applyDefaults fills in missing configuration values with sensible defaults
func applyDefaults(config *RobotConfig) {
	for _, m := range []*MotorConfig{&config.Left, &config.Right} {
		if m.CycleTicks == 0 {
			m.CycleTicks = 600 // 20kHz at 12MHz, above audible whine
		}
	}

	b := &config.Battery
	if b.ReferenceMillivolts == 0 {
		b.ReferenceMillivolts = 3300
	}
	if b.DividerNum == 0 || b.DividerDen == 0 {
		// 30k/10k divider: 9V pack reads as 2.25V
		b.DividerNum = 4
		b.DividerDen = 1
	}
	if b.Samples == 0 {
		b.Samples = 4
	}
	if b.CutoffCount == 0 {
		b.CutoffCount = 3
	}
	if b.IntervalTicks == 0 {
		b.IntervalTicks = 12000000 / 10 // 100ms
	}

	if config.Display.Width == 0 {
		config.Display.Width = 16
	}
	if config.Display.Height == 0 {
		config.Display.Height = 2
	}
}

// DefaultConfig returns the wiring of the reference RP2040 board:
// left motor on GPIO 2/3 with enable on GPIO 4, right motor on GPIO 6/7
// with enable on GPIO 8, battery divider on ADC0.
func DefaultConfig() *RobotConfig {
	config := &RobotConfig{
		Left:  MotorConfig{In1: 2, In2: 3, Enable: 4},
		Right: MotorConfig{In1: 6, In2: 7, Enable: 8},
		Battery: BatteryConfig{
			Channel:          0,
			CutoffMillivolts: 6000,
		},
	}
	applyDefaults(config)
	return config
}
