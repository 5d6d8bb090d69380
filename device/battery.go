package device

import (
	"brickgo/config"
	"brickgo/core"
)

// Reading is one battery measurement
type Reading struct {
	Level      int    // Averaged raw ADC level, 0..core.ADCMax
	Millivolts int    // Battery voltage after the divider is undone
	Clock      uint32 // System clock when taken
}

// Battery reads the battery voltage through a resistor divider on an ADC
// channel. The converter is shared by the main loop and the cutoff timer,
// so conversions run under the battery's critical section.
type Battery struct {
	cfg config.BatteryConfig
	adc core.ADCDriver

	lock core.Section
	last Reading
}

// NewBattery configures the sense channel on the registered ADC driver
func NewBattery(cfg config.BatteryConfig) (*Battery, error) {
	b := &Battery{
		cfg: cfg,
		adc: core.MustADC(),
	}
	if b.cfg.Samples == 0 {
		b.cfg.Samples = 1
	}
	if err := b.adc.ConfigureChannel(core.ADCChannelID(cfg.Channel)); err != nil {
		return nil, err
	}
	return b, nil
}

// Get returns the averaged raw level
func (b *Battery) Get() (int, error) {
	r, err := b.Read()
	return r.Level, err
}

// Millivolts returns the battery voltage
func (b *Battery) Millivolts() (int, error) {
	r, err := b.Read()
	return r.Millivolts, err
}

// Read takes a fresh measurement
func (b *Battery) Read() (Reading, error) {
	var r Reading
	err := core.SynchronizedErr(&b.lock, func() error {
		var sum uint32
		for i := uint8(0); i < b.cfg.Samples; i++ {
			v, err := b.adc.ReadRaw(core.ADCChannelID(b.cfg.Channel))
			if err != nil {
				return err
			}
			sum += uint32(v)
		}

		level := sum / uint32(b.cfg.Samples)
		r = Reading{
			Level:      int(level),
			Millivolts: b.toMillivolts(level),
			Clock:      core.GetTime(),
		}
		b.last = r
		return nil
	})
	if err != nil {
		return Reading{}, err
	}

	core.RecordEvent(core.EvtBatterySample, b.cfg.Channel, uint32(r.Level), uint32(r.Millivolts))
	return r, nil
}

// Last returns the most recent successful reading
func (b *Battery) Last() Reading {
	return core.SynchronizedValue(&b.lock, func() Reading {
		return b.last
	})
}

func (b *Battery) toMillivolts(level uint32) int {
	den := uint64(b.cfg.DividerDen)
	if den == 0 {
		den = 1
	}
	mv := uint64(level) * uint64(b.cfg.ReferenceMillivolts) / core.ADCMax
	return int(mv * uint64(b.cfg.DividerNum) / den)
}
