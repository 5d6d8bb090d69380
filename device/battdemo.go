package device

import (
	"context"
	"time"
)

// BatteryDemo shows the battery level on the display: the word "batt", a
// second later the raw level, another second later the next round.
type BatteryDemo struct {
	Battery *Battery
	Display Display

	// Delay waits between screens; time.Sleep when nil
	Delay func(time.Duration)

	// Report, when set, receives every reading (telemetry)
	Report func(Reading)
}

// Step runs one round of the demo
func (d *BatteryDemo) Step() error {
	delay := d.Delay
	if delay == nil {
		delay = time.Sleep
	}

	if err := d.Display.Puts("batt"); err != nil {
		return err
	}
	delay(time.Second)

	r, err := d.Battery.Read()
	if err != nil {
		return err
	}
	if d.Report != nil {
		d.Report(r)
	}
	if err := d.Display.Int(r.Level); err != nil {
		return err
	}
	delay(time.Second)

	return nil
}

// Run repeats Step until ctx is done or a step fails
func (d *BatteryDemo) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := d.Step(); err != nil {
			return err
		}
	}
}
