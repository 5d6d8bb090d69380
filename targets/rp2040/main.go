//go:build rp2040

package main

import (
	"brickgo/config"
	"brickgo/core"
	"brickgo/device"
	"context"
	"machine"
	"time"
)

// timerPoll is how often the main loop's timer goroutine runs due timers
const timerPoll = time.Millisecond

func main() {
	// Clear any watchdog state left over from before the reset
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	InitUSB()
	InitDebugUART()
	core.TimerInit()

	core.SetGPIODriver(NewRPGPIODriver())
	core.SetPWMDriver(NewRP2040PWMDriver())
	adc := NewRPAdcDriver()
	core.SetADCDriver(adc)

	cfg := config.DefaultConfig()
	if err := adc.Init(core.ADCConfig{Reference: cfg.Battery.ReferenceMillivolts}); err != nil {
		halt("adc init: " + err.Error())
	}

	left, err := device.NewMotor(device.PortA, cfg.Left)
	if err != nil {
		halt("left motor: " + err.Error())
	}
	right, err := device.NewMotor(device.PortC, cfg.Right)
	if err != nil {
		halt("right motor: " + err.Error())
	}
	pair := device.NewMotorPair(left, right)

	battery, err := device.NewBattery(cfg.Battery)
	if err != nil {
		halt("battery: " + err.Error())
	}

	cutoff := device.NewCutoff(battery, pair, cfg.Battery)
	cutoff.Start()

	var display device.Display = device.DebugDisplay{}
	if lcd, err := NewLCD(cfg.Display.Width, cfg.Display.Height); err != nil {
		core.DebugPrintln("lcd unavailable, using debug output: " + err.Error())
	} else {
		display = lcd
	}

	// Timer handlers run here, apart from the demo loop that sleeps
	go func() {
		for {
			core.ProcessTimers()
			time.Sleep(timerPoll)
		}
	}()

	link := newTelemetryLink()
	demo := &device.BatteryDemo{
		Battery: battery,
		Display: display,
		Report:  link.Report(pair, cutoff),
	}

	for {
		// Keep the demo alive across panics so the cutoff keeps running
		func() {
			defer func() {
				if r := recover(); r != nil {
					core.DebugPrintln("demo: recovered from panic")
					core.DumpEvents()
				}
			}()

			if err := demo.Run(context.Background()); err != nil {
				core.DebugPrintln("demo: " + err.Error())
				time.Sleep(time.Second)
			}
		}()
	}
}

// halt parks the firmware after a fatal setup error
func halt(msg string) {
	core.DebugPrintln("fatal: " + msg)
	for {
		time.Sleep(time.Second)
	}
}
