package main

import (
	"fmt"
	"os"

	"brickgo/host/monitor"
	"brickgo/host/serial"
)

// SourceOptions selects where telemetry comes from
type SourceOptions struct {
	Port string `short:"p" long:"port" default:"/dev/ttyACM0" description:"Serial device of the robot"`
	Baud int    `long:"baud" default:"115200" description:"Baud rate"`
	File string `short:"f" long:"file" description:"Replay a captured byte stream instead of the serial port"`
}

func (o *SourceOptions) open() (*monitor.Monitor, error) {
	if o.File != "" {
		f, err := os.Open(o.File)
		if err != nil {
			return nil, fmt.Errorf("open capture: %w", err)
		}
		return monitor.New(f, true), nil
	}

	cfg := serial.DefaultConfig(o.Port)
	cfg.Baud = o.Baud
	return monitor.Open(cfg)
}

func (o *SourceOptions) describe() string {
	if o.File != "" {
		return o.File
	}
	return o.Port
}
