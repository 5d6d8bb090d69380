package serial

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// tarmPort is a Port on github.com/tarm/serial. With a read timeout set,
// Read returns io.EOF when nothing arrived in time; the monitor treats that
// as idle, not as the end of the stream.
type tarmPort struct {
	*serial.Port
}

// Open opens the serial device described by cfg
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("serial: nil config")
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Device, err)
	}

	return tarmPort{Port: port}, nil
}
