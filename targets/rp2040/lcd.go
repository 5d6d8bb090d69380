//go:build rp2040

package main

import (
	"brickgo/core"
	"machine"

	"tinygo.org/x/drivers/hd44780"
)

// LCD pins, 4-bit bus with RW tied low
const (
	lcdRS = machine.GPIO10
	lcdE  = machine.GPIO11
	lcdD4 = machine.GPIO12
	lcdD5 = machine.GPIO13
	lcdD6 = machine.GPIO14
	lcdD7 = machine.GPIO15
)

// LCD shows text on an HD44780 character display. Every call replaces the
// whole screen, like the original brick's lcd_int.
type LCD struct {
	dev hd44780.Device
}

// NewLCD configures the display
func NewLCD(width, height int16) (*LCD, error) {
	dev, err := hd44780.NewGPIO4Bit(
		[]machine.Pin{lcdD4, lcdD5, lcdD6, lcdD7},
		lcdE, lcdRS, machine.NoPin,
	)
	if err != nil {
		return nil, err
	}

	if err := dev.Configure(hd44780.Config{Width: width, Height: height}); err != nil {
		return nil, err
	}

	return &LCD{dev: dev}, nil
}

// Puts replaces the screen with s
func (l *LCD) Puts(s string) error {
	l.dev.ClearDisplay()
	l.dev.SetCursor(0, 0)
	if _, err := l.dev.Write([]byte(s)); err != nil {
		return err
	}
	return l.dev.Display()
}

// Int replaces the screen with v in decimal
func (l *LCD) Int(v int) error {
	return l.Puts(core.Itoa(v))
}

// Clear blanks the screen
func (l *LCD) Clear() error {
	l.dev.ClearDisplay()
	return l.dev.Display()
}
