package device

import "brickgo/core"

// Display is a character display such as the robot's LCD
type Display interface {
	// Puts shows a short text
	Puts(s string) error

	// Int shows a number
	Int(v int) error

	// Clear blanks the display
	Clear() error
}

// DebugDisplay shows everything on the debug output. Used on boards without
// an LCD and in tests.
type DebugDisplay struct{}

// Puts prints s with an [LCD] prefix
func (DebugDisplay) Puts(s string) error {
	core.DebugPrintln("[LCD] " + s)
	return nil
}

// Int prints v with an [LCD] prefix
func (DebugDisplay) Int(v int) error {
	core.DebugPrintln("[LCD] " + core.Itoa(v))
	return nil
}

// Clear does nothing; a log has nothing to blank
func (DebugDisplay) Clear() error {
	return nil
}
