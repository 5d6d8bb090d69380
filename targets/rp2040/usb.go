//go:build rp2040

package main

import (
	"brickgo/core"
	"brickgo/device"
	"brickgo/protocol"
	"machine"
)

// maxWriteFailures is how many failed writes in a row are tolerated before
// the host is assumed gone and frames are dropped without trying
const maxWriteFailures = 10

// telemetryLink streams telemetry frames over USB CDC
type telemetryLink struct {
	output   *protocol.ScratchOutput
	seq      uint8
	sent     uint32
	failures uint32
}

// InitUSB configures machine.Serial, which is USB CDC on RP2040
func InitUSB() {
	err := machine.Serial.Configure(machine.UARTConfig{})
	if err != nil {
		return
	}
}

func newTelemetryLink() *telemetryLink {
	return &telemetryLink{output: protocol.NewScratchOutput()}
}

// Send encodes one report and writes it out
func (l *telemetryLink) Send(t protocol.Telemetry) {
	t.Seq = l.seq
	l.seq = (l.seq + 1) & protocol.MessageSeqMask

	l.output.Reset()
	protocol.EncodeTelemetry(l.output, &t)
	l.write(l.output.Result())
}

// Report is a device.BatteryDemo report hook
func (l *telemetryLink) Report(pair *device.MotorPair, cutoff *device.Cutoff) func(device.Reading) {
	return func(r device.Reading) {
		l.Send(device.Telemetry(r, pair, cutoff))
	}
}

func (l *telemetryLink) write(frame []byte) {
	// Once the host looks gone, only every maxWriteFailures-th frame is tried
	if l.failures >= maxWriteFailures {
		l.failures++
		if l.failures%maxWriteFailures != 0 {
			return
		}
	}

	written := 0
	for written < len(frame) {
		n, err := machine.Serial.Write(frame[written:])
		if err != nil || n == 0 {
			l.failures++
			if l.failures == maxWriteFailures {
				core.DebugAsync("usb: host not reading, dropping telemetry")
			}
			return
		}
		written += n
	}

	l.failures = 0
	l.sent++
}
