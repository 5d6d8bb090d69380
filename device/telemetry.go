package device

import "brickgo/protocol"

// Telemetry assembles a status report from a battery reading and the current
// state of the pair. cutoff may be nil. Seq is left zero for the link that
// sends the report to number.
func Telemetry(r Reading, pair *MotorPair, cutoff *Cutoff) protocol.Telemetry {
	left, right := pair.State()

	t := protocol.Telemetry{
		Clock:      r.Clock,
		Level:      uint32(r.Level),
		Millivolts: uint32(r.Millivolts),
		Left:       protocol.MotorTelemetry{Direction: uint8(left.Direction), Speed: left.Speed},
		Right:      protocol.MotorTelemetry{Direction: uint8(right.Direction), Speed: right.Speed},
	}
	if cutoff != nil {
		if tripped, _ := cutoff.Tripped(); tripped {
			t.Flags |= protocol.TelemetryCutoff
		}
	}
	return t
}
