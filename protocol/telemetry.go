package protocol

// Telemetry flags
const (
	TelemetryCutoff = 1 << 0 // Low-battery cutoff has tripped
)

// MotorTelemetry is the state of one motor
type MotorTelemetry struct {
	Direction uint8
	Speed     uint8
}

// Telemetry is one status report from the robot
type Telemetry struct {
	Seq        uint8
	Clock      uint32 // Robot clock in timer ticks
	Level      uint32 // Raw battery level
	Millivolts uint32 // Battery voltage
	Left       MotorTelemetry
	Right      MotorTelemetry
	Flags      uint8
}

// Tripped reports whether the cutoff flag is set
func (t *Telemetry) Tripped() bool {
	return t.Flags&TelemetryCutoff != 0
}

// EncodeTelemetry writes t as one frame
func EncodeTelemetry(output OutputBuffer, t *Telemetry) {
	EncodeFrame(output, t.Seq, func(output OutputBuffer) {
		EncodeVLQUint(output, t.Clock)
		EncodeVLQUint(output, t.Level)
		EncodeVLQUint(output, t.Millivolts)
		EncodeVLQUint(output, uint32(t.Left.Direction))
		EncodeVLQUint(output, uint32(t.Left.Speed))
		EncodeVLQUint(output, uint32(t.Right.Direction))
		EncodeVLQUint(output, uint32(t.Right.Speed))
		EncodeVLQUint(output, uint32(t.Flags))
	})
}

// DecodeTelemetry parses a frame produced by EncodeTelemetry
func DecodeTelemetry(frame []byte) (Telemetry, error) {
	var t Telemetry

	seq, payload, err := ParseFrame(frame)
	if err != nil {
		return t, err
	}
	t.Seq = seq

	fields := []*uint32{&t.Clock, &t.Level, &t.Millivolts}
	for _, f := range fields {
		if *f, err = DecodeVLQUint(&payload); err != nil {
			return t, ErrBadFrame
		}
	}

	small := []*uint8{&t.Left.Direction, &t.Left.Speed, &t.Right.Direction, &t.Right.Speed, &t.Flags}
	for _, f := range small {
		v, err := DecodeVLQUint(&payload)
		if err != nil || v > 0xFF {
			return t, ErrBadFrame
		}
		*f = uint8(v)
	}

	if len(payload) != 0 {
		return t, ErrBadFrame
	}
	return t, nil
}
