package protocol

import (
	"errors"
	"io"
)

var (
	ErrBadFrame = errors.New("malformed frame")
	ErrBadCRC   = errors.New("frame CRC mismatch")
)

// EncodeFrame writes one frame with the given sequence number. body writes
// the payload.
func EncodeFrame(output OutputBuffer, seq uint8, body func(output OutputBuffer)) {
	cursor := output.CurPosition()

	// Length is patched in once the payload is written
	output.Output([]byte{0, MessageDest | (seq & MessageSeqMask)})

	body(output)

	changed := len(output.DataSince(cursor))
	output.Update(cursor, uint8(changed+MessageTrailerSize))

	crc := CRC16(output.DataSince(cursor))
	output.Output([]byte{
		uint8((crc & 0xFF00) >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})
}

// ParseFrame checks a complete frame and returns its sequence number and
// payload. The payload aliases frame.
func ParseFrame(frame []byte) (uint8, []byte, error) {
	if len(frame) < MessageLengthMin || len(frame) > MessageLengthMax {
		return 0, nil, ErrBadFrame
	}
	if int(frame[MessagePositionLen]) != len(frame) {
		return 0, nil, ErrBadFrame
	}
	seq := frame[MessagePositionSeq]
	if seq&^MessageSeqMask != MessageDest {
		return 0, nil, ErrBadFrame
	}
	if frame[len(frame)-MessageTrailerSync] != MessageValueSync {
		return 0, nil, ErrBadFrame
	}

	n := len(frame)
	frameCRC := uint16(frame[n-MessageTrailerCRC])<<8 | uint16(frame[n-MessageTrailerCRC+1])
	if frameCRC != CRC16(frame[:n-MessageTrailerSize]) {
		return 0, nil, ErrBadCRC
	}

	return seq & MessageSeqMask, frame[MessageHeaderSize : n-MessageTrailerSize], nil
}

// FrameReader cuts a byte stream into frames. Garbage between frames and
// frames that fail their checks are skipped by resynchronising on the next
// sync byte.
type FrameReader struct {
	r       io.Reader
	buf     []byte
	scratch [MessageLengthMax]byte
	dropped int
}

// NewFrameReader reads frames from r
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: r}
}

// Next returns the next valid frame. The returned slice is only valid until
// the following call. Read errors, including io.EOF, are returned as is;
// calling Next again after a read error resumes where it stopped.
func (f *FrameReader) Next() ([]byte, error) {
	for {
		if frame, ok := f.extract(); ok {
			return frame, nil
		}

		n, err := f.r.Read(f.scratch[:])
		f.buf = append(f.buf, f.scratch[:n]...)
		if err != nil {
			return nil, err
		}
	}
}

// Dropped returns how many frames failed their checks so far
func (f *FrameReader) Dropped() int {
	return f.dropped
}

// extract pulls one valid frame off the front of buf
func (f *FrameReader) extract() ([]byte, bool) {
	for {
		for len(f.buf) > 0 && f.buf[0] == MessageValueSync {
			f.buf = f.buf[1:]
		}
		if len(f.buf) < MessageLengthMin {
			return nil, false
		}

		msgLen := int(f.buf[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			f.resync()
			continue
		}
		if len(f.buf) < msgLen {
			// A bad destination byte means we are mid-garbage; no point waiting
			if f.buf[MessagePositionSeq]&^MessageSeqMask != MessageDest {
				f.resync()
				continue
			}
			return nil, false
		}

		frame := f.buf[:msgLen]
		if _, _, err := ParseFrame(frame); err != nil {
			f.resync()
			continue
		}

		f.buf = f.buf[msgLen:]
		return frame, true
	}
}

// resync drops bytes up to and including the next sync byte
func (f *FrameReader) resync() {
	f.dropped++
	for i := 1; i < len(f.buf); i++ {
		if f.buf[i] == MessageValueSync {
			f.buf = f.buf[i+1:]
			return
		}
	}
	f.buf = f.buf[:0]
}
