package protocol

// OutputBuffer is where frames are assembled. The frame encoder writes the
// length byte as a placeholder and patches it once the payload is known.
type OutputBuffer interface {
	Output(data []byte)
	CurPosition() int
	Update(pos int, val byte)
	DataSince(pos int) []byte
}

// ScratchOutput is a fixed OutputBuffer with room for a few frames, so the
// firmware can build telemetry without allocating. Bytes that do not fit are
// dropped.
type ScratchOutput struct {
	buf [MessageLengthMax * 4]byte
	pos int
}

// NewScratchOutput returns an empty buffer
func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{}
}

// Output appends data
func (s *ScratchOutput) Output(data []byte) {
	s.pos += copy(s.buf[s.pos:], data)
}

// CurPosition is the offset the next Output writes at
func (s *ScratchOutput) CurPosition() int {
	return s.pos
}

// Update overwrites one byte already written
func (s *ScratchOutput) Update(pos int, val byte) {
	if pos < s.pos {
		s.buf[pos] = val
	}
}

// DataSince returns what was written from pos on, aliasing the buffer
func (s *ScratchOutput) DataSince(pos int) []byte {
	if pos > s.pos {
		return nil
	}
	return s.buf[pos:s.pos]
}

// Result is everything written since the last Reset
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// Reset empties the buffer
func (s *ScratchOutput) Reset() {
	s.pos = 0
}
