package protocol

import "errors"

// ErrBufferTooSmall means the payload ended in the middle of a field
var ErrBufferTooSmall = errors.New("payload ends inside a VLQ field")

// EncodeVLQInt writes v in 1 to 5 bytes: 7 bits per byte, most significant
// group first, high bit set on all but the last byte. Bits 5 and 6 of the
// first byte double as sign extension, so small negative values stay short.
func EncodeVLQInt(output OutputBuffer, v int32) {
	var buf [5]byte
	n := 0
	for shift := 28; shift > 0; shift -= 7 {
		// Groups above shift are needed unless v fits the range below it
		lo, hi := -(int32(1) << (shift - 2)), int32(3)<<(shift-2)
		if v < lo || v >= hi {
			buf[n] = byte(v>>shift)&0x7F | 0x80
			n++
		}
	}
	buf[n] = byte(v) & 0x7F
	output.Output(buf[:n+1])
}

// EncodeVLQUint writes v with the same encoding; values above MaxInt32 take
// the full five bytes.
func EncodeVLQUint(output OutputBuffer, v uint32) {
	EncodeVLQInt(output, int32(v))
}

// DecodeVLQInt reads one field and advances data past it
func DecodeVLQInt(data *[]byte) (int32, error) {
	b := *data
	if len(b) == 0 {
		return 0, ErrBufferTooSmall
	}

	c := b[0]
	v := uint32(c & 0x7F)
	if c&0x60 == 0x60 {
		v |= ^uint32(0x1F) // sign extend
	}

	i := 1
	for c&0x80 != 0 {
		if i == len(b) {
			return 0, ErrBufferTooSmall
		}
		c = b[i]
		i++
		v = v<<7 | uint32(c&0x7F)
	}

	*data = b[i:]
	return int32(v), nil
}

// DecodeVLQUint reads one unsigned field
func DecodeVLQUint(data *[]byte) (uint32, error) {
	v, err := DecodeVLQInt(data)
	return uint32(v), err
}
