package core

// Number formatting for debug output. fmt is too heavy for the firmware
// image, so messages are put together by hand.

// appendUint appends the decimal digits of n to buf
func appendUint(buf []byte, n uint64) []byte {
	var digits [20]byte
	i := len(digits)
	for {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	return append(buf, digits[i:]...)
}

// itoa formats a signed integer
func itoa(n int) string {
	if n < 0 {
		// -n overflows for the most negative int; uint64 math does not
		return string(appendUint([]byte{'-'}, uint64(-(n+1))+1))
	}
	return string(appendUint(nil, uint64(n)))
}

// utoa formats an unsigned integer
func utoa(n uint32) string {
	return string(appendUint(nil, uint64(n)))
}

// Itoa is itoa for device and target packages
func Itoa(n int) string {
	return itoa(n)
}
