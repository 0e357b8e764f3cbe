package core

// utoa converts an unsigned integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func utoa(n uint32) string {
	return utoa64(uint64(n))
}

// utoa64 converts an unsigned 64-bit integer to a string
func utoa64(n uint64) string {
	if n == 0 {
		return "0"
	}

	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

const hexDigits = "0123456789abcdef"

// hex16 formats v as 0x-prefixed lowercase hex without leading zeros
func hex16(v uint16) string {
	if v == 0 {
		return "0x0"
	}

	var buf [6]byte
	pos := len(buf)
	for v > 0 {
		pos--
		buf[pos] = hexDigits[v&0xF]
		v >>= 4
	}
	pos--
	buf[pos] = 'x'
	pos--
	buf[pos] = '0'
	return string(buf[pos:])
}
