package core

// Pattern is a 7-segment illumination pattern.
// Bits 0..6 drive segments a..g, bit 7 drives the decimal point.
//
//	 a
//	f b
//	 g
//	e c
//	 d  dp
type Pattern uint8

const (
	SegA Pattern = 1 << iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG
	SegDP
)

// SegmentLines is the number of segment drive lines including the point
const SegmentLines = 8

// segmentTable maps a nibble to its hex glyph
var segmentTable = [16]Pattern{
	0x3F, // 0
	0x06, // 1
	0x5B, // 2
	0x4F, // 3
	0x66, // 4
	0x6D, // 5
	0x7D, // 6
	0x07, // 7
	0x7F, // 8
	0x6F, // 9
	0x77, // A
	0x7C, // b
	0x39, // C
	0x5E, // d
	0x79, // E
	0x71, // F
}

// Decode returns the glyph for the low nibble of n
func Decode(n uint8) Pattern {
	return segmentTable[n&0xF]
}

// Lookup returns the nibble whose glyph is p, ignoring the decimal point
func Lookup(p Pattern) (uint8, bool) {
	p &^= SegDP
	for n, glyph := range segmentTable {
		if glyph == p {
			return uint8(n), true
		}
	}
	return 0, false
}

// Nibble returns the hex digit of value at position pos (0 = lowest order)
func Nibble(value uint16, pos int) uint8 {
	return uint8(value>>(uint(pos)*4)) & 0xF
}

// Lit reports whether segment line i (0 = a, 7 = dp) is on in p
func (p Pattern) Lit(i int) bool {
	return p&(1<<uint(i)) != 0
}
