// Package bitconv flattens bytes to MSB-first bit slices and back. The frame
// codec and the ring sampler exchange bits in this form.
package bitconv

// Bits expands b MSB-first, one bool per bit.
func Bits(b []byte) []bool {
	bits := make([]bool, 0, len(b)*8)
	for _, bb := range b {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (bb>>uint(i))&1 == 1)
		}
	}
	return bits
}

// Bytes packs bits MSB-first; a trailing partial byte is zero-padded on the
// right. The input is not modified.
func Bytes(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}
