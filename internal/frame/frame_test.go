package frame

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yyyoichi/ringcode/internal/ecc"
	"github.com/yyyoichi/ringcode/internal/layout"
)

func TestMaxPayloadBytes(t *testing.T) {
	assert.Equal(t, 149, MaxPayloadBytes(0))
	assert.Equal(t, 141, MaxPayloadBytes(1))
	assert.Equal(t, 125, MaxPayloadBytes(2))
	assert.Equal(t, 93, MaxPayloadBytes(3))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	schemes := []ecc.Scheme{ecc.ReedSolomon{}, ecc.Parity{}}
	texts := []string{
		"a",
		"Hello, ring code!",
		"こんにちはHello",
		strings.Repeat("x", 93),
	}
	for _, scheme := range schemes {
		for level := 0; level < ecc.Levels; level++ {
			for _, text := range texts {
				bits, err := Encode([]byte(text), level, scheme)
				require.NoError(t, err, "%s level=%d", scheme.Name(), level)
				require.Len(t, bits, layout.TotalBits())

				got, err := Decode(bits, scheme)
				require.NoError(t, err, "%s level=%d text=%q", scheme.Name(), level, text)
				assert.Equal(t, text, got)
			}
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := Encode([]byte("determinism"), 2, ecc.ReedSolomon{})
	require.NoError(t, err)
	b, err := Encode([]byte("determinism"), 2, ecc.ReedSolomon{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncodeBoundary(t *testing.T) {
	for level := 0; level < ecc.Levels; level++ {
		max := MaxPayloadBytes(level)

		_, err := Encode(make([]byte, max), level, ecc.ReedSolomon{})
		assert.NoError(t, err, "level=%d exact max", level)

		_, err = Encode(make([]byte, max+1), level, ecc.ReedSolomon{})
		assert.ErrorIs(t, err, ErrPayloadTooLarge, "level=%d max+1", level)
	}
}

func TestDecodeShortPayloadUnderParity(t *testing.T) {
	// a 1-byte payload leaves the data section almost entirely zero padding;
	// the flat-capture screen must not count that padding as corruption
	for level := 0; level < ecc.Levels; level++ {
		bits, err := Encode([]byte("a"), level, ecc.Parity{})
		require.NoError(t, err, "level=%d", level)
		got, err := Decode(bits, ecc.Parity{})
		require.NoError(t, err, "level=%d", level)
		assert.Equal(t, "a", got)
	}
}

// setHeaderByte overwrites one header byte inside an encoded bit sequence.
func setHeaderByte(bits []bool, idx int, v byte) {
	off := layout.StartBits + idx*8
	for i := 0; i < 8; i++ {
		bits[off+i] = v&(1<<(7-i)) != 0
	}
}

func TestHeaderChecksumSensitivity(t *testing.T) {
	bits, err := Encode([]byte("checksum probe"), 1, ecc.ReedSolomon{})
	require.NoError(t, err)

	// flipping any single bit of the first 6 header bytes must be caught
	for i := 0; i < 48; i++ {
		flipped := append([]bool{}, bits...)
		flipped[layout.StartBits+i] = !flipped[layout.StartBits+i]
		_, err := Decode(flipped, ecc.ReedSolomon{})
		assert.ErrorIs(t, err, ErrHeaderChecksum, "header bit %d", i)
	}
}

func TestStartPatternNotValidated(t *testing.T) {
	bits, err := Encode([]byte("landmark only"), 1, ecc.ReedSolomon{})
	require.NoError(t, err)
	// the start pattern is a framing landmark; garbling it must not reject
	for i := 0; i < layout.StartBits; i++ {
		bits[i] = i%3 == 0
	}
	got, err := Decode(bits, ecc.ReedSolomon{})
	require.NoError(t, err)
	assert.Equal(t, "landmark only", got)
}

func TestDecodeRejections(t *testing.T) {
	test := []struct {
		name    string
		bits    func(t *testing.T) []bool
		wantErr error
	}{
		{"too_short", func(t *testing.T) []bool {
			return make([]bool, layout.TotalBits()-1)
		}, ErrInsufficientBits},
		{"all_zero", func(t *testing.T) []bool {
			// zero header passes its checksum but declares a zero payload
			return make([]bool, layout.TotalBits())
		}, ErrPayloadLength},
		{"mismatched_redundancy_length", func(t *testing.T) []bool {
			bits, err := Encode([]byte("victim"), 1, ecc.Parity{})
			require.NoError(t, err)
			// declare the level-0 redundancy length under level 1, with a
			// recomputed checksum so only the length check can catch it
			patched := []byte{Version, 1, 0, 6, 0, 8}
			setHeaderByte(bits, 5, patched[5])
			setHeaderByte(bits, 6, checksum(patched))
			return bits
		}, ErrPayloadLength},
		{"corrupt_codeword", func(t *testing.T) []bool {
			bits, err := Encode([]byte("victim"), 0, ecc.Parity{})
			require.NoError(t, err)
			// flatten the whole codeword section to zero bits
			for i := layout.StartBits + layout.HeaderBits; i < len(bits); i++ {
				bits[i] = false
			}
			return bits
		}, ErrRedundancy},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.bits(t), ecc.Parity{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecodeLossyText(t *testing.T) {
	bits, err := Encode([]byte{0x68, 0x69, 0xC3}, 0, ecc.Parity{})
	require.NoError(t, err)
	got, err := Decode(bits, ecc.Parity{})
	require.NoError(t, err)
	// the dangling UTF-8 lead byte is substituted, never fatal
	assert.Equal(t, "hi�", got)
}
