package ecc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesFor(t *testing.T) {
	assert.Equal(t, 8, BytesFor(0))
	assert.Equal(t, 16, BytesFor(1))
	assert.Equal(t, 32, BytesFor(2))
	assert.Equal(t, 64, BytesFor(3))
}

func TestParityAppend(t *testing.T) {
	payload := []byte{0x12, 0x34, 0x56}
	red := Parity{}.Append(payload, 4)
	require.Len(t, red, 4)
	for i, got := range red {
		var want byte
		for _, b := range payload {
			want ^= byte(int(b) * (i + 1))
		}
		assert.Equal(t, want, got, "redundancy byte %d", i)
	}
}

func TestParityValidate(t *testing.T) {
	test := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"plain_text", []byte("hello ring code, plenty of structure"), nil},
		{"empty_codeword", nil, ErrEmptyData},
		// padding behind a short payload is not the scheme's concern
		{"mostly_zero_padding", append([]byte("a"), bytes.Repeat([]byte{0x00}, 148)...), nil},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			var p Parity
			codeword := append(append([]byte{}, tt.data...), p.Append(tt.data, 4)...)
			data, corrected, err := p.Validate(codeword, 4)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Zero(t, corrected)
			assert.Equal(t, tt.data, data)
		})
	}
}

func TestParityScreen(t *testing.T) {
	test := []struct {
		name    string
		payload []byte
		wantErr error
	}{
		{"plain_text", []byte("hello ring code, plenty of structure"), nil},
		{"single_byte", []byte("a"), nil},
		{"all_zero", bytes.Repeat([]byte{0x00}, 40), ErrCorrupted},
		{"all_ff", bytes.Repeat([]byte{0xFF}, 40), ErrCorrupted},
		{"exactly_80pct_flat", append(bytes.Repeat([]byte{0x00}, 32), bytes.Repeat([]byte{0x42}, 8)...), ErrCorrupted},
		{"just_below_80pct", append(bytes.Repeat([]byte{0x00}, 31), bytes.Repeat([]byte{0x42}, 9)...), nil},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			err := Parity{}.Screen(tt.payload)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestReedSolomonRoundTrip(t *testing.T) {
	var rs ReedSolomon
	for _, nsym := range []int{8, 16, 32, 64} {
		payload := make([]byte, 93)
		for i := range payload {
			payload[i] = byte(i*7 + 3)
		}
		red := rs.Append(payload, nsym)
		require.Len(t, red, nsym)

		codeword := append(append([]byte{}, payload...), red...)
		data, corrected, err := rs.Validate(codeword, nsym)
		require.NoError(t, err, "nsym=%d", nsym)
		assert.Zero(t, corrected)
		assert.Equal(t, payload, data)
	}
}

func TestReedSolomonCorrects(t *testing.T) {
	var rs ReedSolomon
	const nsym = 16
	payload := []byte("the quick brown fox jumps over the lazy dog")
	codeword := append(append([]byte{}, payload...), rs.Append(payload, nsym)...)

	for _, errs := range []int{1, 4, 8} {
		corrupted := append([]byte{}, codeword...)
		for i := 0; i < errs; i++ {
			corrupted[i*5] ^= 0xA5
		}
		data, corrected, err := rs.Validate(corrupted, nsym)
		require.NoError(t, err, "errs=%d", errs)
		assert.Equal(t, errs, corrected)
		assert.Equal(t, payload, data)
	}
}

func TestReedSolomonRejectsBeyondBudget(t *testing.T) {
	var rs ReedSolomon
	const nsym = 8
	payload := []byte("short message")
	codeword := append(append([]byte{}, payload...), rs.Append(payload, nsym)...)

	// 4 symbol errors exceed the nsym/2 correction radius
	corrupted := append([]byte{}, codeword...)
	for i := 0; i < 8; i++ {
		corrupted[i] ^= byte(0x11 * (i + 1))
	}
	data, _, err := rs.Validate(corrupted, nsym)
	if err == nil {
		// a repair beyond the radius must at least not be silently wrong
		assert.NotEqual(t, payload, data)
	} else {
		assert.ErrorIs(t, err, ErrCorrupted)
	}
}

func TestReedSolomonScreenIsNoOp(t *testing.T) {
	// syndrome validation already proved the codeword, flat payloads included
	assert.NoError(t, ReedSolomon{}.Screen(bytes.Repeat([]byte{0x00}, 149)))
}

func TestSchemeNames(t *testing.T) {
	assert.Equal(t, "parity", Parity{}.Name())
	assert.Equal(t, "reed-solomon", ReedSolomon{}.Name())
}
