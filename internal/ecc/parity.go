package ecc

// Parity is the legacy redundancy format: byte i of the redundancy section is
// the XOR over all payload bytes, each multiplied by (i+1) and masked to 8
// bits. It cannot repair anything; Screen only rejects grossly corrupt
// captures where most of the declared payload collapsed to 0x00 or 0xFF.
type Parity struct{}

func (Parity) Name() string { return "parity" }

func (Parity) Append(payload []byte, nsym int) []byte {
	red := make([]byte, nsym)
	for i := range red {
		var acc byte
		for _, b := range payload {
			acc ^= byte(int(b) * (i + 1))
		}
		red[i] = acc
	}
	return red
}

func (Parity) Validate(codeword []byte, nsym int) ([]byte, int, error) {
	if len(codeword) <= nsym {
		return nil, 0, ErrEmptyData
	}
	return codeword[:len(codeword)-nsym], 0, nil
}

// Screen rejects a payload that mostly collapsed to 0x00 or 0xFF. It runs on
// the declared payload only; the zero padding behind a short payload must
// never count as corruption.
func (Parity) Screen(payload []byte) error {
	flat := 0
	for _, b := range payload {
		if b == 0x00 || b == 0xFF {
			flat++
		}
	}
	if len(payload) > 0 && flat*5 >= len(payload)*4 {
		return ErrCorrupted
	}
	return nil
}
