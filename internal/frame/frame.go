// Package frame implements the ring-code wire format: a fixed alternating
// start pattern, a checksum-guarded 7-byte header, and a codeword of padded
// payload plus redundancy, flattened MSB-first to exactly the layout capacity.
package frame

import (
	"errors"
	"strings"

	"github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/ringcode/internal/bitconv"
	"github.com/yyyoichi/ringcode/internal/ecc"
	"github.com/yyyoichi/ringcode/internal/layout"
)

// Version is the wire format version carried in every header.
const Version = 0x01

const headerBytes = layout.HeaderBits / 8

var (
	// ErrPayloadTooLarge rejects an encode whose text exceeds the level's
	// payload budget.
	ErrPayloadTooLarge = errors.New("frame: payload exceeds level capacity")

	// Decode-side rejections. Each disqualifies one hypothesis during the
	// search; none of them is fatal to the caller.
	ErrHeaderChecksum   = errors.New("frame: header checksum mismatch")
	ErrPayloadLength    = errors.New("frame: invalid payload length")
	ErrInsufficientBits = errors.New("frame: insufficient bits")
	ErrRedundancy       = errors.New("frame: redundancy validation failed")
)

// MaxPayloadBytes returns the payload budget for an ecc level.
func MaxPayloadBytes(level int) int {
	return (layout.DataBits() - ecc.BytesFor(level)*8) / 8
}

// Encode frames the payload at the given ecc level and returns the full bit
// sequence, zero-padded to the layout capacity. Identical inputs always
// produce an identical bitstream.
func Encode(payload []byte, level int, scheme ecc.Scheme) ([]bool, error) {
	nsym := ecc.BytesFor(level)
	maxPayload := MaxPayloadBytes(level)
	if len(payload) > maxPayload {
		return nil, ErrPayloadTooLarge
	}

	padded := make([]byte, maxPayload)
	copy(padded, payload)
	red := scheme.Append(padded, nsym)

	header := [headerBytes]byte{
		Version,
		byte(level),
		byte(len(payload) >> 8), byte(len(payload)),
		byte(nsym >> 8), byte(nsym),
	}
	header[6] = checksum(header[:6])

	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, bit := range layout.StartPattern() {
		w.WriteBool(bit)
	}
	for _, b := range header {
		w.Write8(0, 8, b)
	}
	for _, b := range padded {
		w.Write8(0, 8, b)
	}
	for _, b := range red {
		w.Write8(0, 8, b)
	}

	r := bitstream.NewBitReader(w.Data(), 0, 0)
	r.SetBits(w.Bits())
	bits := make([]bool, layout.TotalBits())
	for i := 0; i < w.Bits() && i < len(bits); i++ {
		bits[i], _ = r.ReadBitAt(i)
	}
	return bits, nil
}

// Decode recovers text from a candidate bit sequence. The start pattern is a
// framing landmark only and is not inspected. Every rejection is an expected
// outcome during the hypothesis search.
func Decode(bits []bool, scheme ecc.Scheme) (string, error) {
	if len(bits) < layout.TotalBits() {
		return "", ErrInsufficientBits
	}
	header := bitconv.Bytes(bits[layout.StartBits : layout.StartBits+layout.HeaderBits])
	if checksum(header[:6]) != header[6] {
		return "", ErrHeaderChecksum
	}

	level := int(header[1])
	payloadLen := int(header[2])<<8 | int(header[3])
	redLen := int(header[4])<<8 | int(header[5])
	if level >= ecc.Levels || payloadLen <= 0 || payloadLen > MaxPayloadBytes(level) ||
		redLen != ecc.BytesFor(level) {
		return "", ErrPayloadLength
	}

	codewordBits := (MaxPayloadBytes(level) + ecc.BytesFor(level)) * 8
	start := layout.StartBits + layout.HeaderBits
	if start+codewordBits > len(bits) {
		return "", ErrInsufficientBits
	}
	codeword := bitconv.Bytes(bits[start : start+codewordBits])

	data, _, err := scheme.Validate(codeword, redLen)
	if err != nil {
		return "", ErrRedundancy
	}
	payload := data[:payloadLen]
	if err := scheme.Screen(payload); err != nil {
		return "", ErrRedundancy
	}
	// corrupted bytes in an otherwise valid frame must not abort it
	return strings.ToValidUTF8(string(payload), "�"), nil
}

// checksum is the sum of the header bytes mod 256.
func checksum(b []byte) byte {
	var sum byte
	for _, v := range b {
		sum += v
	}
	return sum
}
