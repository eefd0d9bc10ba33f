// Package ringcode encodes short text into a fixed-capacity circular bit
// pattern of concentric annular sectors, and recovers text from a raster
// capture of such a pattern. The wire format is a 32-bit alternating start
// pattern, a checksum-guarded 7-byte header and a codeword of padded payload
// plus redundancy, 1344 bits in total.
package ringcode

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/yyyoichi/ringcode/internal/ecc"
	"github.com/yyyoichi/ringcode/internal/frame"
	"github.com/yyyoichi/ringcode/internal/gray"
	"github.com/yyyoichi/ringcode/internal/search"
)

var (
	ErrPayloadTooLarge = errors.New("ringcode: payload too large for ecc level")
	ErrSearchExhausted = errors.New("ringcode: no hypothesis produced a valid frame")
	ErrInvalidImage    = errors.New("ringcode: image is empty or too small")
	ErrLevel           = errors.New("ringcode: ecc level out of range")
)

// Level selects the redundancy byte budget: 8, 16, 32 or 64 bytes for levels
// 0 through 3.
type Level int

const (
	Level0 Level = iota
	Level1
	Level2
	Level3
)

// MaxPayloadBytes returns the payload budget of the level.
func (l Level) MaxPayloadBytes() (int, error) {
	if l < Level0 || l > Level3 {
		return 0, ErrLevel
	}
	return frame.MaxPayloadBytes(int(l)), nil
}

// Encode frames text at the given ecc level with default options.
// This is a convenience function that creates a RingCode instance and calls
// its Encode method.
func Encode(text string, level Level, opts ...Option) ([]bool, error) {
	rc, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return rc.Encode(text, level)
}

// Decode recovers text from a capture with default options.
// This is a convenience function that creates a RingCode instance and calls
// its Decode method.
func Decode(ctx context.Context, src image.Image, progress func(variant int), opts ...Option) (string, error) {
	rc, err := New(opts...)
	if err != nil {
		return "", err
	}
	return rc.Decode(ctx, src, progress)
}

// RingCode holds the codec configuration. The zero configuration uses
// Reed-Solomon redundancy and a parallel hypothesis sweep.
type RingCode struct {
	scheme     ecc.Scheme
	sequential bool
	limit      int
	maxSide    int
}

// New initializes a ring code codec. For default values, refer to the init
// function.
func New(opts ...Option) (*RingCode, error) {
	rc := new(RingCode)
	if err := rc.init(opts...); err != nil {
		return nil, err
	}
	return rc, nil
}

func (rc *RingCode) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(rc); err != nil {
			return err
		}
	}
	if rc.scheme == nil {
		rc.scheme = ecc.ReedSolomon{}
	}
	if rc.maxSide == 0 {
		rc.maxSide = 1024
	}
	return nil
}

// Encode frames text at the given ecc level and returns the full bit
// sequence in layout order. Identical inputs always produce identical bits.
func (rc *RingCode) Encode(text string, level Level) ([]bool, error) {
	if level < Level0 || level > Level3 {
		return nil, ErrLevel
	}
	bits, err := frame.Encode([]byte(text), int(level), rc.scheme)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPayloadTooLarge, err)
	}
	return bits, nil
}

// Decode recovers text from a capture of a rendered ring code.
//
// Process:
//  1. Builds up to 5 grayscale preprocessing variants of the capture.
//  2. For each hypothesis (variant, inversion, bias, threshold mode, anchor
//     shift), samples every ring and thresholds intensities into bits.
//  3. Attempts a frame decode; the first validating hypothesis wins.
//
// progress, when non-nil, is called once per preprocessing variant index as
// the sweep reaches it. It never affects control flow. Exhaustion of the full
// sweep returns ErrSearchExhausted.
func (rc *RingCode) Decode(ctx context.Context, src image.Image, progress func(variant int)) (string, error) {
	if src == nil {
		return "", ErrInvalidImage
	}
	bounds := src.Bounds()
	if bounds.Dx() < 8 || bounds.Dy() < 8 {
		return "", ErrInvalidImage
	}
	planes := gray.Variants(src, rc.maxSide)
	text, err := search.Run(ctx, planes, search.Options{
		Scheme:     rc.scheme,
		Sequential: rc.sequential,
		Limit:      rc.limit,
		Progress:   progress,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSearchExhausted, err)
	}
	return text, nil
}
