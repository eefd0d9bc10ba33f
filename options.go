package ringcode

import (
	"errors"

	"github.com/yyyoichi/ringcode/internal/ecc"
)

type Option func(*RingCode) error

// WithReedSolomon selects the Reed-Solomon redundancy scheme (the default).
// Redundancy bytes become parity symbols of an RS code over GF(256); decode
// corrects up to half the level's redundancy budget in symbol errors.
func WithReedSolomon() Option {
	return func(rc *RingCode) error {
		rc.scheme = ecc.ReedSolomon{}
		return nil
	}
}

// WithParityRedundancy selects the legacy weighted-XOR redundancy format for
// wire compatibility with encoders that predate the Reed-Solomon scheme. It
// detects gross corruption only and cannot repair any bit.
func WithParityRedundancy() Option {
	return func(rc *RingCode) error {
		rc.scheme = ecc.Parity{}
		return nil
	}
}

// WithSequentialSearch makes decode sweep hypotheses one at a time in the
// fixed enumeration order, so the first validating hypothesis in that order
// always wins. The default parallel sweep accepts whichever validating
// hypothesis finishes first.
func WithSequentialSearch() Option {
	return func(rc *RingCode) error {
		rc.sequential = true
		return nil
	}
}

// WithHypothesisLimit caps how many hypotheses decode may try before giving
// up with ErrSearchExhausted. Zero means unlimited.
func WithHypothesisLimit(n int) Option {
	return func(rc *RingCode) error {
		if n < 0 {
			return errors.New("ringcode: hypothesis limit must not be negative")
		}
		rc.limit = n
		return nil
	}
}

// WithMaxSampleSize bounds the longer side, in pixels, that a capture is
// downscaled to before sampling. Larger captures cost time without helping
// the sweep. The default is 1024.
func WithMaxSampleSize(px int) Option {
	return func(rc *RingCode) error {
		if px < 16 {
			return errors.New("ringcode: max sample size must be at least 16")
		}
		rc.maxSide = px
		return nil
	}
}
