package search

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yyyoichi/ringcode/internal/ecc"
	"github.com/yyyoichi/ringcode/internal/gray"
	"github.com/yyyoichi/ringcode/internal/layout"
	"github.com/yyyoichi/ringcode/internal/sampler"
)

func whitePlanes(n, size int) []*gray.Plane {
	planes := make([]*gray.Plane, n)
	for i := range planes {
		p := &gray.Plane{Width: size, Height: size, Pix: make([]float64, size*size)}
		for j := range p.Pix {
			p.Pix[j] = 255
		}
		planes[i] = p
	}
	return planes
}

func TestHypothesesEnumeration(t *testing.T) {
	hyps := Hypotheses(5)
	shifts := (layout.Sectors(0) + shiftStep - 1) / shiftStep
	require.Len(t, hyps, 5*2*len(biases)*2*shifts)

	// the sweep starts at the nominal hypothesis
	assert.Equal(t, Hypothesis{Variant: 0, Invert: false, Bias: 1.00, Mode: sampler.ModePercentile, Shift: 0}, hyps[0])
	assert.Equal(t, 4, hyps[1].Shift)

	// order: variant, inversion, bias, mode, shift - slowest to fastest
	perVariant := len(hyps) / 5
	for v := 0; v < 5; v++ {
		for _, h := range hyps[v*perVariant : (v+1)*perVariant] {
			assert.Equal(t, v, h.Variant)
		}
	}
	perInvert := perVariant / 2
	assert.False(t, hyps[perInvert-1].Invert)
	assert.True(t, hyps[perInvert].Invert)
}

func TestVariantHypotheses(t *testing.T) {
	all := Hypotheses(5)
	per := len(all) / 5
	for v := 0; v < 5; v++ {
		assert.Equal(t, all[v*per:(v+1)*per], variantHypotheses(v), "variant %d", v)
	}
}

func TestRunExhaustsOnBlankCapture(t *testing.T) {
	for _, sequential := range []bool{true, false} {
		planes := whitePlanes(2, 48)
		var mu sync.Mutex
		var seen []int
		_, err := Run(context.Background(), planes, Options{
			Scheme:     ecc.Parity{},
			Sequential: sequential,
			Progress: func(variant int) {
				mu.Lock()
				seen = append(seen, variant)
				mu.Unlock()
			},
		})
		assert.ErrorIs(t, err, ErrExhausted, "sequential=%v", sequential)
		assert.Len(t, seen, 2, "one progress call per variant, sequential=%v", sequential)
	}
}

func TestRunHonorsLimit(t *testing.T) {
	planes := whitePlanes(1, 48)
	_, err := Run(context.Background(), planes, Options{
		Scheme:     ecc.Parity{},
		Sequential: true,
		Limit:      3,
	})
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestRunHonorsContext(t *testing.T) {
	// both execution strategies report the caller's cancellation as the cause
	for _, sequential := range []bool{true, false} {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		planes := whitePlanes(1, 48)
		_, err := Run(ctx, planes, Options{Scheme: ecc.Parity{}, Sequential: sequential})
		assert.ErrorIs(t, err, ErrExhausted, "sequential=%v", sequential)
		assert.ErrorIs(t, err, context.Canceled, "sequential=%v", sequential)
	}
}
