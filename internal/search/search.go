// Package search runs the decode hypothesis sweep: every combination of
// preprocessing variant, polarity inversion, threshold bias, threshold mode
// and angular anchor shift is tried against the capture until one frame
// validates. Hypotheses are independent reads of shared immutable state, so
// the sweep shards across goroutines with an atomic first-win flag.
package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/yyyoichi/ringcode/internal/ecc"
	"github.com/yyyoichi/ringcode/internal/frame"
	"github.com/yyyoichi/ringcode/internal/gray"
	"github.com/yyyoichi/ringcode/internal/layout"
	"github.com/yyyoichi/ringcode/internal/sampler"
)

// ErrExhausted reports that every hypothesis was tried (or the sweep was cut
// short by a cap or cancellation) without a validating frame.
var ErrExhausted = errors.New("search: no hypothesis validated")

// Hypothesis is one candidate parameter combination. It is generated, tried
// and discarded; nothing is persisted across calls.
type Hypothesis struct {
	Variant int
	Invert  bool
	Bias    float64
	Mode    sampler.Mode
	Shift   int
}

// biases are tried nearest-to-nominal first.
var biases = [...]float64{1.00, 0.95, 1.05, 0.90, 1.10}

// shiftStep is the coarse granularity of the angular anchor sweep, in ring-0
// sectors.
const shiftStep = 4

// Hypotheses enumerates the full cross-product for the given number of
// preprocessing variants, in the fixed order the sequential sweep visits
// them. The enumeration is independent of the execution strategy so it can be
// tested on its own.
func Hypotheses(variants int) []Hypothesis {
	var hyps []Hypothesis
	for v := 0; v < variants; v++ {
		for _, invert := range [...]bool{false, true} {
			for _, bias := range biases {
				for _, mode := range [...]sampler.Mode{sampler.ModePercentile, sampler.ModeHistogram} {
					for shift := 0; shift < layout.Sectors(0); shift += shiftStep {
						hyps = append(hyps, Hypothesis{
							Variant: v,
							Invert:  invert,
							Bias:    bias,
							Mode:    mode,
							Shift:   shift,
						})
					}
				}
			}
		}
	}
	return hyps
}

// Options configure one sweep.
type Options struct {
	Scheme     ecc.Scheme
	Sequential bool
	// Limit caps the number of hypotheses tried; 0 means unlimited.
	Limit int
	// Progress, when set, is called once per preprocessing variant index as
	// the sweep reaches it. Observational only.
	Progress func(variant int)
}

// Run sweeps the hypothesis space over the preprocessing variants and returns
// the first validating text.
func Run(ctx context.Context, planes []*gray.Plane, opts Options) (string, error) {
	if opts.Sequential {
		return runSequential(ctx, planes, opts)
	}
	return runParallel(ctx, planes, opts)
}

// runSequential preserves the exact enumeration order, so the first
// validating hypothesis in that order always wins.
func runSequential(ctx context.Context, planes []*gray.Plane, opts Options) (string, error) {
	var tried int
	lastVariant := -1
	for _, h := range Hypotheses(len(planes)) {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", ErrExhausted, err)
		}
		if opts.Limit > 0 && tried >= opts.Limit {
			return "", fmt.Errorf("%w: hypothesis limit %d reached", ErrExhausted, opts.Limit)
		}
		if h.Variant != lastVariant {
			lastVariant = h.Variant
			if opts.Progress != nil {
				opts.Progress(h.Variant)
			}
		}
		tried++
		if text, ok := try(planes[h.Variant], h, opts.Scheme); ok {
			return text, nil
		}
	}
	return "", ErrExhausted
}

// runParallel shards the sweep by preprocessing variant, one goroutine per
// plane. Workers race to flip the found flag; the single CompareAndSwap
// winner publishes its text and the rest stop at their next check.
func runParallel(ctx context.Context, planes []*gray.Plane, opts Options) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		found  atomic.Bool
		tried  atomic.Int64
		result = make(chan string, 1)
		wg     sync.WaitGroup
	)
	wg.Add(len(planes))
	for v := range planes {
		go func(variant int) {
			defer wg.Done()
			if opts.Progress != nil {
				opts.Progress(variant)
			}
			for _, h := range variantHypotheses(variant) {
				if found.Load() || ctx.Err() != nil {
					return
				}
				if opts.Limit > 0 && tried.Add(1) > int64(opts.Limit) {
					return
				}
				text, ok := try(planes[variant], h, opts.Scheme)
				if !ok {
					continue
				}
				if found.CompareAndSwap(false, true) {
					result <- text
					cancel()
				}
				return
			}
		}(v)
	}
	wg.Wait()

	select {
	case text := <-result:
		return text, nil
	default:
	}
	// the result channel is empty here, so no worker invoked cancel; any
	// context error belongs to the caller and is reported as the cause
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExhausted, err)
	}
	if opts.Limit > 0 && tried.Load() > int64(opts.Limit) {
		return "", fmt.Errorf("%w: hypothesis limit %d reached", ErrExhausted, opts.Limit)
	}
	return "", ErrExhausted
}

func variantHypotheses(variant int) []Hypothesis {
	all := Hypotheses(variant + 1)
	per := len(all) / (variant + 1)
	return all[variant*per:]
}

// try samples every ring under the hypothesis, concatenates the ring
// bitstreams in layout order and attempts a frame decode. Any rejection
// simply disqualifies the hypothesis.
func try(p *gray.Plane, h Hypothesis, scheme ecc.Scheme) (string, bool) {
	size := p.Width
	if p.Height < size {
		size = p.Height
	}
	cx := float64(p.Width-1) / 2
	cy := float64(p.Height-1) / 2

	bits := make([]bool, 0, layout.TotalBits())
	for ring := 0; ring < layout.Rings(); ring++ {
		intensities := sampler.SampleRing(
			p, cx, cy,
			layout.MidRadius(ring, size),
			layout.Sectors(ring),
			layout.ScaleShift(h.Shift, ring),
		)
		bits = append(bits, sampler.Threshold(intensities, h.Mode, h.Bias, h.Invert)...)
	}
	text, err := frame.Decode(bits, scheme)
	if err != nil {
		return "", false
	}
	return text, true
}
