package sampler

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mode selects the strategy that splits sector intensities into bits.
type Mode int

const (
	// ModePercentile thresholds at the midpoint of the 30th and 70th
	// percentile intensities.
	ModePercentile Mode = iota
	// ModeHistogram thresholds at the maximum between-class variance split
	// of an 8-bit intensity histogram.
	ModeHistogram
)

func (m Mode) String() string {
	if m == ModeHistogram {
		return "histogram"
	}
	return "percentile"
}

// Threshold converts intensities into bits: intensity strictly below the
// bias-scaled threshold reads as 1. invert flips the result, covering
// captures whose polarity is ambiguous after preprocessing.
func Threshold(intensities []float64, mode Mode, bias float64, invert bool) []bool {
	var t float64
	switch mode {
	case ModeHistogram:
		t = otsu(intensities)
	default:
		t = percentileSplit(intensities)
	}
	t *= bias

	bits := make([]bool, len(intensities))
	for i, v := range intensities {
		bits[i] = (v < t) != invert
	}
	return bits
}

func percentileSplit(intensities []float64) float64 {
	sorted := make([]float64, len(intensities))
	copy(sorted, intensities)
	sort.Float64s(sorted)
	p30 := stat.Quantile(0.30, stat.Empirical, sorted, nil)
	p70 := stat.Quantile(0.70, stat.Empirical, sorted, nil)
	return (p30 + p70) / 2
}

// otsu finds the split maximizing between-class variance over a 256-bin
// histogram of the intensities.
func otsu(intensities []float64) float64 {
	var hist [256]int
	for _, v := range intensities {
		i := int(v)
		if i < 0 {
			i = 0
		}
		if i > 255 {
			i = 255
		}
		hist[i]++
	}
	total := len(intensities)
	var sumAll float64
	for i, n := range hist {
		sumAll += float64(i) * float64(n)
	}

	var (
		sumBg, wBg float64
		best       float64
		threshold  float64
	)
	for i, n := range hist {
		wBg += float64(n)
		if wBg == 0 {
			continue
		}
		wFg := float64(total) - wBg
		if wFg == 0 {
			break
		}
		sumBg += float64(i) * float64(n)
		mBg := sumBg / wBg
		mFg := (sumAll - sumBg) / wFg
		between := wBg * wFg * (mBg - mFg) * (mBg - mFg)
		if between > best {
			best = between
			// split sits above bin i so the boundary bin stays foreground
			// under the strict below-threshold rule
			threshold = float64(i) + 0.5
		}
	}
	return threshold
}
