// Package sampler reads per-sector intensities off a grayscale capture along
// a ring's mid-line and turns them into bits with one of two threshold
// strategies.
package sampler

import (
	"math"

	"github.com/yyyoichi/ringcode/internal/gray"
)

const (
	// AngleKeepFrac is the central share of a sector's angular span that is
	// sampled; edge pixels bleed into neighboring sectors and are discarded.
	AngleKeepFrac = 0.60
	// angular sub-samples per sector
	subSamples = 8
	// RadiusTap is the half-width, in pixels, of the radial averaging window
	// around the ring's mid-radius.
	RadiusTap = 2

	// background-like default for sectors with no in-bounds tap
	maxIntensity = 255
)

// SampleRing returns one intensity per sector, lower meaning more likely
// foreground. shift rotates the angular anchor by whole sectors, so sector s
// is read from the capture position of sector s+shift.
func SampleRing(p *gray.Plane, cx, cy, radius float64, sectors, shift int) []float64 {
	angleStep := 2 * math.Pi / float64(sectors)
	out := make([]float64, sectors)
	for s := 0; s < sectors; s++ {
		center := (float64(s+shift) + 0.5) * angleStep
		var sum float64
		var taps int
		for k := 0; k < subSamples; k++ {
			frac := (float64(k)+0.5)/subSamples - 0.5
			theta := center + frac*AngleKeepFrac*angleStep
			sin, cos := math.Sincos(theta)
			for dr := -RadiusTap; dr <= RadiusTap; dr++ {
				r := radius + float64(dr)
				x := int(math.Round(cx + r*cos))
				y := int(math.Round(cy + r*sin))
				if v, ok := p.At(x, y); ok {
					sum += v
					taps++
				}
			}
		}
		if taps == 0 {
			out[s] = maxIntensity
			continue
		}
		out[s] = sum / float64(taps)
	}
	return out
}
