package ringcode

import (
	"image"
	"math"

	"github.com/yyyoichi/ringcode/internal/layout"
)

// Render paints the bit sequence as concentric annular sectors on a square
// raster canvas. A 1-bit fills the central ArcFillFrac of its sector's
// angular span at the ring's mid-radius; a 0-bit leaves background. The
// raster and vector renderers share radii, angles and fill rule.
func Render(bits []bool, size int, style Style) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float64(size-1) / 2
	band := layout.BandWidth(size) * layout.RadialFillFrac

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			if bitAt(bits, math.Hypot(dx, dy), math.Atan2(dy, dx), size, band) {
				img.SetRGBA(x, y, style.Foreground)
			} else {
				img.SetRGBA(x, y, style.Background)
			}
		}
	}
	return img
}

// bitAt reports whether the polar point lies inside a painted wedge.
func bitAt(bits []bool, radius, angle float64, size int, band float64) bool {
	ring := layout.RingAt(radius, size)
	if ring < 0 {
		return false
	}
	if math.Abs(radius-layout.MidRadius(ring, size)) > band/2 {
		return false
	}

	sectors := layout.Sectors(ring)
	angleStep := 2 * math.Pi / float64(sectors)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	sector := int(angle / angleStep)
	if sector >= sectors {
		sector = sectors - 1
	}
	// within-sector position; the wedge is centered with an equal inset on
	// each side
	u := angle/angleStep - float64(sector)
	if math.Abs(u-0.5) > layout.ArcFillFrac/2 {
		return false
	}

	idx := layout.BitOffset(ring) + sector
	return idx < len(bits) && bits[idx]
}
