// Package layout defines the fixed ring-code geometry shared by the encoder
// and decoder. All values are process-wide constants; the functions here are
// pure so both directions see byte-identical capacities and pixel radii.
package layout

import "math"

// Sector counts per ring, innermost first. Outer rings carry more sectors in
// proportion to their circumference. The sum is the total bit capacity.
var sectors = [...]int{184, 200, 216, 232, 248, 264}

const (
	// StartBits is the length of the alternating framing landmark.
	StartBits = 32
	// HeaderBits is the length of the 7-byte frame header.
	HeaderBits = 56

	// QuietFrac is the blank margin around the code, as a fraction of the
	// canvas half-size.
	QuietFrac = 0.05
	// InnerFrac and OuterFrac bound the ring band within the usable radius.
	InnerFrac = 0.30
	OuterFrac = 0.95

	// ArcFillFrac is the angular share of a sector painted by a 1-bit.
	ArcFillFrac = 0.80
	// RadialFillFrac is the radial share of a ring band painted by a 1-bit.
	RadialFillFrac = 0.80
)

// Rings returns the number of rings.
func Rings() int {
	return len(sectors)
}

// Sectors returns the sector count of the given ring.
func Sectors(ring int) int {
	return sectors[ring]
}

// BitOffset returns the index of the given ring's first bit within the
// linear bitstream; rings are concatenated innermost first.
func BitOffset(ring int) int {
	var n int
	for _, s := range sectors[:ring] {
		n += s
	}
	return n
}

// TotalBits returns the total bit capacity of the code.
func TotalBits() int {
	var n int
	for _, s := range sectors {
		n += s
	}
	return n
}

// DataBits returns the capacity left for header-framed data, i.e. the total
// capacity minus start pattern and header.
func DataBits() int {
	return TotalBits() - StartBits - HeaderBits
}

// usableRadius is the half-size minus the quiet zone.
func usableRadius(size int) float64 {
	return float64(size) / 2 * (1 - QuietFrac)
}

// BandWidth returns the radial thickness of one ring for a square canvas of
// the given size.
func BandWidth(size int) float64 {
	r := usableRadius(size)
	return r * (OuterFrac - InnerFrac) / float64(len(sectors))
}

// MidRadius returns the radius of the mid-line of the given ring for a square
// canvas of the given size. The encoder paints and the decoder samples on the
// same line.
func MidRadius(ring, size int) float64 {
	r := usableRadius(size)
	return r*InnerFrac + BandWidth(size)*(float64(ring)+0.5)
}

// RingAt returns the ring whose band contains the given radius, or -1.
func RingAt(radius float64, size int) int {
	r := usableRadius(size)
	inner := r * InnerFrac
	band := BandWidth(size)
	ring := int(math.Floor((radius - inner) / band))
	if ring < 0 || ring >= len(sectors) {
		return -1
	}
	return ring
}

// StartPattern returns the fixed alternating landmark bits, starting with 1.
func StartPattern() []bool {
	bits := make([]bool, StartBits)
	for i := range bits {
		bits[i] = i%2 == 0
	}
	return bits
}

// ScaleShift maps an anchor shift expressed in ring-0 sectors onto another
// ring, preserving the angular offset across differing sector counts.
func ScaleShift(shift, ring int) int {
	n := sectors[ring]
	s := int(math.Round(float64(shift) * float64(n) / float64(sectors[0])))
	return ((s % n) + n) % n
}
