package ringcode

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/yyyoichi/ringcode/internal/layout"
)

// RenderSVG emits the bit sequence as scalable vector markup, geometrically
// equivalent to Render: same radii, same angular insets, same fill rule.
// Each 1-bit becomes a closed four-segment path: outer arc, radial segment,
// inner arc, radial segment.
func RenderSVG(bits []bool, size int, style Style) string {
	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		size, size, size, size)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`, size, size, hexColor(style.Background))

	center := float64(size-1) / 2
	halfBand := layout.BandWidth(size) * layout.RadialFillFrac / 2

	for ring := 0; ring < layout.Rings(); ring++ {
		mid := layout.MidRadius(ring, size)
		inner, outer := mid-halfBand, mid+halfBand
		sectors := layout.Sectors(ring)
		angleStep := 2 * math.Pi / float64(sectors)
		inset := (1 - layout.ArcFillFrac) / 2 * angleStep
		offset := layout.BitOffset(ring)

		for s := 0; s < sectors; s++ {
			if offset+s >= len(bits) || !bits[offset+s] {
				continue
			}
			a0 := float64(s)*angleStep + inset
			a1 := float64(s+1)*angleStep - inset
			b.WriteString(wedgePath(center, inner, outer, a0, a1, style.Foreground))
		}
	}
	b.WriteString(`</svg>`)
	return b.String()
}

// wedgePath builds one annular wedge: move to the outer start point, arc to
// the outer end, radial segment inward, arc back along the inner radius,
// close. The large-arc flag is set when the swept angle exceeds pi.
func wedgePath(center, inner, outer, a0, a1 float64, fill color.RGBA) string {
	largeArc := 0
	if a1-a0 > math.Pi {
		largeArc = 1
	}
	sin0, cos0 := math.Sincos(a0)
	sin1, cos1 := math.Sincos(a1)
	return fmt.Sprintf(
		`<path d="M %s %s A %s %s 0 %d 1 %s %s L %s %s A %s %s 0 %d 0 %s %s Z" fill="%s"/>`,
		coord(center+outer*cos0), coord(center+outer*sin0),
		coord(outer), coord(outer), largeArc,
		coord(center+outer*cos1), coord(center+outer*sin1),
		coord(center+inner*cos1), coord(center+inner*sin1),
		coord(inner), coord(inner), largeArc,
		coord(center+inner*cos0), coord(center+inner*sin0),
		hexColor(fill),
	)
}

func coord(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
