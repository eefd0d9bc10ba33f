// Package gray builds the grayscale candidate surfaces the decoder samples.
// One capture yields a fixed, ordered set of variants; the search visits them
// in this order so results are reproducible for identical pixels.
package gray

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Plane is a single-channel intensity surface with values in [0, 255].
type Plane struct {
	Width, Height int
	Pix           []float64
}

// At returns the intensity at (x, y) and whether the point is in bounds.
func (p *Plane) At(x, y int) (float64, bool) {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return 0, false
	}
	return p.Pix[y*p.Width+x], true
}

// Variants converts a capture into the ordered preprocessing candidates:
// luminance, histogram-equalized, min-max normalized, and gamma 0.7 / 1.3
// applied to the equalized surface. When maxSide > 0 and the capture exceeds
// it, the source is downscaled first so the sweep stays bounded.
func Variants(src image.Image, maxSide int) []*Plane {
	src = shrink(src, maxSide)
	luma := Luminance(src)
	eq := Equalize(luma)
	return []*Plane{
		luma,
		eq,
		Normalize(luma),
		Gamma(eq, 0.7),
		Gamma(eq, 1.3),
	}
}

// Luminance converts a capture to a weighted grayscale plane.
func Luminance(src image.Image) *Plane {
	bounds := src.Bounds()
	p := &Plane{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
	p.Pix = make([]float64, p.Width*p.Height)
	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r32, g32, b32, _ := src.At(x, y).RGBA()
			r := float64(r32 >> 8)
			g := float64(g32 >> 8)
			b := float64(b32 >> 8)
			p.Pix[idx] = 0.299*r + 0.587*g + 0.114*b
			idx++
		}
	}
	return p
}

// Equalize spreads the intensity histogram over the full range via the
// cumulative distribution.
func Equalize(p *Plane) *Plane {
	var hist [256]int
	for _, v := range p.Pix {
		hist[bin(v)]++
	}
	var cdf [256]float64
	total := float64(len(p.Pix))
	acc := 0
	for i, n := range hist {
		acc += n
		cdf[i] = float64(acc) / total
	}
	out := clone(p)
	for i, v := range p.Pix {
		out.Pix[i] = cdf[bin(v)] * 255
	}
	return out
}

// Normalize stretches intensities linearly so the darkest pixel maps to 0 and
// the brightest to 255. A flat plane is returned unchanged.
func Normalize(p *Plane) *Plane {
	min, max := p.Pix[0], p.Pix[0]
	for _, v := range p.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	out := clone(p)
	if max == min {
		copy(out.Pix, p.Pix)
		return out
	}
	for i, v := range p.Pix {
		// multiply before dividing so exact inputs stay exact
		out.Pix[i] = (v - min) * 255 / (max - min)
	}
	return out
}

// Gamma applies a power-law adjustment with the given exponent.
func Gamma(p *Plane, g float64) *Plane {
	out := clone(p)
	for i, v := range p.Pix {
		out.Pix[i] = math.Pow(v/255, g) * 255
	}
	return out
}

func clone(p *Plane) *Plane {
	return &Plane{
		Width:  p.Width,
		Height: p.Height,
		Pix:    make([]float64, len(p.Pix)),
	}
}

func bin(v float64) int {
	i := int(v)
	if i < 0 {
		return 0
	}
	if i > 255 {
		return 255
	}
	return i
}

func shrink(src image.Image, maxSide int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return src
	}
	scale := float64(maxSide) / float64(w)
	if h > w {
		scale = float64(maxSide) / float64(h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
