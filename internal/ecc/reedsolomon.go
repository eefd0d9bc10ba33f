package ecc

import (
	"github.com/yyyoichi/ringcode/internal/gf256"
)

// ReedSolomon is a systematic RS(len+nsym, len) code over GF(256) with
// generator roots alpha^0..alpha^(nsym-1). It corrects up to nsym/2 symbol
// errors and reports how many it repaired.
type ReedSolomon struct{}

func (ReedSolomon) Name() string { return "reed-solomon" }

// Screen is a no-op; the syndrome check in Validate already proves the
// codeword consistent, padding and all.
func (ReedSolomon) Screen([]byte) error { return nil }

func (ReedSolomon) Append(payload []byte, nsym int) []byte {
	gen := generator(nsym)
	// polynomial long division of payload*x^nsym by the generator;
	// the remainder is the parity section
	rem := make([]byte, nsym)
	for _, b := range payload {
		factor := b ^ rem[0]
		copy(rem, rem[1:])
		rem[nsym-1] = 0
		if factor == 0 {
			continue
		}
		for i := 0; i < nsym; i++ {
			rem[i] ^= gf256.Mul(gen[i+1], factor)
		}
	}
	return rem
}

func (ReedSolomon) Validate(codeword []byte, nsym int) ([]byte, int, error) {
	if len(codeword) <= nsym {
		return nil, 0, ErrEmptyData
	}
	synd, clean := syndromes(codeword, nsym)
	if clean {
		data := make([]byte, len(codeword)-nsym)
		copy(data, codeword)
		return data, 0, nil
	}

	locator := berlekampMassey(synd)
	positions := chienSearch(locator, len(codeword))
	if positions == nil {
		return nil, 0, ErrCorrupted
	}
	fixed := forney(codeword, synd, locator, positions)

	// re-check; Forney on a codeword beyond the correction radius can
	// produce a plausible-looking but wrong repair
	if _, ok := syndromes(fixed, nsym); !ok {
		return nil, 0, ErrCorrupted
	}
	return fixed[:len(fixed)-nsym], len(positions), nil
}

// generator returns prod_{i=0}^{nsym-1} (x - alpha^i), highest degree first.
func generator(nsym int) []byte {
	g := []byte{1}
	for i := 0; i < nsym; i++ {
		g = gf256.PolyMul(g, []byte{1, gf256.Exp(i)})
	}
	return g
}

// syndromes evaluates the received polynomial at each generator root.
func syndromes(codeword []byte, nsym int) ([]byte, bool) {
	synd := make([]byte, nsym)
	clean := true
	for i := range synd {
		synd[i] = gf256.PolyEval(codeword, gf256.Exp(i))
		if synd[i] != 0 {
			clean = false
		}
	}
	return synd, clean
}

// berlekampMassey computes the error locator polynomial, lowest degree first.
func berlekampMassey(synd []byte) []byte {
	c := []byte{1} // current connection polynomial
	b := []byte{1} // copy from the last length change
	var (
		l     int      // current register length
		m     = 1      // steps since the last length change
		delta byte = 1 // discrepancy at the last length change
	)
	for n := range synd {
		d := synd[n]
		for i := 1; i <= l && i < len(c); i++ {
			d ^= gf256.Mul(c[i], synd[n-i])
		}
		switch {
		case d == 0:
			m++
		case 2*l <= n:
			t := make([]byte, len(c))
			copy(t, c)
			c = addPoly(c, shiftPoly(scalePoly(b, gf256.Div(d, delta)), m))
			l = n + 1 - l
			b = t
			delta = d
			m = 1
		default:
			c = addPoly(c, shiftPoly(scalePoly(b, gf256.Div(d, delta)), m))
			m++
		}
	}
	return c
}

// shiftPoly multiplies a lowest-degree-first polynomial by x^m.
func shiftPoly(p []byte, m int) []byte {
	out := make([]byte, len(p)+m)
	copy(out[m:], p)
	return out
}

func scalePoly(p []byte, c byte) []byte {
	out := make([]byte, len(p))
	for i, v := range p {
		out[i] = gf256.Mul(v, c)
	}
	return out
}

func addPoly(p, q []byte) []byte {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := make([]byte, n)
	copy(out, p)
	for i, v := range q {
		out[i] ^= v
	}
	return out
}

// chienSearch finds error positions (indexes into the codeword) from the
// locator polynomial, or nil if the locator degree disagrees with the number
// of roots found.
func chienSearch(locator []byte, n int) []int {
	deg := len(locator) - 1
	for deg > 0 && locator[deg] == 0 {
		deg--
	}
	var positions []int
	for pos := 0; pos < n; pos++ {
		// error at codeword index pos corresponds to X = alpha^(n-1-pos)
		xinv := gf256.Exp(-(n - 1 - pos))
		var sum byte
		for i := deg; i >= 0; i-- {
			sum = gf256.Mul(sum, xinv) ^ locator[i]
		}
		if sum == 0 {
			positions = append(positions, pos)
		}
	}
	if len(positions) != deg {
		return nil
	}
	return positions
}

// forney computes error magnitudes and returns a repaired copy of the
// codeword.
func forney(codeword, synd, locator []byte, positions []int) []byte {
	n := len(codeword)
	// error evaluator omega = synd * locator mod x^len(synd), low degree first
	omega := make([]byte, len(synd))
	for i := range omega {
		var acc byte
		for j := 0; j <= i && j < len(locator); j++ {
			acc ^= gf256.Mul(locator[j], synd[i-j])
		}
		omega[i] = acc
	}
	// formal derivative of the locator: odd-degree terms only
	deriv := make([]byte, 0, len(locator)/2)
	for i := 1; i < len(locator); i += 2 {
		deriv = append(deriv, locator[i])
	}

	fixed := make([]byte, n)
	copy(fixed, codeword)
	for _, pos := range positions {
		x := gf256.Exp(n - 1 - pos)
		xinv := gf256.Inv(x)
		// evaluate omega at X^-1
		var num byte
		for i := len(omega) - 1; i >= 0; i-- {
			num = gf256.Mul(num, xinv) ^ omega[i]
		}
		// evaluate locator' at X^-1; derivative terms are even powers
		var den byte
		x2 := gf256.Mul(xinv, xinv)
		for i := len(deriv) - 1; i >= 0; i-- {
			den = gf256.Mul(den, x2) ^ deriv[i]
		}
		if den == 0 {
			return fixed
		}
		// first consistency root is alpha^0, so the magnitude carries a
		// factor of X
		fixed[pos] ^= gf256.Mul(x, gf256.Div(num, den))
	}
	return fixed
}
