// Package gf256 implements arithmetic over GF(2^8) with the reducing
// polynomial x^8+x^4+x^3+x^2+1 (0x11d), the field used by QR-style
// Reed-Solomon codes.
package gf256

const poly = 0x11d

var (
	expTbl [512]byte
	logTbl [256]byte
)

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		expTbl[i] = byte(x)
		logTbl[x] = byte(i)
		x <<= 1
		if x&0x100 != 0 {
			x ^= poly
		}
	}
	// duplicate so Mul can index exp without a mod
	for i := 255; i < 512; i++ {
		expTbl[i] = expTbl[i-255]
	}
}

// Add returns a+b (= a-b) in the field.
func Add(a, b byte) byte {
	return a ^ b
}

// Mul returns a*b in the field.
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return expTbl[int(logTbl[a])+int(logTbl[b])]
}

// Div returns a/b in the field. Division by zero panics.
func Div(a, b byte) byte {
	if b == 0 {
		panic("gf256: division by zero")
	}
	if a == 0 {
		return 0
	}
	return expTbl[int(logTbl[a])+255-int(logTbl[b])]
}

// Inv returns the multiplicative inverse of a. Zero has no inverse and panics.
func Inv(a byte) byte {
	if a == 0 {
		panic("gf256: zero has no inverse")
	}
	return expTbl[255-int(logTbl[a])]
}

// Exp returns the generator raised to the n-th power.
func Exp(n int) byte {
	n %= 255
	if n < 0 {
		n += 255
	}
	return expTbl[n]
}

// Log returns the discrete log of a. Log of zero panics.
func Log(a byte) int {
	if a == 0 {
		panic("gf256: log of zero")
	}
	return int(logTbl[a])
}

// PolyMul multiplies two polynomials with coefficients in the field,
// highest-degree coefficient first.
func PolyMul(p, q []byte) []byte {
	out := make([]byte, len(p)+len(q)-1)
	for i, pc := range p {
		if pc == 0 {
			continue
		}
		for j, qc := range q {
			out[i+j] ^= Mul(pc, qc)
		}
	}
	return out
}

// PolyEval evaluates a polynomial (highest-degree first) at x using Horner's
// method.
func PolyEval(p []byte, x byte) byte {
	var y byte
	for _, c := range p {
		y = Mul(y, x) ^ c
	}
	return y
}
