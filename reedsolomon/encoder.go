// Package reedsolomon computes Reed-Solomon error correction codewords over
// the QR code field GF(256) with primitive polynomial x^8+x^4+x^3+x^2+1.
package reedsolomon

const primitive = 0x011D

var (
	expTable [256]byte
	logTable [256]int
)

func init() {
	x := 1
	for i := 0; i < 256; i++ {
		expTable[i] = byte(x)
		x <<= 1
		if x >= 256 {
			x ^= primitive
		}
	}
	for i := 0; i < 255; i++ {
		logTable[expTable[i]] = i
	}
}

// Multiply returns the product of a and b in GF(256).
func Multiply(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[(logTable[a]+logTable[b])%255]
}

// Exp returns alpha raised to the power n.
func Exp(n int) byte {
	return expTable[n%255]
}

// Encoder computes error correction codewords. Generator polynomials are
// cached per degree; an Encoder is not safe for concurrent use.
type Encoder struct {
	generators map[int][]byte
}

// NewEncoder creates a new Encoder.
func NewEncoder() *Encoder {
	return &Encoder{generators: make(map[int][]byte)}
}

// generator returns the coefficients of prod(x - alpha^i) for i in
// [0, degree), highest degree first.
func (e *Encoder) generator(degree int) []byte {
	if g, ok := e.generators[degree]; ok {
		return g
	}
	g := []byte{1}
	for d := 0; d < degree; d++ {
		next := make([]byte, len(g)+1)
		for i, c := range g {
			next[i] ^= c
			next[i+1] ^= Multiply(c, Exp(d))
		}
		g = next
	}
	e.generators[degree] = g
	return g
}

// Encode returns the numEC error correction codewords of data.
func (e *Encoder) Encode(data []byte, numEC int) []byte {
	if numEC <= 0 {
		panic("reedsolomon: no error correction bytes")
	}
	g := e.generator(numEC)
	rem := make([]byte, numEC)
	for _, d := range data {
		factor := d ^ rem[0]
		copy(rem, rem[1:])
		rem[numEC-1] = 0
		for i := 0; i < numEC; i++ {
			rem[i] ^= Multiply(g[i+1], factor)
		}
	}
	return rem
}
