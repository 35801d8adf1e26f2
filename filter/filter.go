package filter

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
)

// Coefficients is a rational transfer function B(z)/A(z), highest power of z
// first.
type Coefficients struct {
	B []float64
	A []float64
}

// Apply filters x causally in direct form II transposed with zero initial
// state. x is not modified.
func (c Coefficients) Apply(x []float64) []float64 {
	an := c.A
	if len(an) == 0 {
		an = []float64{1}
	}
	n := max(len(c.B), len(an))
	b := make([]float64, n)
	a := make([]float64, n)
	copy(b, c.B)
	copy(a, an)
	if a0 := a[0]; a0 != 1 && a0 != 0 {
		floats.Scale(1/a0, b)
		floats.Scale(1/a0, a)
	}

	// z[n-1] stays zero and simplifies the update.
	z := make([]float64, n)
	y := make([]float64, len(x))
	for i, xi := range x {
		yi := b[0]*xi + z[0]
		for k := 1; k < n; k++ {
			z[k-1] = b[k]*xi + z[k] - a[k]*yi
		}
		y[i] = yi
	}
	return y
}

// Response evaluates H(e^{jω}) at the normalised angular frequency omega,
// where π is Nyquist.
func (c Coefficients) Response(omega float64) complex128 {
	return evalPoly(c.B, omega) / evalPoly(c.A, omega)
}

func evalPoly(coef []float64, omega float64) complex128 {
	var sum complex128
	for k, v := range coef {
		sum += complex(v, 0) * cmplx.Exp(complex(0, -omega*float64(k)))
	}
	return sum
}

// FIR filters x with the taps b.
func FIR(b, x []float64) []float64 {
	return Coefficients{B: b, A: []float64{1}}.Apply(x)
}

// Boxcar returns n normalised rectangular taps. n below one yields nil.
func Boxcar(n int) []float64 {
	if n < 1 {
		return nil
	}
	taps := window.Rectangular(n)
	floats.Scale(1/float64(n), taps)
	return taps
}

// Diff returns x[i+1]-x[i]; the result is one sample shorter than x.
func Diff(x []float64) []float64 {
	if len(x) < 2 {
		return []float64{}
	}
	out := make([]float64, len(x)-1)
	for i := range out {
		out[i] = x[i+1] - x[i]
	}
	return out
}

// Abs returns the element-wise absolute value of x.
func Abs(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Abs(v)
	}
	return out
}
