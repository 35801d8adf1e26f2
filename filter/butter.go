// Package filter designs Butterworth filters and applies them causally.
//
// Design follows the classic analog route: Butterworth prototype poles, a
// low-pass/high-pass/band-pass/band-stop frequency transformation and the
// bilinear transform with pre-warped band edges. Cutoffs are normalised to the
// Nyquist frequency, so 1.0 is fs/2.
package filter

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

var (
	// ErrInvalidOrder is returned for filter orders below one.
	ErrInvalidOrder = errors.New("filter: order must be positive")
	// ErrInvalidCutoff is returned for missing, unordered or out of range edges.
	ErrInvalidCutoff = errors.New("filter: cutoff must lie strictly between 0 and Nyquist")
)

// Kind is the filter response type.
type Kind int

const (
	Lowpass Kind = iota
	Highpass
	Bandpass
	Bandstop
)

func (k Kind) String() string {
	switch k {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	case Bandstop:
		return "bandstop"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) edges() int {
	if k == Bandpass || k == Bandstop {
		return 2
	}
	return 1
}

// bilinear transform sample rate; cutoffs are normalised so that fs = 2.
const fs2 = 4.0

// Butter designs a digital Butterworth filter of the given order. wn holds one
// normalised cutoff for low/high-pass kinds and two increasing edges for band
// kinds. Band kinds produce a filter of order 2*order.
func Butter(order int, kind Kind, wn ...float64) (Coefficients, error) {
	if order < 1 {
		return Coefficients{}, fmt.Errorf("%w: got %d", ErrInvalidOrder, order)
	}
	if len(wn) != kind.edges() {
		return Coefficients{}, fmt.Errorf("%w: %v needs %d edges, got %d", ErrInvalidCutoff, kind, kind.edges(), len(wn))
	}
	for _, w := range wn {
		if !(w > 0 && w < 1) {
			return Coefficients{}, fmt.Errorf("%w: got %v", ErrInvalidCutoff, w)
		}
	}
	if len(wn) == 2 && wn[0] >= wn[1] {
		return Coefficients{}, fmt.Errorf("%w: edges %v not increasing", ErrInvalidCutoff, wn)
	}

	warped := make([]float64, len(wn))
	for i, w := range wn {
		warped[i] = fs2 * math.Tan(math.Pi*w/2)
	}

	z, p, k := prototype(order)
	switch kind {
	case Lowpass:
		z, p, k = toLowpass(z, p, k, warped[0])
	case Highpass:
		z, p, k = toHighpass(z, p, k, warped[0])
	case Bandpass:
		z, p, k = toBandpass(z, p, k, math.Sqrt(warped[0]*warped[1]), warped[1]-warped[0])
	case Bandstop:
		z, p, k = toBandstop(z, p, k, math.Sqrt(warped[0]*warped[1]), warped[1]-warped[0])
	default:
		return Coefficients{}, fmt.Errorf("filter: unsupported kind %v", kind)
	}
	z, p, k = bilinear(z, p, k)

	b := poly(z)
	for i := range b {
		b[i] *= k
	}
	return Coefficients{B: b, A: poly(p)}, nil
}

// ButterHz is Butter with cutoffs given in Hz for sampling frequency fs.
func ButterHz(order int, kind Kind, fs float64, hz ...float64) (Coefficients, error) {
	if !(fs > 0) {
		return Coefficients{}, fmt.Errorf("%w: sampling frequency %v", ErrInvalidCutoff, fs)
	}
	wn := make([]float64, len(hz))
	for i, f := range hz {
		wn[i] = 2 * f / fs
	}
	return Butter(order, kind, wn...)
}

// prototype returns the analog Butterworth low-pass poles with unit cutoff.
func prototype(n int) (z, p []complex128, k float64) {
	p = make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		p = append(p, -cmplx.Exp(complex(0, math.Pi*float64(m)/float64(2*n))))
	}
	return nil, p, 1
}

func toLowpass(z, p []complex128, k, wo float64) ([]complex128, []complex128, float64) {
	degree := len(p) - len(z)
	zl := scaleRoots(z, complex(wo, 0))
	pl := scaleRoots(p, complex(wo, 0))
	return zl, pl, k * math.Pow(wo, float64(degree))
}

func toHighpass(z, p []complex128, k, wo float64) ([]complex128, []complex128, float64) {
	degree := len(p) - len(z)
	zh := invertRoots(z, complex(wo, 0))
	ph := invertRoots(p, complex(wo, 0))
	zh = append(zh, make([]complex128, degree)...)
	return zh, ph, k * real(prodNeg(z)/prodNeg(p))
}

func toBandpass(z, p []complex128, k, wo, bw float64) ([]complex128, []complex128, float64) {
	degree := len(p) - len(z)
	half := complex(bw/2, 0)
	zb := splitRoots(scaleRoots(z, half), wo)
	pb := splitRoots(scaleRoots(p, half), wo)
	zb = append(zb, make([]complex128, degree)...)
	return zb, pb, k * math.Pow(bw, float64(degree))
}

func toBandstop(z, p []complex128, k, wo, bw float64) ([]complex128, []complex128, float64) {
	degree := len(p) - len(z)
	half := complex(bw/2, 0)
	zs := splitRoots(invertRoots(z, half), wo)
	ps := splitRoots(invertRoots(p, half), wo)
	for range degree {
		zs = append(zs, complex(0, wo))
	}
	for range degree {
		zs = append(zs, complex(0, -wo))
	}
	return zs, ps, k * real(prodNeg(z)/prodNeg(p))
}

func bilinear(z, p []complex128, k float64) ([]complex128, []complex128, float64) {
	degree := len(p) - len(z)
	f := complex(fs2, 0)

	zd := make([]complex128, 0, len(p))
	num := complex(1, 0)
	for _, r := range z {
		zd = append(zd, (f+r)/(f-r))
		num *= f - r
	}
	for range degree {
		zd = append(zd, -1)
	}

	pd := make([]complex128, 0, len(p))
	den := complex(1, 0)
	for _, r := range p {
		pd = append(pd, (f+r)/(f-r))
		den *= f - r
	}
	return zd, pd, k * real(num/den)
}

func scaleRoots(r []complex128, s complex128) []complex128 {
	out := make([]complex128, len(r))
	for i, v := range r {
		out[i] = v * s
	}
	return out
}

func invertRoots(r []complex128, s complex128) []complex128 {
	out := make([]complex128, len(r))
	for i, v := range r {
		out[i] = s / v
	}
	return out
}

// splitRoots maps every root r to r ± sqrt(r² - wo²).
func splitRoots(r []complex128, wo float64) []complex128 {
	w2 := complex(wo*wo, 0)
	out := make([]complex128, 0, 2*len(r))
	for _, v := range r {
		out = append(out, v+cmplx.Sqrt(v*v-w2))
	}
	for _, v := range r {
		out = append(out, v-cmplx.Sqrt(v*v-w2))
	}
	return out
}

func prodNeg(r []complex128) complex128 {
	out := complex(1, 0)
	for _, v := range r {
		out *= -v
	}
	return out
}

// poly expands prod(x - r) into real coefficients, highest power first.
// Roots come in conjugate pairs, so imaginary residue is dropped.
func poly(roots []complex128) []float64 {
	c := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(c)+1)
		copy(next, c)
		for i := 1; i < len(next); i++ {
			next[i] -= r * c[i-1]
		}
		c = next
	}
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}
	return out
}
