// Package mwa computes trailing moving-window averages.
//
// Three interchangeable methods produce the same output: a prefix-sum
// implementation, an FFT convolution and the naive re-averaging loop. For
// indices smaller than the window only the available prefix is averaged.
package mwa

import (
	"errors"
	"fmt"

	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrUnknownMethod is returned when a method name is not recognised.
	ErrUnknownMethod = errors.New("mwa: unknown moving average method")
	// ErrInvalidWindow is returned for window sizes below one sample.
	ErrInvalidWindow = errors.New("mwa: window must be at least one sample")
)

// Method selects a moving-average implementation.
type Method int

const (
	// Cumulative uses prefix sums, O(N).
	Cumulative Method = iota
	// Convolve uses an FFT convolution with a rectangular kernel.
	Convolve
	// Original re-averages every window, O(N·W).
	Original
)

var names = map[Method]string{
	Cumulative: "cumulative",
	Convolve:   "convolve",
	Original:   "original",
}

func (m Method) String() string {
	if s, ok := names[m]; ok {
		return s
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Methods returns every method in declaration order.
func Methods() []Method {
	return []Method{Cumulative, Convolve, Original}
}

// ParseMethod resolves a method by name.
func ParseMethod(name string) (Method, error) {
	for _, m := range Methods() {
		if names[m] == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// Average resolves name and applies the method.
func Average(name string, x []float64, w int) ([]float64, error) {
	m, err := ParseMethod(name)
	if err != nil {
		return nil, err
	}
	return m.Apply(x, w)
}

// Apply returns the trailing mean of x over w samples. The input is not
// modified. A window larger than x averages the available prefix everywhere.
func (m Method) Apply(x []float64, w int) ([]float64, error) {
	if w < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, w)
	}
	if len(x) == 0 {
		return []float64{}, nil
	}
	switch m {
	case Cumulative:
		return cumulative(x, w), nil
	case Convolve:
		return convolve(x, w), nil
	case Original:
		return original(x, w), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, m)
}

func cumulative(x []float64, w int) []float64 {
	cs := floats.CumSum(make([]float64, len(x)), x)
	out := make([]float64, len(x))
	for i := range cs {
		if i < w {
			out[i] = cs[i] / float64(i+1)
			continue
		}
		out[i] = (cs[i] - cs[i-w]) / float64(w)
	}
	return out
}

func convolve(x []float64, w int) []float64 {
	n := len(x)
	size := dsputils.NextPowerOf2(n + w - 1)
	sig := dsputils.ZeroPad(dsputils.ToComplex(x), size)
	kernel := dsputils.ZeroPad(dsputils.ToComplex(window.Rectangular(w)), size)
	sums := fft.Convolve(sig, kernel)

	out := make([]float64, n)
	for i := range out {
		out[i] = real(sums[i]) / float64(min(i+1, w))
	}
	return out
}

func original(x []float64, w int) []float64 {
	out := make([]float64, len(x))
	out[0] = x[0]
	for i := 1; i < len(x); i++ {
		out[i] = stat.Mean(x[max(0, i+1-w):i+1], nil)
	}
	return out
}
