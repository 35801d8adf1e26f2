package mwa

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func randomSignal(n int, seed uint64) []float64 {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	x := make([]float64, n)
	for i := range x {
		x[i] = r.Float64() + 0.05*math.Sin(float64(i)/7)
	}
	return x
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name    string
		want    Method
		wantErr bool
	}{
		{name: "cumulative", want: Cumulative},
		{name: "convolve", want: Convolve},
		{name: "original", want: Original},
		{name: "Cumulative", wantErr: true},
		{name: "", wantErr: true},
		{name: "median", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMethod(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownMethod) {
					t.Fatalf("ParseMethod(%q) error = %v, want ErrUnknownMethod", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMethod(%q): %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.name, got, tt.want)
			}
			if got.String() != tt.name {
				t.Errorf("String() = %q, want %q", got.String(), tt.name)
			}
		})
	}
}

func TestAverage_UnknownName(t *testing.T) {
	_, err := Average("bogus", []float64{1, 2, 3}, 2)
	if !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("Average() error = %v, want ErrUnknownMethod", err)
	}
}

func TestApply_PrefixRule(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	want := []float64{1, 1.5, 2, 3, 4}

	for _, m := range Methods() {
		t.Run(m.String(), func(t *testing.T) {
			got, err := m.Apply(x, 3)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("len = %d, want %d", len(got), len(want))
			}
			for i := range want {
				if !scalar.EqualWithinAbsOrRel(got[i], want[i], 1e-12, 1e-12) {
					t.Errorf("out[%d] = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestApply_Identity(t *testing.T) {
	x := randomSignal(257, 1)

	for _, m := range Methods() {
		t.Run(m.String(), func(t *testing.T) {
			got, err := m.Apply(x, 1)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			for i := range x {
				if !scalar.EqualWithinAbsOrRel(got[i], x[i], 1e-12, 1e-12) {
					t.Fatalf("out[%d] = %v, want %v", i, got[i], x[i])
				}
			}
		})
	}
}

func TestApply_MethodsAgree(t *testing.T) {
	tests := []struct {
		name string
		n, w int
	}{
		{name: "short window", n: 500, w: 3},
		{name: "qrs window", n: 3600, w: 54},
		{name: "beat window", n: 3600, w: 216},
		{name: "window equals length", n: 128, w: 128},
		{name: "window exceeds length", n: 100, w: 3600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := randomSignal(tt.n, uint64(tt.n*31+tt.w))
			ref, err := Cumulative.Apply(x, tt.w)
			if err != nil {
				t.Fatalf("cumulative: %v", err)
			}
			for _, m := range []Method{Convolve, Original} {
				got, err := m.Apply(x, tt.w)
				if err != nil {
					t.Fatalf("%v: %v", m, err)
				}
				for i := range ref {
					if !scalar.EqualWithinAbsOrRel(got[i], ref[i], 1e-9, 1e-9) {
						t.Fatalf("%v out[%d] = %v, cumulative = %v", m, i, got[i], ref[i])
					}
				}
			}
		})
	}
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	x := randomSignal(64, 7)
	orig := append([]float64(nil), x...)

	for _, m := range Methods() {
		if _, err := m.Apply(x, 5); err != nil {
			t.Fatalf("%v: %v", m, err)
		}
	}
	for i := range x {
		if x[i] != orig[i] {
			t.Fatalf("input modified at %d", i)
		}
	}
}

func TestApply_InvalidWindow(t *testing.T) {
	for _, w := range []int{0, -3} {
		_, err := Cumulative.Apply([]float64{1, 2}, w)
		if !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("Apply(w=%d) error = %v, want ErrInvalidWindow", w, err)
		}
	}
}

func TestApply_Empty(t *testing.T) {
	for _, m := range Methods() {
		got, err := m.Apply(nil, 4)
		if err != nil {
			t.Fatalf("%v: %v", m, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("%v: got %v, want empty non-nil slice", m, got)
		}
	}
}

func TestApply_UnknownMethodValue(t *testing.T) {
	_, err := Method(42).Apply([]float64{1}, 1)
	if !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("error = %v, want ErrUnknownMethod", err)
	}
}

func TestApply_MixedAmplitudes(t *testing.T) {
	// Bursts six orders of magnitude above a millivolt-scale floor.
	x := randomSignal(4096, 11)
	for i := range x {
		if (i/256)%2 == 0 {
			x[i] *= 1e6
		} else {
			x[i] *= 1e-3
		}
	}
	peak := floats.Max(x)

	ref, err := Original.Apply(x, 300)
	if err != nil {
		t.Fatalf("original: %v", err)
	}
	for _, m := range []Method{Cumulative, Convolve} {
		got, err := m.Apply(x, 300)
		if err != nil {
			t.Fatalf("%v: %v", m, err)
		}
		for i := range ref {
			if !scalar.EqualWithinAbs(got[i], ref[i], 1e-9*peak) {
				t.Fatalf("%v out[%d] = %v, original = %v", m, i, got[i], ref[i])
			}
		}
	}
}
