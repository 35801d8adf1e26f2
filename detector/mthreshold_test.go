package detector

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestMThreshold_PostBeatWindow(t *testing.T) {
	const (
		fs     = 100.0
		beat   = 600
		ms200  = 20
		ms1200 = 120
	)
	tests := []struct {
		name  string
		spike float64
		hist  float64 // entry pushed when the 200 ms window closes
		want  float64 // M at that moment
	}{
		{name: "flat window falls back to last M", spike: 0, hist: 0.6, want: 0.6},
		{name: "moderate maximum kept", spike: 0.8, hist: 0.48, want: 0.576},
		{name: "steep maximum clamped", spike: 2.0, hist: 0.66, want: 0.612},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := make([]float64, 800)
			x[10] = 1
			x[beat+5] = tt.spike

			mt := newMThreshold(x, fs, ms200, ms1200)
			for i := range beat {
				mt.update(i, -1)
			}
			mt.beat()

			m := make(map[int]float64)
			for i := beat; i < len(x); i++ {
				m[i] = mt.update(i, beat)
				if i == beat+ms200 {
					if got := mt.mm.Last(); !scalar.EqualWithinAbs(got, tt.hist, 1e-12) {
						t.Errorf("history entry = %v, want %v", got, tt.hist)
					}
				}
			}

			checks := []struct {
				i    int
				want float64
			}{
				{beat + ms200 - 1, 0.6},
				{beat + ms200, tt.want},
				{beat + ms200 + 50, tt.want * (1 - 0.4*50/99)},
				{beat + ms1200 + 1, 0.6 * tt.want},
			}
			for _, c := range checks {
				if !scalar.EqualWithinAbs(m[c.i], c.want, 1e-12) {
					t.Errorf("M[%d] = %v, want %v", c.i, m[c.i], c.want)
				}
			}
		})
	}
}

func TestMThreshold_LearningPhase(t *testing.T) {
	x := []float64{0.5, 0.2, 1.0, 0.3}
	mt := newMThreshold(x, 100, 20, 120)

	want := []float64{0.3, 0.3, 0.6, 0.6}
	for i := range x {
		if got := mt.update(i, -1); !scalar.EqualWithinAbs(got, want[i], 1e-12) {
			t.Errorf("M[%d] = %v, want %v", i, got, want[i])
		}
	}
}
