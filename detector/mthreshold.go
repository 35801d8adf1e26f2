package detector

import "gonum.org/v1/gonum/floats"

// mThreshold is the steep-slope threshold M shared by Christov and Engzee.
// For the first five seconds M is 0.6 of the running maximum. Afterwards each
// beat contributes 0.6 of the maximum seen in the 200 ms following it to a
// five-entry history; M is the history mean, decaying linearly from 1.0 to
// 0.6 of it between 200 ms and 1.2 s after the beat, and held at 0.6 later.
type mThreshold struct {
	x      []float64
	learn  float64
	ms200  int
	ms1200 int
	slope  []float64
	mm     *RingFloat

	m      float64
	newM5  float64
	runMax float64
}

func newMThreshold(x []float64, fs float64, ms200, ms1200 int) *mThreshold {
	return &mThreshold{
		x:      x,
		learn:  5 * fs,
		ms200:  ms200,
		ms1200: ms1200,
		slope:  floats.Span(make([]float64, ms1200-ms200), 1.0, 0.6),
		mm:     NewRingFloat(5),
	}
}

// beat must be called for every accepted detection.
func (t *mThreshold) beat() {
	t.newM5 = 0
}

// update advances M to sample i. last is the latest detection, or -1.
func (t *mThreshold) update(i, last int) float64 {
	switch {
	case float64(i) < t.learn:
		if i == 0 || t.x[i] > t.runMax {
			t.runMax = t.x[i]
		}
		t.m = 0.6 * t.runMax
		t.mm.Push(t.m)

	case last < 0:
		// no beat yet, M holds

	case i < last+t.ms200:
		if i > last {
			t.newM5 = 0.6 * floats.Max(t.x[last:i])
		}
		if prev := t.mm.Last(); t.newM5 > 1.5*prev {
			t.newM5 = 1.1 * prev
		}

	case i == last+t.ms200:
		if t.newM5 == 0 {
			t.newM5 = t.mm.Last()
		}
		t.mm.Push(t.newM5)
		t.m = t.mm.Mean()

	case i < last+t.ms1200:
		t.m = t.mm.Mean() * t.slope[i-(last+t.ms200)]

	case i > last+t.ms1200:
		t.m = 0.6 * t.mm.Mean()
	}
	return t.m
}

// mean of the stored post-beat maxima.
func (t *mThreshold) mean() float64 {
	return t.mm.Mean()
}
