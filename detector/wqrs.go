package detector

import (
	"fmt"
	"math"

	"github.com/roduit/EE-512-Biomedical-signal-processing/filter"
	"github.com/roduit/EE-512-Biomedical-signal-processing/mwa"
	"gonum.org/v1/gonum/floats"
)

// wqrsMargin is the crossing margin relative to the largest curve length.
const wqrsMargin = 1e-9

// wqrs implements the length-transform detector from W. Zong, G. B. Moody and
// D. Jiang, "A Robust Open-source Algorithm to Detect Onset and Duration of
// QRS Complexes", Computers in Cardiology 2003.
func (d *Detectors) wqrs(ecg []float64) ([]int, error) {
	lp, err := filter.ButterHz(2, filter.Lowpass, d.fs, 15)
	if err != nil {
		return nil, fmt.Errorf("lowpass: %w", err)
	}
	y := lp.Apply(ecg)

	length := d.lengthTransform(y, int(math.Ceil(0.13*d.fs)))

	// Threshold is the ten second trailing mean of the curve length.
	u, err := mwa.Convolve.Apply(length, d.samples(10))
	if err != nil {
		return nil, fmt.Errorf("threshold: %w", err)
	}

	// A flat transform equals its own mean up to FFT round-off.
	margin := wqrsMargin * floats.Max(length)

	refractory := 0.35 * d.fs
	peaks := []int{}
	for i, v := range length {
		if len(peaks) > 0 && float64(i) <= float64(peaks[len(peaks)-1])+refractory {
			continue
		}
		if v > u[i]+margin {
			peaks = append(peaks, i)
		}
	}
	return peaks, nil
}

// lengthTransform returns the curve length of y over the w samples preceding
// each index. The first w outputs repeat the first full-window value.
func (d *Detectors) lengthTransform(y []float64, w int) []float64 {
	out := make([]float64, len(y))
	if len(y) <= w {
		return out
	}

	dt2 := 1 / (d.fs * d.fs)
	seg := make([]float64, len(y)-1)
	for k := range seg {
		dy := y[k+1] - y[k]
		seg[k] = math.Sqrt(dt2 + dy*dy)
	}
	for i := w; i < len(y); i++ {
		out[i] = floats.Sum(seg[i-w : i-1])
	}
	for i := range w {
		out[i] = out[w]
	}
	return out
}
