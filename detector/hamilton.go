package detector

import (
	"fmt"

	"github.com/roduit/EE-512-Biomedical-signal-processing/filter"
	"go.uber.org/zap"
)

// hamilton implements P. S. Hamilton, "Open Source ECG Analysis Software
// Documentation", E.P. Limited, 2002.
func (d *Detectors) hamilton(ecg []float64) ([]int, error) {
	bp, err := filter.ButterHz(1, filter.Bandpass, d.fs, 8, 16)
	if err != nil {
		return nil, fmt.Errorf("bandpass: %w", err)
	}
	diff := filter.Abs(filter.Diff(bp.Apply(ecg)))

	taps := d.samples(0.08)
	ma := filter.FIR(filter.Boxcar(taps), diff)
	zeroPrefix(ma, 2*taps)

	refractory := 0.3 * d.fs
	minGap := d.samples(0.36)

	var (
		noise     = NewRingFloat(8)
		sig       = NewRingFloat(8)
		rr        = NewRingFloat(8)
		rrAve     int
		th        float64
		peaks     []int
		indexes   []int
		recovered int
	)
	// Seeded with sample 0 so the first refractory test has a reference.
	qrs := []int{0}

	for peak := range Peaks(ma) {
		peaks = append(peaks, peak)

		if ma[peak] > th && float64(peak-qrs[len(qrs)-1]) > refractory {
			prev := qrs[len(qrs)-1]
			qrs = append(qrs, peak)
			indexes = append(indexes, len(peaks)-1)
			sig.Push(ma[peak])

			if rrAve != 0 && float64(peak-prev) > 1.5*float64(rrAve) {
				lo := indexes[len(indexes)-2] + 1
				hi := indexes[len(indexes)-1]
				if missed, ok := searchBack(ma, peaks[lo:hi], prev, peak, minGap, 0.5*th); ok {
					qrs = insertBeforeLast(qrs, missed)
					recovered++
				}
			}

			if len(qrs) > 2 {
				rr.Push(float64(qrs[len(qrs)-1] - qrs[len(qrs)-2]))
				rrAve = int(rr.Mean())
			}
		} else {
			noise.Push(ma[peak])
		}

		th = noise.Mean() + 0.45*(sig.Mean()-noise.Mean())
	}

	if recovered > 0 {
		d.log.Debug("hamilton search back", zap.Int("recovered", recovered))
	}
	return qrs[1:], nil
}

// searchBack returns the largest candidate above floor that lies more than
// minGap samples from both prev and next.
func searchBack(x []float64, candidates []int, prev, next, minGap int, floor float64) (int, bool) {
	best, found := 0, false
	for _, c := range candidates {
		if c-prev <= minGap || next-c <= minGap || x[c] <= floor {
			continue
		}
		if !found || x[c] > x[best] {
			best, found = c, true
		}
	}
	return best, found
}

// insertBeforeLast places v between the last two beats.
func insertBeforeLast(beats []int, v int) []int {
	n := len(beats)
	beats = append(beats, beats[n-1])
	beats[n-1] = v
	return beats
}
