package detector

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// DefaultRefineRadius is the search radius, in seconds, used by the CLIs.
const DefaultRefineRadius = 0.25

// RefinePeaks moves every beat to the maximum of ecg within ±radius seconds.
// Detector indices lag the R wave by the filter and integration delays; this
// maps them onto the unfiltered signal. The result is sorted with duplicates
// removed. Beats outside ecg are dropped.
func RefinePeaks(ecg []float64, beats []int, fs, radius float64) []int {
	out := make([]int, 0, len(beats))
	if len(ecg) == 0 || !(fs > 0) {
		return out
	}
	r := max(0, int(radius*fs))
	for _, b := range beats {
		if b < 0 || b >= len(ecg) {
			continue
		}
		lo := max(0, b-r)
		hi := min(len(ecg), b+r+1)
		out = append(out, lo+floats.MaxIdx(ecg[lo:hi]))
	}
	slices.Sort(out)
	return slices.Compact(out)
}
