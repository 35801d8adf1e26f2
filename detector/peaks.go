package detector

import "iter"

// Peaks yields, in increasing order, every index i with
// x[i-1] < x[i] > x[i+1]. Endpoints and plateaus never qualify.
func Peaks(x []float64) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 1; i < len(x)-1; i++ {
			if x[i-1] < x[i] && x[i+1] < x[i] {
				if !yield(i) {
					return
				}
			}
		}
	}
}

// LocalMaxima collects Peaks(x) into a slice.
func LocalMaxima(x []float64) []int {
	out := []int{}
	for i := range Peaks(x) {
		out = append(out, i)
	}
	return out
}
