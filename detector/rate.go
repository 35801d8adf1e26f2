package detector

import "gonum.org/v1/gonum/stat"

// RRIntervals returns the gaps between consecutive beats in seconds.
func RRIntervals(beats []int, fs float64) []float64 {
	if len(beats) < 2 || !(fs > 0) {
		return []float64{}
	}
	out := make([]float64, len(beats)-1)
	for i := range out {
		out[i] = float64(beats[i+1]-beats[i]) / fs
	}
	return out
}

// HeartRate returns the instantaneous rate in beats per minute for each RR
// interval.
func HeartRate(beats []int, fs float64) []float64 {
	rr := RRIntervals(beats, fs)
	for i, v := range rr {
		rr[i] = 60 / v
	}
	return rr
}

// MeanHeartRate is 60 over the mean RR interval, or 0 with fewer than two
// beats.
func MeanHeartRate(beats []int, fs float64) float64 {
	rr := RRIntervals(beats, fs)
	if len(rr) == 0 {
		return 0
	}
	return 60 / stat.Mean(rr, nil)
}
