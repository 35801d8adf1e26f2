// Package bench scores QRS detectors against known beat locations.
package bench

import "math"

// Score summarises how detected beats match reference beats.
type Score struct {
	TP, FP, FN int
	// MeanError is the mean absolute offset of matched beats, in samples.
	MeanError float64
}

// Sensitivity is TP/(TP+FN), or 0 without reference beats.
func (s Score) Sensitivity() float64 {
	return ratio(s.TP, s.TP+s.FN)
}

// PPV is the positive predictive value TP/(TP+FP).
func (s Score) PPV() float64 {
	return ratio(s.TP, s.TP+s.FP)
}

// F1 is the harmonic mean of sensitivity and PPV.
func (s Score) F1() float64 {
	return ratio(2*s.TP, 2*s.TP+s.FP+s.FN)
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// Match pairs sorted reference and detected beats that lie within tolerance
// samples of each other. Each beat is used at most once.
func Match(truth, detected []int, tolerance int) Score {
	var s Score
	var errSum float64
	i, j := 0, 0
	for i < len(truth) && j < len(detected) {
		d := detected[j] - truth[i]
		switch {
		case abs(d) <= tolerance:
			s.TP++
			errSum += math.Abs(float64(d))
			i++
			j++
		case d < 0:
			s.FP++
			j++
		default:
			s.FN++
			i++
		}
	}
	s.FN += len(truth) - i
	s.FP += len(detected) - j
	if s.TP > 0 {
		s.MeanError = errSum / float64(s.TP)
	}
	return s
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
