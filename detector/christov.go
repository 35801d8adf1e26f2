package detector

import (
	"math"

	"github.com/roduit/EE-512-Biomedical-signal-processing/filter"
	"gonum.org/v1/gonum/floats"
)

// christov implements I. I. Christov, "Real time electrocardiogram QRS
// detection using combined adaptive threshold", BioMedical Engineering
// OnLine 3:28, 2004.
func (d *Detectors) christov(ecg []float64) ([]int, error) {
	tapsA := d.samples(0.02)
	tapsB := d.samples(0.028)
	tapsC := d.samples(0.04)

	ma1 := filter.FIR(filter.Boxcar(tapsA), ecg)
	ma2 := filter.FIR(filter.Boxcar(tapsB), ma1)

	y := make([]float64, max(0, len(ma2)-2))
	for i := range y {
		y[i] = math.Abs(ma2[i+2] - ma2[i])
	}
	ma3 := filter.FIR(filter.Boxcar(tapsC), y)
	zeroPrefix(ma3, tapsA+tapsB+tapsC)

	ms50 := d.samples(0.05)
	ms200 := d.samples(0.2)
	ms350 := d.samples(0.35)
	ms1200 := d.samples(1.2)

	mt := newMThreshold(ma3, d.fs, ms200, ms1200)
	rr := NewRingFloat(5)
	rm := 0

	var f, r float64
	qrs := []int{}
	last := -1

	for i := range ma3 {
		m := mt.update(i, last)

		// F follows the slope of the last 350 ms.
		if i > ms350 {
			section := ma3[i-ms350 : i]
			f += (floats.Max(section[len(section)-ms50:]) - floats.Max(section[:ms50])) / 150
		}

		// R decays between 2/3 and the full expected RR interval.
		if last >= 0 {
			early := last + int(2.0/3.0*float64(rm))
			switch {
			case i < early:
				r = 0
			case i > early && i < last+rm:
				r = (m - mt.mean()) / 1.4
			}
		}

		if ma3[i] <= m+f+r {
			continue
		}
		if last >= 0 && i <= last+ms200 {
			continue
		}
		qrs = append(qrs, i)
		last = i
		mt.beat()
		if len(qrs) > 2 {
			rr.Push(float64(qrs[len(qrs)-1] - qrs[len(qrs)-2]))
			rm = int(rr.Mean())
		}
	}

	// The first detection only primes the thresholds.
	if len(qrs) == 0 {
		return qrs, nil
	}
	return qrs[1:], nil
}
