package detector

import (
	"fmt"

	"github.com/roduit/EE-512-Biomedical-signal-processing/filter"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

var engzeeTaps = []float64{1, 4, 6, 4, 1}

// engzee implements C. Zeelenberg, "A single scan algorithm for QRS detection
// and feature extraction", Computers in Cardiology 6, 1979, as modified by
// Lourenco et al., BIOSIGNALS 2012.
//
// A beat is confirmed when, within 160 ms of crossing M, the signal stays
// below -M for more than 10 ms. The R peak is the maximum of the unfiltered
// signal from 10 ms before the crossing up to confirmation.
func (d *Detectors) engzee(ecg []float64) ([]int, error) {
	notch, err := filter.ButterHz(4, filter.Bandstop, d.fs, 48, 52)
	if err != nil {
		return nil, fmt.Errorf("mains notch: %w", err)
	}
	filtered := notch.Apply(ecg)

	diff := make([]float64, len(filtered))
	for i := 4; i < len(diff); i++ {
		diff[i] = filtered[i] - filtered[i-4]
	}
	lp := filter.FIR(engzeeTaps, diff)
	zeroPrefix(lp, d.samples(0.2))

	ms10 := d.samples(0.01)
	ms160 := d.samples(0.16)
	ms200 := d.samples(0.2)
	ms1200 := d.samples(1.2)

	mt := newMThreshold(lp, d.fs, ms200, ms1200)

	var (
		crossings []int
		rpeaks    = []int{}
		last      = -1
		thi       int
		thiOn     bool
		thf       bool
		counter   int
	)
	reset := func() {
		counter = 0
		thiOn = false
		thf = false
	}

	for i := range lp {
		m := mt.update(i, last)

		if lp[i] > m && (last < 0 || i > last+ms200) {
			crossings = append(crossings, i)
			last = i
			thi = i
			thiOn = true
			mt.beat()
		}

		switch {
		case thiOn && i < thi+ms160:
			if i > 0 && lp[i] < -m && lp[i-1] > -m {
				thf = true
			}
			if thf && lp[i] < -m {
				counter++
			} else if thf && lp[i] > -m {
				reset()
			}
		case thiOn && i > thi+ms160:
			reset()
		}

		if counter > ms10 {
			lo := max(0, thi-ms10)
			rpeaks = append(rpeaks, d.engzeeDelay+floats.MaxIdx(ecg[lo:i])+lo)
			reset()
		}
	}

	d.log.Debug("engzee threshold crossings",
		zap.Int("crossings", len(crossings)),
		zap.Int("confirmed", len(rpeaks)),
	)
	if len(rpeaks) == 0 {
		return rpeaks, nil
	}
	return rpeaks[1:], nil
}
