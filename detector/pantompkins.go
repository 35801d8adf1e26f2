package detector

import (
	"fmt"

	"github.com/roduit/EE-512-Biomedical-signal-processing/filter"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// panTompkins implements J. Pan and W. J. Tompkins, "A Real-Time QRS
// Detection Algorithm", IEEE Trans. Biomed. Eng. BME-32(3), 1985.
func (d *Detectors) panTompkins(ecg []float64) ([]int, error) {
	bp, err := filter.ButterHz(1, filter.Bandpass, d.fs, 5, 15)
	if err != nil {
		return nil, fmt.Errorf("bandpass: %w", err)
	}
	diff := filter.Diff(bp.Apply(ecg))
	for i, v := range diff {
		diff[i] = v * v
	}

	integrated, err := d.method.Apply(diff, d.samples(0.15))
	if err != nil {
		return nil, fmt.Errorf("integration: %w", err)
	}
	zeroPrefix(integrated, d.samples(0.3))

	return d.panPeakDetect(integrated), nil
}

// panPeakDetect runs the SPKI/NPKI thresholding over the integrated signal.
func (d *Detectors) panPeakDetect(x []float64) []int {
	minDistance := d.samples(0.25)
	refractory := 0.3 * d.fs

	// Learning phase: the first two seconds seed both running estimates.
	learn := x[:min(len(x), d.samples(2))]
	var spki, npki float64
	if len(learn) > 0 {
		spki = floats.Max(learn) / 3
		npki = floats.Sum(learn) / float64(len(learn)) / 2
	}
	i1 := npki + 0.25*(spki-npki)
	i2 := 0.5 * i1

	var (
		peaks     []int
		indexes   []int
		rrMissed  int
		signal    = []int{0}
		recovered int
	)

	for peak := range Peaks(x) {
		peaks = append(peaks, peak)

		if x[peak] > i1 && float64(peak-signal[len(signal)-1]) > refractory {
			prev := signal[len(signal)-1]
			signal = append(signal, peak)
			indexes = append(indexes, len(peaks)-1)
			spki = 0.125*x[peak] + 0.875*spki

			if rrMissed != 0 && peak-prev > rrMissed {
				lo := indexes[len(indexes)-2] + 1
				hi := indexes[len(indexes)-1]
				if missed, ok := searchBack(x, peaks[lo:hi], prev, peak, minDistance, i2); ok {
					signal = insertBeforeLast(signal, missed)
					recovered++
				}
			}
		} else {
			npki = 0.125*x[peak] + 0.875*npki
		}

		i1 = npki + 0.25*(spki-npki)
		i2 = 0.5 * i1

		if len(signal) > 8 {
			recent := signal[len(signal)-9:]
			rrAve := (recent[8] - recent[0]) / 8
			rrMissed = int(1.66 * float64(rrAve))
		}
	}

	if recovered > 0 {
		d.log.Debug("pan-tompkins search back", zap.Int("recovered", recovered))
	}
	return signal[1:]
}
