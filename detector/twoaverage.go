package detector

import (
	"fmt"

	"github.com/roduit/EE-512-Biomedical-signal-processing/filter"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// beta is the block offset, as a fraction of the mean rectified signal.
const beta = 0.08

// twoAverage implements M. Elgendi, M. Jonkman and F. De Boer, "Frequency
// Bands Effects on QRS Detection", BIOSIGNALS 2010.
//
// Blocks of interest are where the 120 ms average of the rectified band-passed
// signal exceeds the 600 ms average plus an offset. Blocks wider than 80 ms
// yield one beat at their filtered maximum.
func (d *Detectors) twoAverage(ecg []float64) ([]int, error) {
	bp, err := filter.ButterHz(2, filter.Bandpass, d.fs, 8, 20)
	if err != nil {
		return nil, fmt.Errorf("bandpass: %w", err)
	}
	filtered := bp.Apply(ecg)
	rectified := filter.Abs(filtered)

	qrsAvg, err := d.method.Apply(rectified, d.samples(0.12))
	if err != nil {
		return nil, fmt.Errorf("qrs average: %w", err)
	}
	beatAvg, err := d.method.Apply(rectified, d.samples(0.6))
	if err != nil {
		return nil, fmt.Errorf("beat average: %w", err)
	}
	offset := beta * stat.Mean(rectified, nil)

	inBlock := func(i int) bool { return qrsAvg[i] > beatAvg[i]+offset }
	return blockBeats(filtered, inBlock, d.samples(0.08), d.samples(0.3)), nil
}

// blockBeats places one beat at the maximum of filtered inside every block
// wider than minWidth samples, skipping beats within refractory samples of the
// previous one. A block has to open after sample 0 to be counted.
func blockBeats(filtered []float64, inBlock func(int) bool, minWidth, refractory int) []int {
	qrs := []int{}
	start := -1
	for i := 1; i < len(filtered); i++ {
		prev, cur := inBlock(i-1), inBlock(i)
		switch {
		case !prev && cur:
			start = i
		case prev && !cur && start >= 0:
			end := i - 1
			if end-start <= minWidth {
				continue
			}
			beat := start + floats.MaxIdx(filtered[start:end+1])
			if len(qrs) == 0 || beat-qrs[len(qrs)-1] > refractory {
				qrs = append(qrs, beat)
			}
		}
	}
	return qrs
}
