// Package ecgsim synthesises ECG-like test signals with known R-peak
// locations. The waveforms are not clinical; they exercise detectors with a
// realistic P-QRS-T shape, baseline wander and optional noise.
package ecgsim

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrInvalidParameter is returned for non-positive rates or durations, or
// negative noise.
var ErrInvalidParameter = errors.New("ecgsim: invalid parameter")

// Record is a synthetic recording with its ground truth.
type Record struct {
	Signal []float64
	// RPeaks holds the sample index of every R apex.
	RPeaks []int
	FS     float64
}

// Duration returns the record length in seconds.
func (r Record) Duration() float64 {
	if r.FS <= 0 {
		return 0
	}
	return float64(len(r.Signal)) / r.FS
}

// wave is one Gaussian component of the beat, positioned in cycle phase.
type wave struct {
	amp, mu, sigma float64
}

var beat = []wave{
	{amp: 0.08, mu: 0.18, sigma: 0.03},   // P
	{amp: -0.12, mu: 0.30, sigma: 0.01},  // Q
	{amp: 1.00, mu: 0.32, sigma: 0.008},  // R
	{amp: -0.25, mu: 0.35, sigma: 0.012}, // S
	{amp: 0.25, mu: 0.60, sigma: 0.06},   // T
}

const rPhase = 0.32

// Options tunes Generate.
type Options struct {
	// Noise is the standard deviation of additive Gaussian noise.
	Noise float64
	// Seed makes the noise reproducible.
	Seed uint64
	// Wander is the amplitude of the 0.33 Hz respiratory baseline.
	Wander float64
}

// DefaultOptions returns noiseless options with a 0.05 baseline wander.
func DefaultOptions() Options {
	return Options{Wander: 0.05, Seed: 1}
}

// Generate returns seconds of ECG at fs Hz and a constant heart rate.
func Generate(fs, hrBPM, seconds float64, opts Options) (Record, error) {
	if !(fs > 0) || !(hrBPM > 0) || !(seconds > 0) || opts.Noise < 0 {
		return Record{}, fmt.Errorf("%w: fs=%v hr=%v seconds=%v noise=%v",
			ErrInvalidParameter, fs, hrBPM, seconds, opts.Noise)
	}

	n := int(math.Round(seconds * fs))
	cycleHz := hrBPM / 60
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x5851f42d4c957f2d))

	sig := make([]float64, n)
	for i := range sig {
		t := float64(i) / fs
		phase := math.Mod(t*cycleHz, 1)

		v := opts.Wander * math.Sin(2*math.Pi*0.33*t)
		for _, w := range beat {
			v += w.amp * gauss(phase, w.mu, w.sigma)
		}
		if opts.Noise > 0 {
			v += opts.Noise * rng.NormFloat64()
		}
		sig[i] = v
	}

	var peaks []int
	for k := 0; ; k++ {
		c := int(math.Round((float64(k) + rPhase) / cycleHz * fs))
		if c >= n {
			break
		}
		peaks = append(peaks, c)
	}
	return Record{Signal: sig, RPeaks: peaks, FS: fs}, nil
}

// PulseTrain returns a 0.1 amplitude sinusoid at rateHz with narrow Gaussian
// pulses of height 1.5 at 0.5 s + k/rateHz. Pulses stop one second before the
// end so every detector can confirm the last one.
func PulseTrain(fs, rateHz, seconds float64) (Record, error) {
	if !(fs > 0) || !(rateHz > 0) || !(seconds > 0) {
		return Record{}, fmt.Errorf("%w: fs=%v rate=%v seconds=%v", ErrInvalidParameter, fs, rateHz, seconds)
	}

	n := int(math.Round(seconds * fs))
	sig := make([]float64, n)
	for i := range sig {
		sig[i] = 0.1 * math.Sin(2*math.Pi*rateHz*float64(i)/fs)
	}

	sigma := 0.008 * fs
	reach := int(6 * sigma)
	var peaks []int
	for k := 0; ; k++ {
		t := 0.5 + float64(k)/rateHz
		if t > seconds-1 {
			break
		}
		c := int(math.Round(t * fs))
		peaks = append(peaks, c)
		for i := max(0, c-reach); i <= min(n-1, c+reach); i++ {
			sig[i] += 1.5 * gauss(float64(i), float64(c), sigma)
		}
	}
	return Record{Signal: sig, RPeaks: peaks, FS: fs}, nil
}

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}
