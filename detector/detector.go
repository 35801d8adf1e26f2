// Package detector finds QRS complexes (heartbeats) in single-lead ECG
// recordings.
//
// Six batch detectors are provided: Elgendi's two-average, Engzee, Christov,
// Hamilton, Pan-Tompkins and WQRS. Each runs a causal filter/transform chain
// followed by an adaptive-threshold scan and returns strictly increasing
// sample indices. Indices are in the detector's transform domain; RefinePeaks
// maps them back onto the unfiltered signal.
package detector

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/roduit/EE-512-Biomedical-signal-processing/mwa"
	"go.uber.org/zap"
)

// Registry identifiers.
const (
	IDTwoAverage  = "two_average"
	IDEngzee      = "engzee"
	IDChristov    = "christov"
	IDHamilton    = "hamilton"
	IDPanTompkins = "pan_tompkins"
	IDWQRS        = "wqrs"
)

// Func is the common detector signature.
type Func func(ecg []float64) ([]int, error)

// Descriptor describes one registered detector.
type Descriptor struct {
	ID   string
	Name string
	// Detect runs the detector with the owning Detectors' configuration.
	Detect Func
	// MinDuration is the shortest accepted input, in seconds.
	MinDuration float64
	// MinSpacing is the guaranteed gap between consecutive beats, in seconds.
	MinSpacing float64
}

// variant holds the static per-detector parameters.
type variant struct {
	id          string
	name        string
	minDuration float64
	minSpacing  float64
	// windows lists every duration that must span at least one sample.
	windows []float64
}

var (
	twoAverageVariant = variant{
		id: IDTwoAverage, name: "Elgendi et al (Two average)",
		minDuration: 0.6, minSpacing: 0.3,
		windows: []float64{0.08, 0.12, 0.3, 0.6},
	}
	engzeeVariant = variant{
		id: IDEngzee, name: "Engzee",
		minDuration: 5, minSpacing: 0,
		windows: []float64{0.01, 0.16, 0.2, 1.2},
	}
	christovVariant = variant{
		id: IDChristov, name: "Christov",
		minDuration: 5, minSpacing: 0.2,
		windows: []float64{0.02, 0.028, 0.04, 0.05, 0.2, 0.35, 1.2},
	}
	hamiltonVariant = variant{
		id: IDHamilton, name: "Hamilton",
		minDuration: 0.36, minSpacing: 0.3,
		windows: []float64{0.08, 0.3, 0.36},
	}
	panTompkinsVariant = variant{
		id: IDPanTompkins, name: "Pan Tompkins",
		minDuration: 2, minSpacing: 0.25,
		windows: []float64{0.15, 0.25, 0.3},
	}
	wqrsVariant = variant{
		id: IDWQRS, name: "WQRS",
		minDuration: 10, minSpacing: 0.35,
		windows: []float64{0.13, 0.35, 10},
	}
)

// Detectors runs the QRS detectors at a fixed sampling frequency. It holds
// only immutable configuration and is safe for concurrent use.
type Detectors struct {
	fs          float64
	method      mwa.Method
	engzeeDelay int
	log         *zap.Logger
	registry    []Descriptor
}

// Option configures Detectors.
type Option func(*Detectors)

// WithMWA selects the moving-window-average implementation used by
// Pan-Tompkins and two-average.
func WithMWA(m mwa.Method) Option {
	return func(d *Detectors) { d.method = m }
}

// WithEngzeeDelay adds a fixed sample offset to every Engzee beat.
func WithEngzeeDelay(samples int) Option {
	return func(d *Detectors) { d.engzeeDelay = samples }
}

// WithLogger sets the logger for per-call debug summaries.
func WithLogger(l *zap.Logger) Option {
	return func(d *Detectors) {
		if l != nil {
			d.log = l
		}
	}
}

// New returns Detectors for signals sampled at fs Hz. fs is validated when a
// detector runs, so a zero value still gives access to the registry.
func New(fs float64, opts ...Option) *Detectors {
	d := &Detectors{
		fs:     fs,
		method: mwa.Cumulative,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.registry = []Descriptor{
		d.describe(twoAverageVariant, d.TwoAverage),
		d.describe(engzeeVariant, d.Engzee),
		d.describe(christovVariant, d.Christov),
		d.describe(hamiltonVariant, d.Hamilton),
		d.describe(panTompkinsVariant, d.PanTompkins),
		d.describe(wqrsVariant, d.WQRS),
	}
	return d
}

func (d *Detectors) describe(v variant, fn Func) Descriptor {
	return Descriptor{
		ID:          v.id,
		Name:        v.name,
		Detect:      fn,
		MinDuration: v.minDuration,
		MinSpacing:  v.minSpacing,
	}
}

// FS returns the configured sampling frequency.
func (d *Detectors) FS() float64 { return d.fs }

// List returns the registered detectors in a fixed order. The slice is a
// fresh copy.
func (d *Detectors) List() []Descriptor {
	out := make([]Descriptor, len(d.registry))
	copy(out, d.registry)
	return out
}

// Lookup finds a detector by ID or display name, ignoring case.
func (d *Detectors) Lookup(key string) (Descriptor, error) {
	key = strings.TrimSpace(key)
	for _, desc := range d.registry {
		if strings.EqualFold(desc.ID, key) || strings.EqualFold(desc.Name, key) {
			return desc, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownDetector, key)
}

// Detect runs the detector registered under key.
func (d *Detectors) Detect(key string, ecg []float64) ([]int, error) {
	desc, err := d.Lookup(key)
	if err != nil {
		return nil, err
	}
	return desc.Detect(ecg)
}

// samples converts seconds to a whole number of samples, truncating.
func (d *Detectors) samples(sec float64) int {
	return int(sec * d.fs)
}

func (d *Detectors) check(v variant, ecg []float64) error {
	if !(d.fs > 0) || math.IsInf(d.fs, 1) {
		return fmt.Errorf("%s: %w: %v Hz", v.id, ErrSamplingFrequency, d.fs)
	}
	for _, w := range v.windows {
		if d.samples(w) < 1 {
			return fmt.Errorf("%s: %w: %g s window is empty at %v Hz", v.id, ErrSamplingFrequency, w, d.fs)
		}
	}
	if need := int(math.Ceil(v.minDuration * d.fs)); len(ecg) < need {
		return fmt.Errorf("%s: %w: %d samples, need %d", v.id, ErrShortSignal, len(ecg), need)
	}
	return nil
}

// run validates the input, times the detector and logs a summary.
func (d *Detectors) run(v variant, ecg []float64, fn func([]float64) ([]int, error)) ([]int, error) {
	if err := d.check(v, ecg); err != nil {
		return nil, err
	}
	start := time.Now()
	beats, err := fn(ecg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", v.id, err)
	}
	if beats == nil {
		beats = []int{}
	}
	d.log.Debug("qrs detection",
		zap.String("detector", v.id),
		zap.Float64("fs", d.fs),
		zap.Int("samples", len(ecg)),
		zap.Int("beats", len(beats)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return beats, nil
}

// TwoAverage runs Elgendi's two moving averages detector.
func (d *Detectors) TwoAverage(ecg []float64) ([]int, error) {
	return d.run(twoAverageVariant, ecg, d.twoAverage)
}

// Engzee runs the modified Engelse and Zeelenberg detector.
func (d *Detectors) Engzee(ecg []float64) ([]int, error) {
	return d.run(engzeeVariant, ecg, d.engzee)
}

// Christov runs Christov's combined adaptive threshold detector.
func (d *Detectors) Christov(ecg []float64) ([]int, error) {
	return d.run(christovVariant, ecg, d.christov)
}

// Hamilton runs the Hamilton open source ECG analysis detector.
func (d *Detectors) Hamilton(ecg []float64) ([]int, error) {
	return d.run(hamiltonVariant, ecg, d.hamilton)
}

// PanTompkins runs the Pan-Tompkins detector.
func (d *Detectors) PanTompkins(ecg []float64) ([]int, error) {
	return d.run(panTompkinsVariant, ecg, d.panTompkins)
}

// WQRS runs the length-transform detector of Zong, Moody and Jiang.
func (d *Detectors) WQRS(ecg []float64) ([]int, error) {
	return d.run(wqrsVariant, ecg, d.wqrs)
}

// zeroPrefix clears the first n samples of x, clamped to its length.
func zeroPrefix(x []float64, n int) {
	clear(x[:min(n, len(x))])
}
