package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/roduit/EE-512-Biomedical-signal-processing/detector"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one detector on one recording.
type Result struct {
	ID      string
	Name    string
	Beats   []int
	Score   Score
	Elapsed time.Duration
	// Err is set when the detector failed; Score is then zero.
	Err error
}

// Runner evaluates every registered detector on a recording.
type Runner struct {
	detectors *detector.Detectors
	workers   int
	tolerance float64
	refine    float64
	logger    *zap.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithWorkers bounds the number of detectors running at once.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithTolerance sets the matching tolerance in seconds.
func WithTolerance(sec float64) RunnerOption {
	return func(r *Runner) {
		if sec >= 0 {
			r.tolerance = sec
		}
	}
}

// WithRefine sets the RefinePeaks radius in seconds; 0 scores raw indices.
func WithRefine(sec float64) RunnerOption {
	return func(r *Runner) {
		if sec >= 0 {
			r.refine = sec
		}
	}
}

// WithLogger sets the runner logger.
func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a runner with 4 workers, 50 ms tolerance and the default
// refine radius.
func NewRunner(d *detector.Detectors, opts ...RunnerOption) *Runner {
	r := &Runner{
		detectors: d,
		workers:   4,
		tolerance: 0.05,
		refine:    detector.DefaultRefineRadius,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates all detectors concurrently and returns results in registry
// order. A failing detector is recorded in its Result; Run itself only fails
// when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, ecg []float64, truth []int) ([]Result, error) {
	descs := r.detectors.List()
	results := make([]Result, len(descs))
	fs := r.detectors.FS()
	tol := int(r.tolerance * fs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, desc := range descs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res := Result{ID: desc.ID, Name: desc.Name}
			start := time.Now()
			beats, err := desc.Detect(ecg)
			res.Elapsed = time.Since(start)
			if err != nil {
				res.Err = err
				r.logger.Warn("detector failed", zap.String("detector", desc.ID), zap.Error(err))
				results[i] = res
				return nil
			}

			if r.refine > 0 {
				beats = detector.RefinePeaks(ecg, beats, fs, r.refine)
			}
			res.Beats = beats
			res.Score = Match(truth, beats, tol)
			results[i] = res

			r.logger.Debug("detector scored",
				zap.String("detector", desc.ID),
				zap.Int("tp", res.Score.TP),
				zap.Int("fp", res.Score.FP),
				zap.Int("fn", res.Score.FN),
				zap.Duration("elapsed", res.Elapsed),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}
	return results, nil
}
