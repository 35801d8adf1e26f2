package detector

import "errors"

var (
	// ErrSamplingFrequency is returned when fs is unset, non-positive, NaN or
	// too low for a detector's windows.
	ErrSamplingFrequency = errors.New("detector: invalid sampling frequency")
	// ErrShortSignal is returned when the input is shorter than a detector's
	// minimum duration.
	ErrShortSignal = errors.New("detector: signal too short")
	// ErrUnknownDetector is returned by Lookup for unregistered keys.
	ErrUnknownDetector = errors.New("detector: unknown detector")
)
