package detector

import "gonum.org/v1/gonum/floats"

// RingFloat is a fixed-capacity ring buffer for float64 values. Once full,
// each Push evicts the oldest value.
type RingFloat struct {
	data []float64
	pos  int
	full bool
	cap  int
}

// NewRingFloat creates a RingFloat with the given capacity.
func NewRingFloat(cap int) *RingFloat {
	return &RingFloat{
		data: make([]float64, cap),
		cap:  cap,
	}
}

// Push adds a value to the ring buffer.
func (r *RingFloat) Push(v float64) {
	r.data[r.pos] = v
	r.pos++
	if r.pos >= r.cap {
		r.pos = 0
		r.full = true
	}
}

// Len returns the number of elements in the buffer.
func (r *RingFloat) Len() int {
	if r.full {
		return r.cap
	}
	return r.pos
}

// Last returns the most recently pushed value, or 0 when empty.
func (r *RingFloat) Last() float64 {
	if r.Len() == 0 {
		return 0
	}
	i := r.pos - 1
	if i < 0 {
		i = r.cap - 1
	}
	return r.data[i]
}

// Mean returns the average of the stored values, or 0 when empty.
func (r *RingFloat) Mean() float64 {
	n := r.Len()
	if n == 0 {
		return 0
	}
	if r.full {
		return floats.Sum(r.data) / float64(n)
	}
	return floats.Sum(r.data[:n]) / float64(n)
}

// Slice returns the buffer contents in insertion order.
func (r *RingFloat) Slice() []float64 {
	n := r.Len()
	out := make([]float64, n)
	if r.full {
		copy(out, r.data[r.pos:])
		copy(out[r.cap-r.pos:], r.data[:r.pos])
	} else {
		copy(out, r.data[:r.pos])
	}
	return out
}
