package detector

import (
	"slices"
	"testing"
)

func TestLocalMaxima(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		want []int
	}{
		{name: "empty", x: nil, want: []int{}},
		{name: "two samples", x: []float64{0, 1}, want: []int{}},
		{name: "single peak", x: []float64{0, 2, 1}, want: []int{1}},
		{name: "two peaks", x: []float64{0, 2, 1, 3, 0}, want: []int{1, 3}},
		{name: "plateau", x: []float64{0, 1, 1, 0}, want: []int{}},
		{name: "plateau then peak", x: []float64{0, 1, 1, 2, 0}, want: []int{3}},
		{name: "endpoints", x: []float64{5, 1, 5}, want: []int{}},
		{name: "negative", x: []float64{-3, -1, -2}, want: []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LocalMaxima(tt.x)
			if !slices.Equal(got, tt.want) {
				t.Errorf("LocalMaxima(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestPeaks_StopsEarly(t *testing.T) {
	x := []float64{0, 1, 0, 1, 0, 1, 0}
	var got []int
	for i := range Peaks(x) {
		got = append(got, i)
		if len(got) == 2 {
			break
		}
	}
	if !slices.Equal(got, []int{1, 3}) {
		t.Errorf("got %v, want [1 3]", got)
	}
}
