package detector

import (
	"slices"
	"testing"
)

func TestBlockBeats(t *testing.T) {
	tests := []struct {
		name       string
		mask       string
		peaks      []int
		refractory int
		want       []int
	}{
		{name: "block open at start", mask: "#####.....", peaks: []int{2}, want: []int{}},
		{name: "narrow block", mask: "..##......", peaks: []int{3}, want: []int{}},
		{name: "wide block", mask: "..#####...", peaks: []int{4}, want: []int{4}},
		{name: "unterminated block", mask: "......####", peaks: []int{8}, want: []int{}},
		{name: "spaced blocks", mask: ".####.####...", peaks: []int{3, 7}, refractory: 3, want: []int{3, 7}},
		{name: "refractory", mask: ".####.####...", peaks: []int{3, 7}, refractory: 5, want: []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := make([]float64, len(tt.mask))
			for _, p := range tt.peaks {
				filtered[p] = 1
			}
			inBlock := func(i int) bool { return tt.mask[i] == '#' }

			got := blockBeats(filtered, inBlock, 2, tt.refractory)
			if got == nil || !slices.Equal(got, tt.want) {
				t.Errorf("blockBeats(%q) = %v, want %v", tt.mask, got, tt.want)
			}
		})
	}
}
