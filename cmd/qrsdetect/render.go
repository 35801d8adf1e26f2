package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/roduit/EE-512-Biomedical-signal-processing/detector"
)

// ANSI escape codes.
const (
	rst = "\033[0m"
	dim = "\033[2m"
	grn = "\033[32m"
	yel = "\033[33m"

	sparkWidth = 48
	blocks     = " ▁▂▃▄▅▆▇█"
)

// summary formats one detector's beat count, mean rate and rate trend.
func summary(desc detector.Descriptor, beats []int, fs float64) string {
	hr := detector.HeartRate(beats, fs)
	if len(hr) == 0 {
		return fmt.Sprintf("%-14s %s%4d beats%s", desc.ID, dim, len(beats), rst)
	}
	return fmt.Sprintf("%-14s %4d beats %s%6.1f bpm%s  %s%s%s",
		desc.ID, len(beats),
		yel, detector.MeanHeartRate(beats, fs), rst,
		grn, sparkline(downsample(hr, sparkWidth), sparkWidth, 0), rst)
}

// sparkline draws data right-aligned in width cells, scaled to ceil or to
// the data maximum when ceil is not positive.
func sparkline(data []float64, width int, ceil float64) string {
	if len(data) == 0 {
		return strings.Repeat(" ", width)
	}
	d := data
	if len(d) < width {
		pad := make([]float64, width-len(d))
		d = append(pad, d...)
	} else if len(d) > width {
		d = d[len(d)-width:]
	}
	if ceil <= 0 {
		for _, v := range d {
			if math.Abs(v) > ceil {
				ceil = math.Abs(v)
			}
		}
	}
	if ceil <= 0 {
		ceil = 1
	}
	blk := []rune(blocks)
	var b strings.Builder
	for _, v := range d {
		frac := math.Min(1, math.Abs(v)/ceil)
		idx := min(8, int(frac*8))
		b.WriteRune(blk[idx])
	}
	return b.String()
}

// downsample keeps the maximum of each of width equal buckets.
func downsample(data []float64, width int) []float64 {
	n := len(data)
	if n <= width {
		return data
	}
	step := float64(n) / float64(width)
	out := make([]float64, width)
	for c := range width {
		si := int(float64(c) * step)
		ei := int(float64(c+1) * step)
		mx := data[si]
		for j := si + 1; j < ei && j < n; j++ {
			if data[j] > mx {
				mx = data[j]
			}
		}
		out[c] = mx
	}
	return out
}
