package resample

import (
	"math"
	"testing"
)

// newRaster allocates a raster or fails the test.
func newRaster(tb testing.TB, w, h int, f Format) *Raster {
	tb.Helper()
	r, err := NewRaster(w, h, f)
	if err != nil {
		tb.Fatalf("NewRaster(%d, %d, %v) error = %v", w, h, f, err)
	}
	return r
}

// rampRaster fills every byte with a deterministic pattern that differs per
// row, column and channel.
func rampRaster(tb testing.TB, w, h int, f Format) *Raster {
	tb.Helper()
	r := newRaster(tb, w, h, f)
	for y := range h {
		row := r.RowBytes(y)
		for i := range row {
			row[i] = byte(i*29 + y*53 + 7)
		}
	}
	return r
}

// refStretch is a floating-point rendition of one axis of the resampler.
// Results are not rounded or clamped.
func refStretch(in []float64, f Filter, outN int) []float64 {
	inN := len(in)
	scale := float64(inN) / float64(outN)
	fs := max(scale, 1)
	support := f.Support() * fs

	out := make([]float64, outN)
	for i := range outN {
		center := (float64(i) + 0.5) * scale
		lo := max(int(math.Floor(center-support)), 0)
		hi := min(int(math.Ceil(center+support)), inN)
		var sum, acc float64
		for j := lo; j < hi; j++ {
			w := f.Weight((float64(j)-center+0.5)/fs) / fs
			sum += w
			acc += w * in[j]
		}
		out[i] = acc / sum
	}
	return out
}

// toByte rounds and clamps a reference value.
func toByte(v float64) byte {
	return byte(math.Round(min(max(v, 0), 255)))
}

func absDiff(a, b byte) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
