package filter

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateWindow is returned when every raw weight of a window is zero,
// so the window cannot be normalized.
var ErrDegenerateWindow = errors.New("resample: degenerate coefficient window")

// errInvalidSize is returned by NewPlan for non-positive axis lengths.
var errInvalidSize = errors.New("resample: axis length must be positive")

// Plan holds the per-axis parameters of a resample from InSize samples to
// OutSize samples.
type Plan struct {
	Kind    Kind
	InSize  int
	OutSize int

	// Scale is InSize/OutSize.
	Scale float64
	// FilterScale is max(Scale, 1): the kernel is stretched only when
	// downscaling.
	FilterScale float64
	// Support is the kernel radius in input samples.
	Support float64
	// KMax bounds the length of every window.
	KMax int
}

// NewPlan derives the resample parameters for one axis.
func NewPlan(kind Kind, inSize, outSize int) (Plan, error) {
	if !kind.Valid() {
		return Plan{}, ErrUnsupportedFilter
	}
	if inSize <= 0 || outSize <= 0 {
		return Plan{}, fmt.Errorf("%w: %d -> %d", errInvalidSize, inSize, outSize)
	}

	scale := float64(inSize) / float64(outSize)
	filterScale := max(scale, 1)
	support := kind.Support() * filterScale

	return Plan{
		Kind:        kind,
		InSize:      inSize,
		OutSize:     outSize,
		Scale:       scale,
		FilterScale: filterScale,
		Support:     support,
		KMax:        int(math.Ceil(support))*2 + 1,
	}, nil
}

// Window is the quantized weight vector of one output coordinate.
// Weights[k] applies to input sample Lo+k; samples outside [Lo, Hi) do not
// contribute.
type Window struct {
	Lo, Hi  int
	Weights []int32
}

// Len returns Hi - Lo.
func (w Window) Len() int {
	return w.Hi - w.Lo
}

// Window computes the weights of output coordinate i. raw and dst are
// scratch and destination buffers of at least KMax elements; the returned
// Weights alias dst.
func (p Plan) Window(i int, raw []float64, dst []int32) (Window, error) {
	center := (float64(i) + 0.5) * p.Scale
	lo := clamp(int(math.Floor(center-p.Support)), 0, p.InSize)
	hi := clamp(int(math.Ceil(center+p.Support)), 0, p.InSize)
	n := hi - lo

	inv := 1 / p.FilterScale
	var sum float64
	for j := lo; j < hi; j++ {
		w := p.Kind.Weight((float64(j)-center+0.5)*inv) * inv
		raw[j-lo] = w
		sum += w
	}
	if sum == 0 {
		return Window{}, fmt.Errorf("%w: output %d, inputs [%d, %d)", ErrDegenerateWindow, i, lo, hi)
	}

	for k := range n {
		dst[k] = quantize(raw[k] / sum)
	}
	return Window{Lo: lo, Hi: hi, Weights: dst[:n]}, nil
}

// Bank is a precomputed window for every output coordinate of a Plan.
// Weights are stored in one slab of OutSize*KMax values.
type Bank struct {
	kmax    int
	bounds  []int
	weights []int32
}

// Bank plans every output coordinate up front, drawing its storage from
// arena.
func (p Plan) Bank(arena *Arena) (*Bank, error) {
	slab, err := checkedMul(p.OutSize, p.KMax)
	if err != nil {
		return nil, err
	}
	weights, err := arena.Int32s(slab)
	if err != nil {
		return nil, err
	}
	bounds, err := arena.Ints(p.OutSize * 2)
	if err != nil {
		return nil, err
	}
	raw, err := arena.Float64s(p.KMax)
	if err != nil {
		return nil, err
	}

	for i := range p.OutSize {
		w, err := p.Window(i, raw, weights[i*p.KMax:(i+1)*p.KMax])
		if err != nil {
			return nil, err
		}
		bounds[i*2] = w.Lo
		bounds[i*2+1] = w.Hi
	}
	return &Bank{kmax: p.KMax, bounds: bounds, weights: weights}, nil
}

// Len returns the number of planned output coordinates.
func (b *Bank) Len() int {
	return len(b.bounds) / 2
}

// Window returns the planned window of output coordinate i.
func (b *Bank) Window(i int) Window {
	lo, hi := b.bounds[i*2], b.bounds[i*2+1]
	off := i * b.kmax
	return Window{Lo: lo, Hi: hi, Weights: b.weights[off : off+hi-lo]}
}

func quantize(w float64) int32 {
	return int32(math.Round(w * One))
}

func checkedMul(a, b int) (int, error) {
	if a < 0 || b < 0 || (a != 0 && b > math.MaxInt/a) {
		return 0, fmt.Errorf("%w: %d x %d coefficients", ErrOutOfMemory, a, b)
	}
	return a * b, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
