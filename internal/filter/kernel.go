package filter

import (
	"errors"
	"math"
	"strings"
)

// ErrUnsupportedFilter is returned for a Kind outside the known set.
var ErrUnsupportedFilter = errors.New("resample: unsupported resampling filter")

// Kind identifies a resampling kernel.
type Kind uint8

const (
	// Nearest is a box of width 1: each output sample copies (or, when
	// downscaling, averages) the input samples it covers.
	Nearest Kind = iota

	// Bilinear is the triangle (tent) kernel with support 1.
	Bilinear

	// Bicubic is the cubic convolution kernel with shape parameter a = 0
	// and support 2.
	Bicubic

	// Antialias is a Lanczos-windowed sinc with 3 lobes.
	Antialias

	kindCount
)

// Lanczos is an alias for Antialias.
const Lanczos = Antialias

// bicubicA is the cubic shape parameter. Zero keeps the kernel
// non-negative; sharper variants use -0.5 to -1.
const bicubicA = 0.0

var kindSupport = [kindCount]float64{
	Nearest:   0.5,
	Bilinear:  1.0,
	Bicubic:   2.0,
	Antialias: 3.0,
}

// Valid reports whether k is a known kernel.
func (k Kind) Valid() bool {
	return k < kindCount
}

// Support returns the kernel radius: Weight is zero outside
// [-Support, Support). Unknown kinds report 0.
func (k Kind) Support() float64 {
	if !k.Valid() {
		return 0
	}
	return kindSupport[k]
}

// Weight evaluates the kernel at distance x.
func (k Kind) Weight(x float64) float64 {
	switch k {
	case Nearest:
		return nearest(x)
	case Bilinear:
		return bilinear(x)
	case Bicubic:
		return bicubic(x)
	case Antialias:
		return antialias(x)
	default:
		return 0
	}
}

// String returns the lower-case kernel name.
func (k Kind) String() string {
	switch k {
	case Nearest:
		return "nearest"
	case Bilinear:
		return "bilinear"
	case Bicubic:
		return "bicubic"
	case Antialias:
		return "antialias"
	default:
		return "unknown"
	}
}

// ParseKind maps a kernel name to its Kind. Matching is case-insensitive and
// accepts "lanczos" for Antialias.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "nearest":
		return Nearest, nil
	case "bilinear", "linear":
		return Bilinear, nil
	case "bicubic", "cubic":
		return Bicubic, nil
	case "antialias", "lanczos":
		return Antialias, nil
	default:
		return kindCount, ErrUnsupportedFilter
	}
}

func nearest(x float64) float64 {
	if x >= -0.5 && x < 0.5 {
		return 1
	}
	return 0
}

func bilinear(x float64) float64 {
	x = math.Abs(x)
	if x < 1 {
		return 1 - x
	}
	return 0
}

func bicubic(x float64) float64 {
	const a = bicubicA
	x = math.Abs(x)
	if x < 1 {
		return ((a+2)*x-(a+3))*x*x + 1
	}
	if x < 2 {
		return ((a*x-5*a)*x+8*a)*x - 4*a
	}
	return 0
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x *= math.Pi
	return math.Sin(x) / x
}

func antialias(x float64) float64 {
	if x >= -3 && x < 3 {
		return sinc(x) * sinc(x/3)
	}
	return 0
}
