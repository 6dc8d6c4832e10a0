package resample

import (
	"errors"

	"github.com/gogpu/resample/internal/filter"
)

// Errors returned by Stretch, StretchAxis and Resize. Validation errors are
// returned as is; resource errors are wrapped with details, so match with
// errors.Is.
var (
	// ErrModeMismatch is returned when input and output formats differ or a
	// raster is nil.
	ErrModeMismatch = errors.New("resample: input and output modes differ")

	// ErrAxisMismatch is returned when the rasters do not differ in exactly
	// one dimension, or the named axis is not the one that may differ.
	ErrAxisMismatch = errors.New("resample: rasters must differ along exactly one axis")

	// ErrUnsupportedFilter is returned for an unknown Filter value.
	ErrUnsupportedFilter = filter.ErrUnsupportedFilter

	// ErrUnsupportedPixelLayout is returned for formats that are not 1 to 4
	// channels of 8-bit samples.
	ErrUnsupportedPixelLayout = errors.New("resample: unsupported pixel layout")

	// ErrOutOfMemory is returned when scratch buffers exceed the configured
	// budget.
	ErrOutOfMemory = filter.ErrOutOfMemory

	// ErrDegenerateWindow is returned when a coefficient window sums to
	// zero and cannot be normalized.
	ErrDegenerateWindow = filter.ErrDegenerateWindow

	// ErrInvalidDimensions is returned by Resize for non-positive sizes.
	ErrInvalidDimensions = errors.New("resample: invalid dimensions")
)
