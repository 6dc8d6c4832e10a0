package resample

import (
	"github.com/gogpu/resample/internal/filter"
	intImage "github.com/gogpu/resample/internal/image"
)

// Raster is a row-major 8-bit image buffer. It is an alias for the internal
// image buffer so rasters from NewRaster, FromImage and Resize interoperate.
type Raster = intImage.ImageBuf

// Format is the pixel layout ("mode") of a Raster.
type Format = intImage.Format

// Pixel formats. Every 8-bit format can be resampled; FormatGray16 is
// accepted by NewRaster but rejected by Stretch.
const (
	FormatGray8      = intImage.FormatGray8
	FormatGrayAlpha8 = intImage.FormatGrayAlpha8
	FormatGray16     = intImage.FormatGray16
	FormatRGB8       = intImage.FormatRGB8
	FormatRGBA8      = intImage.FormatRGBA8
	FormatRGBAPremul = intImage.FormatRGBAPremul
	FormatBGRA8      = intImage.FormatBGRA8
	FormatBGRAPremul = intImage.FormatBGRAPremul
)

// Pool recycles intermediate rasters between Resize calls.
type Pool = intImage.Pool

// NewPool creates a pool retaining at most maxPerBucket rasters per shape.
func NewPool(maxPerBucket int) *Pool {
	return intImage.NewPool(maxPerBucket)
}

// NewRaster allocates a zeroed raster.
func NewRaster(width, height int, format Format) (*Raster, error) {
	return intImage.NewImageBuf(width, height, format)
}

// Filter selects the resampling kernel.
type Filter = filter.Kind

// Resampling filters.
const (
	// Nearest uses a box kernel of support 0.5.
	Nearest = filter.Nearest
	// Bilinear uses the triangle kernel of support 1.
	Bilinear = filter.Bilinear
	// Bicubic uses the cubic convolution kernel (a = 0) of support 2.
	Bicubic = filter.Bicubic
	// Antialias uses a 3-lobe Lanczos windowed sinc.
	Antialias = filter.Antialias
	// Lanczos is an alias for Antialias.
	Lanczos = filter.Lanczos
)

// ParseFilter maps a filter name ("nearest", "bilinear", "bicubic",
// "antialias" or "lanczos") to a Filter.
func ParseFilter(name string) (Filter, error) {
	return filter.ParseKind(name)
}

// Precision is the number of fractional bits in the fixed-point weights
// applied by the inner loops.
const Precision = filter.Precision

// Axis names the raster dimension being resampled.
type Axis uint8

const (
	// AxisWidth resamples along x; heights must match.
	AxisWidth Axis = iota
	// AxisHeight resamples along y; widths must match.
	AxisHeight
)

// String returns "width" or "height".
func (a Axis) String() string {
	switch a {
	case AxisWidth:
		return "width"
	case AxisHeight:
		return "height"
	default:
		return "unknown"
	}
}
