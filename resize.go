package resample

import (
	"fmt"
	"image"

	intImage "github.com/gogpu/resample/internal/image"
)

// Resize scales src to width x height with two Stretch passes, width
// first. The intermediate raster comes from the pool set by WithPool (or a
// package-level pool) and is returned to it afterwards. The result is a new
// raster; when no dimension changes it is a copy of src.
func Resize(src *Raster, width, height int, f Filter, opts ...Option) (*Raster, error) {
	if src == nil {
		return nil, ErrModeMismatch
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !f.Valid() {
		return nil, ErrUnsupportedFilter
	}
	format := src.Format()
	if !format.Is8Bit() {
		return nil, ErrUnsupportedPixelLayout
	}

	changeW := width != src.Width()
	changeH := height != src.Height()

	switch {
	case !changeW && !changeH:
		return src.Clone(), nil
	case changeW != changeH:
		return stretchInto(width, height, src, f, opts)
	}

	pool := applyOptions(opts).pool
	if pool == nil {
		pool = intImage.DefaultPool()
	}
	tmp := pool.Get(width, src.Height(), format)
	if tmp == nil {
		return nil, fmt.Errorf("%w: intermediate %dx%d %v", ErrOutOfMemory, width, src.Height(), format)
	}
	defer pool.Put(tmp)

	if _, err := Stretch(tmp, src, f, opts...); err != nil {
		return nil, err
	}
	return stretchInto(width, height, tmp, f, opts)
}

func stretchInto(width, height int, src *Raster, f Filter, opts []Option) (*Raster, error) {
	dst, err := NewRaster(width, height, src.Format())
	if err != nil {
		return nil, err
	}
	return Stretch(dst, src, f, opts...)
}

// FromImage copies a standard library image into a Raster. *image.Gray
// becomes FormatGray8, *image.RGBA FormatRGBAPremul, and everything else
// FormatRGBA8.
func FromImage(img image.Image) *Raster {
	return intImage.FromStdImage(img)
}

// ToImage converts a Raster to a standard library image.
func ToImage(r *Raster) image.Image {
	return r.ToStdImage()
}
