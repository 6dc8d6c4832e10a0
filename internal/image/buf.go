package image

import (
	"bytes"
	"errors"
)

// Common errors for raster operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("image: stride too small for width")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// ImageBuf is a row-major raster.
//
// Pixel data lives in one contiguous slice; row y starts at y*stride and
// holds Format().RowBytes(width) meaningful bytes. Stride may be larger than
// the row length (sub-images, aligned buffers), so callers that walk pixels
// must go through RowBytes rather than indexing Data directly.
//
// Thread safety: concurrent reads are safe. Writes require external
// synchronization.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	stride int
	format Format
}

// NewImageBuf creates a zeroed raster with the given dimensions and format.
func NewImageBuf(width, height int, format Format) (*ImageBuf, error) {
	return NewImageBufWithStride(width, height, format, format.RowBytes(width))
}

// NewImageBufWithStride creates a zeroed raster with custom stride.
// Stride must be at least format.RowBytes(width).
func NewImageBufWithStride(width, height int, format Format, stride int) (*ImageBuf, error) {
	if err := checkGeometry(width, height, format, stride); err != nil {
		return nil, err
	}
	return &ImageBuf{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

func checkGeometry(width, height int, format Format, stride int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	if !format.IsValid() {
		return ErrInvalidFormat
	}
	if stride < format.RowBytes(width) {
		return ErrInvalidStride
	}
	return nil
}

// Clone creates a deep, tightly packed copy of the raster.
func (b *ImageBuf) Clone() *ImageBuf {
	c, _ := NewImageBuf(b.width, b.height, b.format)
	for y := range b.height {
		copy(c.RowBytes(y), b.RowBytes(y))
	}
	return c
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Stride returns the number of bytes between the starts of adjacent rows.
func (b *ImageBuf) Stride() int {
	return b.stride
}

// Format returns the pixel format.
func (b *ImageBuf) Format() Format {
	return b.format
}

// Bounds returns the image dimensions as (width, height).
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the raw pixel data slice, including stride padding.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// RowBytes returns the pixel bytes of row y without padding.
// Returns nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+b.format.RowBytes(b.width)]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.format.BytesPerPixel()
}

// PixelBytes returns the raw bytes for pixel (x, y).
// Returns nil if coordinates are out of bounds.
func (b *ImageBuf) PixelBytes(x, y int) []byte {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return nil
	}
	return b.data[offset : offset+b.format.BytesPerPixel()]
}

// GetRGBA returns the color at (x, y) as (r, g, b, a) in 0-255 range.
// Gray formats expand to r=g=b; formats without alpha report a=255.
// Returns (0,0,0,0) if coordinates are out of bounds.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	p := b.PixelBytes(x, y)
	if p == nil {
		return 0, 0, 0, 0
	}

	switch b.format {
	case FormatGray8:
		return p[0], p[0], p[0], 255
	case FormatGrayAlpha8:
		return p[0], p[0], p[0], p[1]
	case FormatGray16:
		return p[1], p[1], p[1], 255
	case FormatRGB8:
		return p[0], p[1], p[2], 255
	case FormatRGBA8, FormatRGBAPremul:
		return p[0], p[1], p[2], p[3]
	case FormatBGRA8, FormatBGRAPremul:
		return p[2], p[1], p[0], p[3]
	default:
		return 0, 0, 0, 0
	}
}

// SetRGBA stores (r, g, b, a) at (x, y).
// Gray formats store the Rec. 601 luma of the color.
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, a uint8) error {
	p := b.PixelBytes(x, y)
	if p == nil {
		return ErrOutOfBounds
	}

	switch b.format {
	case FormatGray8:
		p[0] = luma(r, g, bl)
	case FormatGrayAlpha8:
		p[0] = luma(r, g, bl)
		p[1] = a
	case FormatGray16:
		v := luma(r, g, bl)
		p[0], p[1] = v, v
	case FormatRGB8:
		p[0], p[1], p[2] = r, g, bl
	case FormatRGBA8, FormatRGBAPremul:
		p[0], p[1], p[2], p[3] = r, g, bl, a
	case FormatBGRA8, FormatBGRAPremul:
		p[0], p[1], p[2], p[3] = bl, g, r, a
	}
	return nil
}

func luma(r, g, b uint8) uint8 {
	return uint8((int(r)*299 + int(g)*587 + int(b)*114) / 1000)
}

// Clear sets all bytes to zero.
func (b *ImageBuf) Clear() {
	clear(b.data)
}

// Premultiply converts straight-alpha RGBA8 and BGRA8 rasters to their
// premultiplied formats in place and returns b. Other formats are returned
// unchanged.
func (b *ImageBuf) Premultiply() *ImageBuf {
	var to Format
	switch b.format {
	case FormatRGBA8:
		to = FormatRGBAPremul
	case FormatBGRA8:
		to = FormatBGRAPremul
	default:
		return b
	}
	for y := range b.height {
		row := b.RowBytes(y)
		for i := 0; i+3 < len(row); i += 4 {
			a := uint32(row[i+3])
			if a == 255 {
				continue
			}
			row[i] = uint8((uint32(row[i])*a + 127) / 255)
			row[i+1] = uint8((uint32(row[i+1])*a + 127) / 255)
			row[i+2] = uint8((uint32(row[i+2])*a + 127) / 255)
		}
	}
	b.format = to
	return b
}

// Equal reports whether two rasters have the same geometry, format and
// pixel bytes. Stride padding is ignored.
func (b *ImageBuf) Equal(o *ImageBuf) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.width != o.width || b.height != o.height || b.format != o.format {
		return false
	}
	for y := range b.height {
		if !bytes.Equal(b.RowBytes(y), o.RowBytes(y)) {
			return false
		}
	}
	return true
}

// SubImage returns a view into a rectangular region of the image.
// The view shares pixel data with b. Returns nil if the region is empty or
// not fully inside the image.
func (b *ImageBuf) SubImage(x, y, width, height int) *ImageBuf {
	if x < 0 || y < 0 || width <= 0 || height <= 0 {
		return nil
	}
	if x+width > b.width || y+height > b.height {
		return nil
	}

	bpp := b.format.BytesPerPixel()
	start := y*b.stride + x*bpp
	end := (y+height-1)*b.stride + (x+width)*bpp

	return &ImageBuf{
		data:   b.data[start:end],
		width:  width,
		height: height,
		stride: b.stride,
		format: b.format,
	}
}
