// Package image provides the raster storage used by the resampler.
//
// A raster is a row-major byte buffer described by a pixel Format. The
// resampler only reads and writes whole rows, so every buffer exposes its
// rows independently through RowBytes regardless of stride padding.
package image

// Format represents a pixel storage format (the "mode" of a raster).
type Format uint8

const (
	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8 Format = iota

	// FormatGrayAlpha8 is 8-bit grayscale with 8-bit alpha (2 bytes per pixel).
	FormatGrayAlpha8

	// FormatGray16 is 16-bit grayscale (2 bytes per pixel, little endian).
	// It can be stored and converted but not resampled.
	FormatGray16

	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	FormatRGB8

	// FormatRGBA8 is 32-bit RGBA with straight alpha (4 bytes per pixel).
	FormatRGBA8

	// FormatRGBAPremul is 32-bit RGBA with premultiplied alpha (4 bytes per pixel).
	FormatRGBAPremul

	// FormatBGRA8 is 32-bit BGRA with straight alpha (4 bytes per pixel).
	FormatBGRA8

	// FormatBGRAPremul is 32-bit BGRA with premultiplied alpha (4 bytes per pixel).
	FormatBGRAPremul

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Channels is the number of interleaved channels.
	Channels int

	// BitsPerChannel is the sample width of each channel.
	BitsPerChannel int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// IsPremultiplied indicates if alpha is premultiplied.
	IsPremultiplied bool

	name string
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8:      {BytesPerPixel: 1, Channels: 1, BitsPerChannel: 8, name: "Gray8"},
	FormatGrayAlpha8: {BytesPerPixel: 2, Channels: 2, BitsPerChannel: 8, HasAlpha: true, name: "GrayAlpha8"},
	FormatGray16:     {BytesPerPixel: 2, Channels: 1, BitsPerChannel: 16, name: "Gray16"},
	FormatRGB8:       {BytesPerPixel: 3, Channels: 3, BitsPerChannel: 8, name: "RGB8"},
	FormatRGBA8:      {BytesPerPixel: 4, Channels: 4, BitsPerChannel: 8, HasAlpha: true, name: "RGBA8"},
	FormatRGBAPremul: {BytesPerPixel: 4, Channels: 4, BitsPerChannel: 8, HasAlpha: true, IsPremultiplied: true, name: "RGBAPremul"},
	FormatBGRA8:      {BytesPerPixel: 4, Channels: 4, BitsPerChannel: 8, HasAlpha: true, name: "BGRA8"},
	FormatBGRAPremul: {BytesPerPixel: 4, Channels: 4, BitsPerChannel: 8, HasAlpha: true, IsPremultiplied: true, name: "BGRAPremul"},
}

// Info returns the FormatInfo for this format.
// Unknown formats yield the zero FormatInfo.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// Channels returns the number of interleaved channels.
func (f Format) Channels() int {
	return f.Info().Channels
}

// BitsPerChannel returns the number of bits per channel sample.
func (f Format) BitsPerChannel() int {
	return f.Info().BitsPerChannel
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsPremultiplied returns true if alpha is premultiplied.
func (f Format) IsPremultiplied() bool {
	return f.Info().IsPremultiplied
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// Is8Bit reports whether every channel is an unsigned 8-bit sample, so that
// one pixel is exactly Channels() bytes.
func (f Format) Is8Bit() bool {
	info := f.Info()
	return info.BitsPerChannel == 8 && info.BytesPerPixel == info.Channels
}

// String returns a string representation of the format.
func (f Format) String() string {
	if !f.IsValid() {
		return "Unknown"
	}
	return formatInfoTable[f].name
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}
