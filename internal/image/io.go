package image

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	// Registered for Decode only; x/image has no WebP encoder.
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when a file extension has no encoder.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// LoadImage decodes the file at path. The container format is detected from
// content, so any registered decoder (PNG, JPEG, GIF, BMP, TIFF, WebP) works.
func LoadImage(path string) (*ImageBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an image from r, auto-detecting the container format.
func Decode(r io.Reader) (*ImageBuf, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); errors.Is(err, io.EOF) {
		return nil, ErrEmptyData
	}
	img, _, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img), nil
}

// SaveImage encodes b to path, choosing the encoder from the extension:
// .png, .jpg/.jpeg, .gif, .bmp, .tif/.tiff.
func (b *ImageBuf) SaveImage(path string, quality int) error {
	enc, err := encoderFor(path, quality)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}
	if err := enc(f, b.ToStdImage()); err != nil {
		_ = f.Close()
		return fmt.Errorf("image: encode %s: %w", filepath.Ext(path), err)
	}
	return f.Close()
}

type encodeFunc func(io.Writer, image.Image) error

func encoderFor(path string, quality int) (encodeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode, nil
	case ".jpg", ".jpeg":
		quality = min(max(quality, 1), 100)
		return func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: quality})
		}, nil
	case ".gif":
		return func(w io.Writer, m image.Image) error {
			return gif.Encode(w, m, nil)
		}, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// FromStdImage copies a standard library image into a tightly packed raster.
// Gray images become FormatGray8, *image.RGBA becomes FormatRGBAPremul and
// everything else FormatRGBA8 with straight alpha.
func FromStdImage(img image.Image) *ImageBuf {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		return copyRows(src.Pix, src.Stride, width, height, FormatGray8)
	case *image.RGBA:
		return copyRows(src.Pix, src.Stride, width, height, FormatRGBAPremul)
	case *image.NRGBA:
		return copyRows(src.Pix, src.Stride, width, height, FormatRGBA8)
	}

	buf, _ := NewImageBuf(width, height, FormatRGBA8)
	for y := range height {
		row := buf.RowBytes(y)
		for x := range width {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if a != 0 && a != 0xffff {
				// color.Color reports premultiplied values.
				r, g, b = r*0xffff/a, g*0xffff/a, b*0xffff/a
			}
			row[x*4] = byte(r >> 8)
			row[x*4+1] = byte(g >> 8)
			row[x*4+2] = byte(b >> 8)
			row[x*4+3] = byte(a >> 8)
		}
	}
	return buf
}

func copyRows(pix []byte, stride, width, height int, format Format) *ImageBuf {
	buf, _ := NewImageBuf(width, height, format)
	n := format.RowBytes(width)
	for y := range height {
		copy(buf.RowBytes(y), pix[y*stride:y*stride+n])
	}
	return buf
}

// ToStdImage converts the raster to a standard library image.
// Gray8 and Gray16 map to their gray counterparts, premultiplied formats to
// *image.RGBA and everything else to *image.NRGBA.
func (b *ImageBuf) ToStdImage() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)

	switch b.format {
	case FormatGray8:
		gray := image.NewGray(rect)
		for y := range b.height {
			copy(gray.Pix[y*gray.Stride:], b.RowBytes(y))
		}
		return gray

	case FormatGray16:
		gray16 := image.NewGray16(rect)
		for y := range b.height {
			row := b.RowBytes(y)
			dst := gray16.Pix[y*gray16.Stride:]
			for x := range b.width {
				// image.Gray16 is big endian.
				dst[x*2] = row[x*2+1]
				dst[x*2+1] = row[x*2]
			}
		}
		return gray16

	case FormatRGBA8:
		nrgba := image.NewNRGBA(rect)
		for y := range b.height {
			copy(nrgba.Pix[y*nrgba.Stride:], b.RowBytes(y))
		}
		return nrgba

	case FormatRGBAPremul:
		rgba := image.NewRGBA(rect)
		for y := range b.height {
			copy(rgba.Pix[y*rgba.Stride:], b.RowBytes(y))
		}
		return rgba

	case FormatBGRAPremul:
		rgba := image.NewRGBA(rect)
		b.expandRGBA(rgba.Pix, rgba.Stride)
		return rgba

	default:
		nrgba := image.NewNRGBA(rect)
		b.expandRGBA(nrgba.Pix, nrgba.Stride)
		return nrgba
	}
}

// expandRGBA writes every pixel as 4 bytes R, G, B, A into pix.
func (b *ImageBuf) expandRGBA(pix []byte, stride int) {
	for y := range b.height {
		dst := pix[y*stride:]
		for x := range b.width {
			r, g, bl, a := b.GetRGBA(x, y)
			dst[x*4] = r
			dst[x*4+1] = g
			dst[x*4+2] = bl
			dst[x*4+3] = a
		}
	}
}
