package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFromStdImage(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 3))
	gray.SetGray(1, 2, color.Gray{Y: 77})

	rgba := image.NewRGBA(image.Rect(0, 0, 4, 3))
	rgba.SetRGBA(1, 2, color.RGBA{R: 50, G: 40, B: 30, A: 128})

	nrgba := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	nrgba.SetNRGBA(1, 2, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	paletted := image.NewPaletted(image.Rect(0, 0, 4, 3), color.Palette{
		color.NRGBA{A: 255},
		color.NRGBA{R: 10, G: 20, B: 30, A: 255},
	})
	paletted.SetColorIndex(1, 2, 1)

	tests := []struct {
		name   string
		img    image.Image
		format Format
		want   [4]uint8
	}{
		{"gray", gray, FormatGray8, [4]uint8{77, 77, 77, 255}},
		{"rgba keeps premultiplied", rgba, FormatRGBAPremul, [4]uint8{50, 40, 30, 128}},
		{"nrgba", nrgba, FormatRGBA8, [4]uint8{200, 100, 50, 128}},
		{"generic", paletted, FormatRGBA8, [4]uint8{10, 20, 30, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := FromStdImage(tt.img)
			if buf.Format() != tt.format {
				t.Fatalf("Format() = %v, want %v", buf.Format(), tt.format)
			}
			if w, h := buf.Bounds(); w != 4 || h != 3 {
				t.Fatalf("Bounds() = %dx%d, want 4x3", w, h)
			}
			r, g, b, a := buf.GetRGBA(1, 2)
			if got := [4]uint8{r, g, b, a}; got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromStdImageSubImage(t *testing.T) {
	parent := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	parent.SetNRGBA(5, 6, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	sub := parent.SubImage(image.Rect(4, 4, 8, 9))

	buf := FromStdImage(sub)
	if w, h := buf.Bounds(); w != 4 || h != 5 {
		t.Fatalf("Bounds() = %dx%d, want 4x5", w, h)
	}
	if r, g, b, a := buf.GetRGBA(1, 2); r != 1 || g != 2 || b != 3 || a != 4 {
		t.Errorf("pixel = %d %d %d %d, want 1 2 3 4", r, g, b, a)
	}
}

func TestToStdImage(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatGray8, "*image.Gray"},
		{FormatGrayAlpha8, "*image.NRGBA"},
		{FormatGray16, "*image.Gray16"},
		{FormatRGB8, "*image.NRGBA"},
		{FormatRGBA8, "*image.NRGBA"},
		{FormatRGBAPremul, "*image.RGBA"},
		{FormatBGRA8, "*image.NRGBA"},
		{FormatBGRAPremul, "*image.RGBA"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			buf, _ := NewImageBuf(3, 2, tt.format)
			_ = buf.SetRGBA(2, 1, 90, 90, 90, 255)

			img := buf.ToStdImage()
			if got := typeName(img); got != tt.want {
				t.Fatalf("ToStdImage() = %s, want %s", got, tt.want)
			}
			if !img.Bounds().Eq(image.Rect(0, 0, 3, 2)) {
				t.Errorf("Bounds() = %v", img.Bounds())
			}
			r, _, _, a := img.At(2, 1).RGBA()
			if r>>8 != 90 || a>>8 != 255 {
				t.Errorf("At(2, 1) = r %d a %d, want 90 255", r>>8, a>>8)
			}
		})
	}
}

func typeName(img image.Image) string {
	switch img.(type) {
	case *image.Gray:
		return "*image.Gray"
	case *image.Gray16:
		return "*image.Gray16"
	case *image.RGBA:
		return "*image.RGBA"
	case *image.NRGBA:
		return "*image.NRGBA"
	default:
		return "other"
	}
}

func TestToStdImageGray16ByteOrder(t *testing.T) {
	buf, _ := NewImageBuf(1, 1, FormatGray16)
	copy(buf.PixelBytes(0, 0), []byte{0x34, 0x12})

	gray := buf.ToStdImage().(*image.Gray16)
	if got := gray.Gray16At(0, 0).Y; got != 0x1234 {
		t.Errorf("Gray16 = %#x, want 0x1234", got)
	}
}

func testPattern() *ImageBuf {
	buf, _ := NewImageBuf(6, 4, FormatRGBA8)
	for y := range 4 {
		for x := range 6 {
			_ = buf.SetRGBA(x, y, uint8(x*40), uint8(y*60), 128, 255)
		}
	}
	return buf
}

func TestSaveImageLosslessRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := testPattern()

	for _, ext := range []string{".png", ".bmp", ".tif", ".TIFF"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "out"+ext)
			if err := src.SaveImage(path, 0); err != nil {
				t.Fatalf("SaveImage() error = %v", err)
			}
			got, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage() error = %v", err)
			}
			if w, h := got.Bounds(); w != 6 || h != 4 {
				t.Fatalf("Bounds() = %dx%d, want 6x4", w, h)
			}
			for y := range 4 {
				for x := range 6 {
					r1, g1, b1, _ := src.GetRGBA(x, y)
					r2, g2, b2, _ := got.GetRGBA(x, y)
					if r1 != r2 || g1 != g2 || b1 != b2 {
						t.Fatalf("pixel (%d,%d) = %d %d %d, want %d %d %d", x, y, r2, g2, b2, r1, g1, b1)
					}
				}
			}
		})
	}
}

func TestSaveImageLossy(t *testing.T) {
	dir := t.TempDir()
	src := testPattern()

	for _, name := range []string{"out.jpg", "out.jpeg", "out.gif"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := src.SaveImage(path, 250); err != nil {
				t.Fatalf("SaveImage() error = %v", err)
			}
			got, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage() error = %v", err)
			}
			if w, h := got.Bounds(); w != 6 || h != 4 {
				t.Errorf("Bounds() = %dx%d, want 6x4", w, h)
			}
		})
	}
}

func TestSaveImageUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.webp")
	err := testPattern().SaveImage(path, 90)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("SaveImage() error = %v, want ErrUnsupportedFormat", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("SaveImage created a file for an unsupported extension")
	}
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testPattern().ToStdImage()); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(got.Data(), testPattern().Data()) {
		t.Error("decoded PNG differs from source")
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(bytes.NewReader(nil)); !errors.Is(err, ErrEmptyData) {
		t.Errorf("empty input: error = %v, want ErrEmptyData", err)
	}
	if _, err := Decode(bytes.NewReader([]byte("definitely not an image"))); !errors.Is(err, image.ErrFormat) {
		t.Errorf("garbage input: error = %v, want image.ErrFormat", err)
	}
}

func TestDecodeWebPRegistered(t *testing.T) {
	// A truncated WebP header must reach the WebP decoder rather than
	// failing format detection.
	data := []byte("RIFF\x24\x00\x00\x00WEBPVP8 \x18\x00\x00\x00")
	_, err := Decode(bytes.NewReader(data))
	if err == nil {
		t.Fatal("Decode() of truncated WebP succeeded")
	}
	if errors.Is(err, image.ErrFormat) {
		t.Errorf("WebP decoder not registered: %v", err)
	}
}

func TestLoadImageNotFound(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("LoadImage() of a missing file succeeded")
	}
}

func BenchmarkFromStdImage(b *testing.B) {
	img := image.NewNRGBA(image.Rect(0, 0, 1920, 1080))
	for b.Loop() {
		_ = FromStdImage(img)
	}
}

func BenchmarkToStdImage(b *testing.B) {
	buf, _ := NewImageBuf(1920, 1080, FormatBGRA8)
	for b.Loop() {
		_ = buf.ToStdImage()
	}
}
