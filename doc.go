// Package resample resizes 8-bit rasters one axis at a time.
//
// # Overview
//
// Stretch maps a source raster onto a destination that differs from it in
// exactly one dimension, using one of four kernels:
//
//   - Nearest: box, support 0.5
//   - Bilinear: triangle, support 1
//   - Bicubic: cubic convolution (a = 0), support 2
//   - Antialias: 3-lobe Lanczos windowed sinc, support 3
//
// When downscaling, the kernel is widened by the scale factor so every
// output sample averages all the input it covers. When upscaling it is used
// as is, keeping interpolation local.
//
// # Quick Start
//
//	src, _ := resample.NewRaster(640, 480, resample.FormatRGBA8)
//	dst, _ := resample.NewRaster(320, 480, resample.FormatRGBA8)
//	if _, err := resample.Stretch(dst, src, resample.Antialias); err != nil {
//	    return err
//	}
//
//	// Both axes at once (two passes):
//	thumb, err := resample.Resize(src, 160, 120, resample.Bicubic)
//
// # Fixed-point Arithmetic
//
// Weights are normalized per output sample and quantized to int32 with
// [Precision] fractional bits. The inner loops are integer-only and
// saturate their results to [0, 255].
//
// # Host Locks
//
// Callers embedding the resampler behind a coarse lock pass it with
// [WithLock]. The lock is released for the duration of the computation and
// reacquired before returning.
//
// # Supported Layouts
//
// Gray8, GrayAlpha8, RGB8 and the 4-channel RGBA/BGRA formats (straight or
// premultiplied). Channels are filtered independently.
package resample

// Version is the current version of the library.
const Version = "0.3.0"
