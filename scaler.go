package resample

import (
	"context"
	"image"
	"log/slog"

	"golang.org/x/image/draw"
)

// Scaler adapts the resampler to golang.org/x/image/draw, so it can be
// used wherever a draw.Scaler is accepted.
//
// The source rectangle is copied into a premultiplied RGBA raster (through
// the source mask, if any), resized with Filter, and composited onto dst
// with the requested Op. Filtering premultiplied samples keeps transparent
// pixels from bleeding black into their neighbours.
type Scaler struct {
	Filter  Filter
	Options []Option
}

var _ draw.Scaler = Scaler{}

// Scale implements draw.Scaler. Failures are logged at warn level because
// the interface has no error return; dst is left untouched in that case.
func (s Scaler) Scale(dst draw.Image, dr image.Rectangle, src image.Image, sr image.Rectangle, op draw.Op, opts *draw.Options) {
	if dr.Empty() {
		return
	}
	sr = sr.Intersect(src.Bounds())
	if sr.Empty() {
		return
	}

	tmp := image.NewRGBA(image.Rect(0, 0, sr.Dx(), sr.Dy()))
	if opts != nil && opts.SrcMask != nil {
		draw.DrawMask(tmp, tmp.Bounds(), src, sr.Min, opts.SrcMask, opts.SrcMaskP.Add(sr.Min), draw.Src)
	} else {
		draw.Draw(tmp, tmp.Bounds(), src, sr.Min, draw.Src)
	}

	out, err := Resize(FromImage(tmp), dr.Dx(), dr.Dy(), s.Filter, s.Options...)
	if err != nil {
		Logger().LogAttrs(context.Background(), slog.LevelWarn, "resample: scale failed",
			slog.String("filter", s.Filter.String()),
			slog.String("dst", dr.String()),
			slog.String("src", sr.String()),
			slog.Any("error", err))
		return
	}

	res := out.ToStdImage()
	if opts != nil && opts.DstMask != nil {
		draw.DrawMask(dst, dr, res, image.Point{}, opts.DstMask, opts.DstMaskP, op)
		return
	}
	draw.Draw(dst, dr, res, image.Point{}, op)
}
