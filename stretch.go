package resample

import (
	"context"
	"log/slog"

	"github.com/gogpu/resample/internal/filter"
)

// Stretch resamples src into dst along the single axis on which their sizes
// differ, overwriting every pixel of dst. src is not modified.
//
// dst and src must share a Format (else ErrModeMismatch) and differ in
// exactly one of width or height (else ErrAxisMismatch). The format must be
// 1 to 4 channels of 8-bit samples (else ErrUnsupportedPixelLayout).
//
// Resampling along the height runs row by row, planning each output row's
// window as it goes. Resampling along the width plans every output column
// once and reuses those windows for all rows.
//
// On error the contents of dst are unspecified.
func Stretch(dst, src *Raster, f Filter, opts ...Option) (*Raster, error) {
	if dst == nil || src == nil || dst.Format() != src.Format() {
		return nil, ErrModeMismatch
	}

	var axis Axis
	switch {
	case dst.Height() == src.Height() && dst.Width() != src.Width():
		axis = AxisWidth
	case dst.Width() == src.Width() && dst.Height() != src.Height():
		axis = AxisHeight
	default:
		return nil, ErrAxisMismatch
	}

	return stretch(dst, src, axis, f, opts)
}

// StretchAxis is Stretch with the axis named by the caller. The other
// dimension must match; the named one may be equal, which resamples in
// place of a copy (with Nearest the result is byte-identical to src).
func StretchAxis(dst, src *Raster, axis Axis, f Filter, opts ...Option) (*Raster, error) {
	if dst == nil || src == nil || dst.Format() != src.Format() {
		return nil, ErrModeMismatch
	}

	switch axis {
	case AxisWidth:
		if dst.Height() != src.Height() {
			return nil, ErrAxisMismatch
		}
	case AxisHeight:
		if dst.Width() != src.Width() {
			return nil, ErrAxisMismatch
		}
	default:
		return nil, ErrAxisMismatch
	}

	return stretch(dst, src, axis, f, opts)
}

// stretch runs after the geometry checks. Nothing is allocated before the
// filter and layout are known to be supported.
func stretch(dst, src *Raster, axis Axis, f Filter, opts []Option) (*Raster, error) {
	if !f.Valid() {
		return nil, ErrUnsupportedFilter
	}
	format := src.Format()
	channels := format.Channels()
	if !format.Is8Bit() || channels < 1 || channels > 4 {
		return nil, ErrUnsupportedPixelLayout
	}

	inN, outN := src.Width(), dst.Width()
	if axis == AxisHeight {
		inN, outN = src.Height(), dst.Height()
	}
	plan, err := filter.NewPlan(f, inN, outN)
	if err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	if o.lock != nil {
		o.lock.Unlock()
		defer o.lock.Lock()
	}

	arena := filter.NewArena(o.bufferLimit)
	defer arena.Release()

	log := Logger()
	ctx := context.Background()
	log.LogAttrs(ctx, slog.LevelDebug, "resample: stretch",
		slog.String("filter", f.String()),
		slog.String("format", format.String()),
		slog.Int("in", inN),
		slog.Int("out", outN),
		slog.Float64("scale", plan.Scale),
		slog.Float64("support", plan.Support),
		slog.Int("kmax", plan.KMax),
		slog.String("pass", passName(axis)))

	if axis == AxisHeight {
		err = verticalPass(dst, src, plan, arena)
	} else {
		err = horizontalPass(dst, src, plan, channels, arena)
	}
	if err != nil {
		return nil, err
	}

	log.LogAttrs(ctx, slog.LevelDebug, "resample: stretch done",
		slog.Int64("scratch_bytes", arena.Used()),
		slog.Int("scratch_buffers", arena.Live()))
	return dst, nil
}

func passName(axis Axis) string {
	if axis == AxisHeight {
		return "vertical"
	}
	return "horizontal"
}

// verticalPass resamples along y. Each output row has its own window, used
// exactly once, so windows are planned on the fly into one reusable buffer
// and applied to whole rows at a time.
func verticalPass(dst, src *Raster, plan filter.Plan, arena *filter.Arena) error {
	raw, err := arena.Float64s(plan.KMax)
	if err != nil {
		return err
	}
	weights, err := arena.Int32s(plan.KMax)
	if err != nil {
		return err
	}
	acc, err := arena.Int32s(len(src.RowBytes(0)))
	if err != nil {
		return err
	}

	for yy := range plan.OutSize {
		w, err := plan.Window(yy, raw, weights)
		if err != nil {
			return err
		}
		filter.ResetRow(acc)
		for k, weight := range w.Weights {
			filter.AccumulateRow(acc, src.RowBytes(w.Lo+k), weight)
		}
		filter.ClipRow(dst.RowBytes(yy), acc)
	}
	return nil
}

// horizontalPass resamples along x. Every row reuses the same column
// windows, so they are planned once up front.
func horizontalPass(dst, src *Raster, plan filter.Plan, channels int, arena *filter.Arena) error {
	bank, err := plan.Bank(arena)
	if err != nil {
		return err
	}

	for y := range dst.Height() {
		filter.ConvolveRow(dst.RowBytes(y), src.RowBytes(y), channels, bank)
	}
	return nil
}
