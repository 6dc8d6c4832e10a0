package filter

// Fixed-point layout of weights and accumulators.
const (
	// Precision is the number of fractional bits of a weight:
	// 32 bits - 8 result bits - 2 guard bits.
	Precision = 32 - 8 - 2

	// One is the fixed-point representation of 1.0.
	One = 1 << Precision

	// RoundingBias is added to every accumulator so the final shift rounds
	// to nearest instead of truncating.
	RoundingBias = 1 << (Precision - 1)

	// clipMax is the first accumulator value that no longer fits in a byte
	// after shifting.
	clipMax = 1 << (Precision + 8)
)

// Clip8 converts an accumulator to a byte, saturating at 0 and 255.
func Clip8(acc int32) uint8 {
	if acc >= clipMax {
		return 255
	}
	if acc <= 0 {
		return 0
	}
	return uint8(acc >> Precision)
}

// Convolve applies w to one pixel. src is a row of interleaved samples with
// the given channel count; the pixel's channels are written to dst[:channels].
func Convolve(dst, src []byte, channels int, w Window) {
	for c := range channels {
		acc := int32(RoundingBias)
		off := w.Lo*channels + c
		for _, k := range w.Weights {
			acc += int32(src[off]) * k
			off += channels
		}
		dst[c] = Clip8(acc)
	}
}

// ConvolveRow resamples one row horizontally: output pixel x uses
// bank.Window(x) over src. dst must hold bank.Len()*channels bytes.
func ConvolveRow(dst, src []byte, channels int, bank *Bank) {
	for x := range bank.Len() {
		off := x * channels
		Convolve(dst[off:off+channels], src, channels, bank.Window(x))
	}
}

// ResetRow loads the rounding bias into every accumulator.
func ResetRow(acc []int32) {
	for i := range acc {
		acc[i] = RoundingBias
	}
}

// AccumulateRow adds weight*src[i] to acc[i] for a whole row. Vertical
// resampling is channel-agnostic, so acc simply mirrors the row bytes.
func AccumulateRow(acc []int32, src []byte, weight int32) {
	src = src[:len(acc)]
	for i, v := range src {
		acc[i] += int32(v) * weight
	}
}

// ClipRow saturates accumulators into dst.
func ClipRow(dst []byte, acc []int32) {
	dst = dst[:len(acc)]
	for i, v := range acc {
		dst[i] = Clip8(v)
	}
}
