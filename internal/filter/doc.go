// Package filter implements one-dimensional resampling along a raster axis.
//
// The package is split along the stages of a resample:
//   - Kind: the continuous kernels (nearest, bilinear, bicubic, antialias)
//   - Plan: per-output-coordinate windows of normalized, fixed-point weights
//   - Convolve, ConvolveRow, AccumulateRow: integer inner loops that apply
//     one window and saturate the result to a byte
//   - Arena: per-call scratch memory with a byte budget
//
// Weights are int32 values scaled by 2^Precision. Precision leaves 8 bits for
// the sample value and 2 guard bits for kernels whose lobes overshoot, so an
// int32 accumulator never overflows for 8-bit input.
package filter
