// Package filter provides a separable Gaussian blur for interleaved 8-bit
// pixel buffers.
//
// The blur runs two 1D passes (horizontal, then vertical) through a float32
// scratch buffer, so a kernel of n taps costs O(w*h*2n) instead of
// O(w*h*n²). Pixels outside the buffer take the value of the nearest edge
// pixel (clamp-to-edge). Kernels extend to three standard deviations and
// are normalized to sum to 1.
//
// Scratch buffers come from a sync.Pool and kernels are cached per sigma,
// so repeated per-frame blurs of the same size do not allocate.
package filter
