package filter

import (
	"math"

	"github.com/gogpu/bitfx/internal/cache"
)

// GaussianKernel generates a normalized 1D Gaussian kernel for sigma.
//
// The kernel spans 2*ceil(3*sigma)+1 taps. For sigma <= 0 it is the
// identity kernel [1].
func GaussianKernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{1.0}
	}

	halfSize := int(math.Ceil(sigma * 3))
	size := halfSize*2 + 1

	weights := make([]float64, size)
	twoSigmaSq := 2 * sigma * sigma
	var sum float64
	for i := range weights {
		x := float64(i - halfSize)
		weights[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += weights[i]
	}

	kernel := make([]float32, size)
	for i, w := range weights {
		kernel[i] = float32(w / sum)
	}
	return kernel
}

// kernelCacheSize bounds the distinct sigmas kept; the effect uses one.
const kernelCacheSize = 8

var kernels = cache.New[float64, []float32](kernelCacheSize)

// CachedGaussianKernel returns a shared Gaussian kernel for sigma.
// The returned slice must not be modified.
func CachedGaussianKernel(sigma float64) []float32 {
	k, _ := kernels.GetOrCreate(sigma, func() ([]float32, error) {
		return GaussianKernel(sigma), nil
	})
	return k
}

// OptimalKernelSize returns the kernel size used for sigma.
func OptimalKernelSize(sigma float64) int {
	if sigma <= 0 {
		return 1
	}
	halfSize := int(math.Ceil(sigma * 3))
	return halfSize*2 + 1
}
