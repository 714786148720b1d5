package ltasg

import "github.com/chewxy/math32"

// GaussianKernel returns a normalized kernel of length 2*radius+1 sampled
// from a Gaussian with standard deviation sigma, in units of kernel taps.
// A radius of zero or a non-positive sigma yields the identity kernel.
func GaussianKernel(radius int, sigma float32) []float32 {
	if radius <= 0 || sigma <= 0 {
		kernel := make([]float32, 2*max(radius, 0)+1)
		kernel[len(kernel)/2] = 1
		return kernel
	}

	kernel := make([]float32, 2*radius+1)
	inv := 1 / sigma
	var sum float32
	for i := range kernel {
		x := float32(i-radius) * inv
		w := math32.Exp(-0.5 * x * x)
		kernel[i] = w
		sum += w
	}

	inv = 1 / sum
	for i := range kernel {
		kernel[i] *= inv
	}

	return kernel
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
