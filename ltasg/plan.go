package ltasg

import (
	"fmt"
	"math"
)

// Default option values.
const (
	DefaultMinNumPasses     = 2
	DefaultKernelResolution = 2
	DefaultKernelWidth      = 3
)

// Options configure a blur plan.
//
// MipLevelSigmas gives the Gaussian standard deviation of each emitted mip
// level, unitless, relative to the cube face side; the sequence must
// be non-decreasing. KernelResolution is the number of kernel taps per
// pixel (denser sampling costs more and blurs more accurately);
// KernelWidth is the kernel half-extent in standard deviations.
type Options struct {
	ImageSize        int
	MipLevelSigmas   []float32
	MinNumPasses     int
	KernelResolution float32
	KernelWidth      float32
}

// PassSpec describes the convolution chain of one mip level.
type PassSpec struct {
	Size      int
	Sigma     float32
	Kernel    []float32
	Scale     float32
	NumPasses int
}

// Radius returns the kernel radius in taps.
func (ps *PassSpec) Radius() int {
	return len(ps.Kernel) / 2
}

// Plan is the precomputed per-level pass schedule for a sigma sequence.
// A plan is immutable once built and may be shared between goroutines.
type Plan struct {
	Size   int
	Levels []PassSpec
}

// NewPlan decomposes the per-level target sigmas into bounded chains of
// small Gaussian passes. For each level the variance still missing from the
// cumulative target is split into numPasses equal passes whose sigma stays
// below the small-angle limit 0.5/KernelWidth.
func NewPlan(opts Options) (*Plan, error) {
	if opts.ImageSize <= 0 || opts.ImageSize > MaxFaceSize {
		return nil, fmt.Errorf("%w: image size %d", ErrInvalidSize, opts.ImageSize)
	}
	if len(opts.MipLevelSigmas) == 0 {
		return nil, fmt.Errorf("ltasg: at least one mip level sigma required")
	}

	minPasses := opts.MinNumPasses
	if minPasses == 0 {
		minPasses = DefaultMinNumPasses
	}
	if minPasses < 1 {
		return nil, fmt.Errorf("ltasg: min pass count %d must be at least 1", opts.MinNumPasses)
	}

	resolution := opts.KernelResolution
	if resolution == 0 {
		resolution = DefaultKernelResolution
	}
	width := opts.KernelWidth
	if width == 0 {
		width = DefaultKernelWidth
	}
	if resolution < 0 || width < 0 {
		return nil, fmt.Errorf("%w: resolution %g width %g", ErrInvalidKernel, resolution, width)
	}

	// The largest per-pass sigma for which the small-angle assumption of
	// the separable decomposition holds for this kernel width.
	sigmaLimit := 0.5 / float64(width)
	scale := 1 / resolution

	plan := &Plan{
		Size:   opts.ImageSize,
		Levels: make([]PassSpec, 0, len(opts.MipLevelSigmas)),
	}

	// Residues near zero cancel catastrophically in float32; accumulate
	// variance in double precision.
	lastVariance := 0.0
	for level, sigma := range opts.MipLevelSigmas {
		size := levelSize(opts.ImageSize, level)

		if sigma < 0 {
			return nil, fmt.Errorf("%w: level %d sigma %g", ErrNonMonotonicSigmas, level, sigma)
		}
		desiredVariance := float64(sigma) * float64(sigma)
		residueVariance := desiredVariance - lastVariance
		if residueVariance < 0 {
			return nil, fmt.Errorf("%w: level %d sigma %g undershoots level %d", ErrNonMonotonicSigmas, level, sigma, level-1)
		}

		numPasses := int(math.Ceil(residueVariance / (sigmaLimit * sigmaLimit)))
		if numPasses < minPasses {
			numPasses = minPasses
		}

		// Per-pass sigma in pixels at this level's resolution.
		levelSigma := math.Sqrt(residueVariance/float64(numPasses)) * float64(size)

		radius := int(levelSigma * float64(resolution) * float64(width))
		if float32(size) <= float32(radius)*scale*1.8 {
			return nil, fmt.Errorf("%w: level %d radius %d at scale %g exceeds face size %d", ErrInvalidKernel, level, radius, scale, size)
		}

		// The kernel samples at one tap per 1/resolution pixels, so its
		// sigma is expressed in tap units.
		kernel := GaussianKernel(radius, float32(levelSigma*float64(resolution)))

		plan.Levels = append(plan.Levels, PassSpec{
			Size:      size,
			Sigma:     sigma,
			Kernel:    kernel,
			Scale:     scale,
			NumPasses: numPasses,
		})

		// Advance by the cumulative target, not the decomposed residue:
		// numerical slack from one level must not leak into the next.
		lastVariance = desiredVariance
	}

	return plan, nil
}

// levelSize returns the face side length of a mip level, halving and
// rounding up from the base size.
func levelSize(size, level int) int {
	for ; level > 0 && size > 1; level-- {
		size = (size + 1) / 2
	}
	return size
}
