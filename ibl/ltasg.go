package ibl

import (
	"fmt"

	"envmapgen/ltasg"
)

// ltasgConvolver is the pre-filter pipeline driver. The pass plan is built
// once at construction and retained read-only; every Convolve call owns its
// scratch, so independent calls may run concurrently.
type ltasgConvolver struct {
	plan    *ltasg.Plan
	resizer Resizer
}

// NewLtasgConvolver builds a Convolver that emits one mip level per entry
// of opts.MipLevelSigmas, each level blurred by a spherical Gaussian with
// the cumulative target sigma. Construction fails fast on invalid sizes,
// non-monotonic sigmas or kernels too large for the face.
func NewLtasgConvolver(opts ltasg.Options) (Convolver, error) {
	plan, err := ltasg.NewPlan(opts)
	if err != nil {
		return nil, err
	}
	return &ltasgConvolver{
		plan:    plan,
		resizer: NewSwResizer(),
	}, nil
}

func (conv *ltasgConvolver) Release() {
	conv.resizer.Release()
}

func (conv *ltasgConvolver) Convolve(env *IblEnv) (*IblEnv, error) {
	if env == nil || len(env.faces) == 0 {
		return nil, fmt.Errorf("%w: no input faces", ltasg.ErrInvalidArity)
	}
	size := conv.plan.Size
	if env.BaseSize != size {
		return nil, fmt.Errorf("%w: environment size %d does not match plan size %d", ltasg.ErrInvalidSize, env.BaseSize, size)
	}
	if len(env.Level(0)) < 6*size*size*Channels {
		return nil, fmt.Errorf("%w: level storage %d below %d", ltasg.ErrInvalidSize, len(env.Level(0)), 6*size*size*Channels)
	}

	levels := len(conv.plan.Levels)
	result := NewIblEnv(make([]float32, CalcCubeMapFloats(size, levels)), size, levels)

	scratch, err := ltasg.NewScratch(size)
	if err != nil {
		return nil, err
	}

	// The caller's storage is never written; level 0 starts from a copy.
	copy(result.Level(0), env.Level(0))

	for lvl, spec := range conv.plan.Levels {
		if lvl > 0 {
			if err := conv.downsample(result, lvl, spec.Size); err != nil {
				return nil, err
			}
		}

		faces, err := ltasg.WrapFaceSet(result.Level(lvl), spec.Size)
		if err != nil {
			return nil, err
		}
		if err := ltasg.BlurWith(scratch, faces, faces, spec.Kernel, spec.Scale, spec.NumPasses); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// downsample fills level lvl of result from the already emitted level
// above it.
func (conv *ltasgConvolver) downsample(result *IblEnv, lvl, size int) error {
	prev := NewIblEnv(result.Level(lvl-1), result.Size(lvl-1), 1)
	small, err := conv.resizer.Resize(prev, size)
	if err != nil {
		return err
	}
	copy(result.Level(lvl), small.Level(0))
	return nil
}
