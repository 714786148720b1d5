package ibl

import (
	"fmt"

	"envmapgen/libio"
	"envmapgen/ltasg"
)

// Prefilter runs the full pipeline on six 8-bit face images: coerce to
// premultiplied linear RGBA float, convolve into a mip chain, and coerce
// every emitted level back to the requested output format. The input images
// are not mutated. The result is one slice of six faces per mip level,
// level 0 first.
//
// Callers that already hold float data use conv.Convolve directly; an
// outFormat that is not an 8-bit encoding is rejected by the coercer.
func Prefilter(conv Convolver, coercer Coercer, faces []*libio.IntImage, inSrgb bool, outFormat PixelFormat) ([][]*libio.IntImage, error) {
	if len(faces) < 6 {
		return nil, fmt.Errorf("%w: got %d", ltasg.ErrInvalidArity, len(faces))
	}
	faces = faces[:6]

	size := faces[0].Width
	for i, img := range faces {
		if img.Width != size || img.Height != size {
			return nil, fmt.Errorf("%w: face %d is %dx%d, want %dx%d", ltasg.ErrInvalidSize, i, img.Width, img.Height, size, size)
		}
	}

	data := make([]float32, CalcCubeMapFloats(size, 1))
	env := NewIblEnv(data, size, 1)
	for i, img := range faces {
		flt, err := coercer.CoerceIn(img, inSrgb)
		if err != nil {
			return nil, fmt.Errorf("coercing face %d: %w", i, err)
		}
		if copy(env.Face(0, i), flt.Pix) < len(env.Face(0, i)) {
			return nil, fmt.Errorf("%w: face %d storage too small", ltasg.ErrInvalidSize, i)
		}
	}

	result, err := conv.Convolve(env)
	if err != nil {
		return nil, err
	}

	out := make([][]*libio.IntImage, result.Levels)
	for lvl := 0; lvl < result.Levels; lvl++ {
		lvlsize := result.Size(lvl)
		out[lvl] = make([]*libio.IntImage, 6)
		for f := 0; f < 6; f++ {
			flt := libio.NewFloatImage(result.Face(lvl, f), 4, lvlsize, lvlsize)
			img, err := coercer.CoerceOut(flt, outFormat)
			if err != nil {
				return nil, fmt.Errorf("coercing level %d face %d: %w", lvl, f, err)
			}
			out[lvl][f] = img
		}
	}

	return out, nil
}
