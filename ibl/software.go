package ibl

import (
	"fmt"

	"envmapgen/libio"
	"envmapgen/ltasg"

	"github.com/chewxy/math32"
)

type swResizer struct{}

// NewSwResizer returns a software box-filter Resizer. It supports exactly
// the 2x reductions the pre-filter pipeline requests.
func NewSwResizer() Resizer {
	return &swResizer{}
}

func (*swResizer) Release() {
}

func (*swResizer) Resize(env *IblEnv, size int) (*IblEnv, error) {
	srcSize := env.BaseSize
	if size != CalcLevelSize(srcSize, 1) {
		return nil, fmt.Errorf("ibl: resize %d -> %d is not a halving", srcSize, size)
	}

	result := NewIblEnv(make([]float32, CalcCubeMapFloats(size, 1)), size, 1)

	for face := 0; face < 6; face++ {
		src := env.Face(0, face)
		dst := result.Face(0, face)
		boxHalve(dst, src, size, srcSize)
	}

	return result, nil
}

// boxHalve averages 2x2 source blocks. For odd source sizes the rightmost
// and bottommost blocks clamp onto the last row and column.
func boxHalve(dst, src []float32, size, srcSize int) {
	o := 0
	for y := 0; y < size; y++ {
		sy0 := 2 * y
		sy1 := min(sy0+1, srcSize-1)
		for x := 0; x < size; x++ {
			sx0 := 2 * x
			sx1 := min(sx0+1, srcSize-1)

			i00 := (sy0*srcSize + sx0) * Channels
			i10 := (sy0*srcSize + sx1) * Channels
			i01 := (sy1*srcSize + sx0) * Channels
			i11 := (sy1*srcSize + sx1) * Channels

			for c := 0; c < Channels; c++ {
				dst[o+c] = (src[i00+c] + src[i10+c] + src[i01+c] + src[i11+c]) * 0.25
			}
			o += Channels
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

type swCoercer struct{}

// NewSwCoercer returns a software pixel format Coercer converting between
// 8-bit boundary encodings and premultiplied linear RGBA float.
func NewSwCoercer() Coercer {
	return &swCoercer{}
}

func (*swCoercer) Release() {
}

// CoerceIn expands an 8-bit image to linear premultiplied RGBA float.
// Images without an alpha channel become opaque; srgb selects sRGB decoding
// of the color channels.
func (*swCoercer) CoerceIn(img *libio.IntImage, srgb bool) (*libio.FloatImage, error) {
	if img.Channels < 3 || img.Channels > 4 {
		return nil, fmt.Errorf("%w: %d channel input", ltasg.ErrInvalidFormat, img.Channels)
	}

	count := img.Count()
	pix := make([]float32, count*4)
	for i := 0; i < count; i++ {
		si := i * img.Channels
		var c [4]float32
		c[3] = 1
		for ch := 0; ch < img.Channels; ch++ {
			c[ch] = float32(img.Pix[si+ch]) / 0xff
		}
		if srgb {
			c[0] = libio.SrgbToLinear(c[0])
			c[1] = libio.SrgbToLinear(c[1])
			c[2] = libio.SrgbToLinear(c[2])
		}
		pix[i*4+0] = c[0] * c[3]
		pix[i*4+1] = c[1] * c[3]
		pix[i*4+2] = c[2] * c[3]
		pix[i*4+3] = c[3]
	}

	return libio.NewFloatImage(pix, 4, img.Width, img.Height), nil
}

// CoerceOut converts premultiplied RGBA float back to an 8-bit boundary
// format. Float passthrough is not an 8-bit encoding and is rejected.
func (*swCoercer) CoerceOut(img *libio.FloatImage, format PixelFormat) (*libio.IntImage, error) {
	if img.Channels != 4 {
		return nil, fmt.Errorf("%w: %d channel input", ltasg.ErrInvalidFormat, img.Channels)
	}
	if format != PixelFormatSRGBA8 && format != PixelFormatSRGBX8 {
		return nil, fmt.Errorf("%w: cannot encode %s to 8 bit", ltasg.ErrInvalidFormat, format)
	}

	count := img.Count()
	pix := make([]uint8, count*4)
	for i := 0; i < count; i++ {
		r, g, b, a := img.Pix[i*4+0], img.Pix[i*4+1], img.Pix[i*4+2], img.Pix[i*4+3]
		if a > 0 {
			r /= a
			g /= a
			b /= a
		}
		pix[i*4+0] = encodeSrgbByte(r)
		pix[i*4+1] = encodeSrgbByte(g)
		pix[i*4+2] = encodeSrgbByte(b)
		if format == PixelFormatSRGBX8 {
			pix[i*4+3] = 0xff
		} else {
			pix[i*4+3] = uint8(math32.Min(math32.Max(a, 0), 1)*0xff + 0.5)
		}
	}

	return libio.NewIntImage(pix, 4, img.Width, img.Height), nil
}

func encodeSrgbByte(v float32) uint8 {
	v = libio.LinearToSrgb(math32.Min(math32.Max(v, 0), 1))
	return uint8(v*0xff + 0.5)
}
