package ibl

import "envmapgen/libio"

// PixelFormat identifies an encoding at the pipeline boundary. The core
// operates exclusively on premultiplied-alpha RGBA float; the other formats
// exist only for coercion at the edges.
type PixelFormat int

const (
	// PixelFormatRGBAFloatPremul is linear RGBA float32, alpha premultiplied.
	PixelFormatRGBAFloatPremul = PixelFormat(iota)
	// PixelFormatSRGBA8 is 8-bit sRGB with straight alpha.
	PixelFormatSRGBA8
	// PixelFormatSRGBX8 is 8-bit sRGB with the alpha byte forced opaque.
	PixelFormatSRGBX8
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGBAFloatPremul:
		return "rgba-float-premultiplied"
	case PixelFormatSRGBA8:
		return "srgba8"
	case PixelFormatSRGBX8:
		return "srgbx8"
	}
	return "unknown"
}

// Convolver turns a single-level environment into a pre-filtered mip chain.
type Convolver interface {
	Convolve(env *IblEnv) (*IblEnv, error)
	Release()
}

// Resizer downsamples a single-level environment to a smaller face size.
// The pre-filter pipeline only ever requests halvings.
type Resizer interface {
	Resize(env *IblEnv, size int) (*IblEnv, error)
	Release()
}

// Coercer converts faces between boundary encodings and the premultiplied
// RGBA float the core consumes.
type Coercer interface {
	CoerceIn(img *libio.IntImage, srgb bool) (*libio.FloatImage, error)
	CoerceOut(img *libio.FloatImage, format PixelFormat) (*libio.IntImage, error)
	Release()
}
