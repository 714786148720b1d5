package libio

import (
	goimg "image"

	"github.com/chewxy/math32"
)

type image struct {
	Channels      int
	Width, Height int
}

// Index returns the tuple index of pixel (x, y) into the image data.
func (img *image) Index(x, y int) int {
	return x*img.Channels + y*img.Channels*img.Width
}

func (img *image) Count() int {
	return img.Width * img.Height
}

// IntImage is a dense 8-bit raster with 1 to 4 interleaved channels.
type IntImage struct {
	image
	Pix []uint8
}

func NewIntImage(pix []uint8, channels int, width, height int) *IntImage {
	return &IntImage{
		Pix: pix,
		image: image{
			Channels: channels,
			Width:    width,
			Height:   height,
		},
	}
}

// ToRGBA copies the image into a standard library RGBA image, padding
// missing channels with zero color and opaque alpha.
func (img *IntImage) ToRGBA() *goimg.RGBA {
	rgba := goimg.NewRGBA(goimg.Rect(0, 0, img.Width, img.Height))

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := (x + y*img.Width) * img.Channels
			j := (x + y*img.Width) * 4
			for c := 0; c < img.Channels && c < 4; c++ {
				rgba.Pix[j+c] = img.Pix[i+c]
			}
			for c := img.Channels; c < 3; c++ {
				rgba.Pix[j+c] = 0
			}
			if img.Channels < 4 {
				rgba.Pix[j+3] = 0xff
			}
		}
	}

	return rgba
}

// FromRGBA copies a standard library RGBA image into a 4-channel IntImage.
func FromRGBA(rgba *goimg.RGBA) *IntImage {
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		copy(pix[y*w*4:], row)
	}
	return NewIntImage(pix, 4, w, h)
}

// FloatImage is a dense float32 raster with 1 to 4 interleaved channels.
type FloatImage struct {
	image
	Pix []float32
}

func NewFloatImage(pix []float32, channels int, width, height int) *FloatImage {
	return &FloatImage{
		Pix: pix,
		image: image{
			Channels: channels,
			Width:    width,
			Height:   height,
		},
	}
}

// ToIntImage tonemaps the image to 8 bit with the given gamma and
// brightness scale.
func (img *FloatImage) ToIntImage(gamma, scale float32) *IntImage {
	pix := make([]uint8, len(img.Pix))

	for i := 0; i < len(img.Pix); i++ {
		pix[i] = uint8(tonemap(img.Pix[i], 1.0/gamma, scale)*0xff + 0.5)
	}

	return NewIntImage(pix, img.Channels, img.Width, img.Height)
}

func tonemap(value, gamma, scale float32) float32 {
	value = math32.Pow(value, gamma) * scale
	return math32.Min(math32.Max(0.0, value), 1.0)
}

// SrgbToLinear decodes an sRGB channel value in [0, 1].
func SrgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

// LinearToSrgb encodes a linear channel value in [0, 1].
func LinearToSrgb(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math32.Pow(v, 1/2.4) - 0.055
}
