package ltasg

import "fmt"

// Channels is the number of float32 components per pixel. Faces carry
// premultiplied alpha so the alpha channel convolves exactly like color.
const Channels = 4

// MaxFaceSize is the largest supported face side length.
const MaxFaceSize = 32768

// FaceSet is a cube map level: six square RGBA float faces of identical
// size backed by one contiguous allocation.
type FaceSet struct {
	Size  int
	Faces [FaceCount][]float32
	data  []float32
}

// NewFaceSet allocates a zeroed face set with the given side length.
func NewFaceSet(size int) (*FaceSet, error) {
	if size <= 0 || size > MaxFaceSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return wrapFaceSet(make([]float32, FaceCount*size*size*Channels), size), nil
}

// WrapFaceSet builds a face set over caller-owned contiguous storage of at
// least 6*size*size*Channels floats. The faces alias the given slice.
func WrapFaceSet(data []float32, size int) (*FaceSet, error) {
	if size <= 0 || size > MaxFaceSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if len(data) < FaceCount*size*size*Channels {
		return nil, fmt.Errorf("%w: %d floats for six %dx%d faces", ErrInvalidSize, len(data), size, size)
	}
	return wrapFaceSet(data, size), nil
}

func wrapFaceSet(data []float32, size int) *FaceSet {
	s := &FaceSet{
		Size: size,
		data: data,
	}
	o := size * size * Channels
	for f := 0; f < FaceCount; f++ {
		s.Faces[f] = data[f*o : (f+1)*o : (f+1)*o]
	}
	return s
}

// Concat returns the contiguous backing storage of all six faces.
func (s *FaceSet) Concat() []float32 {
	return s.data[:FaceCount*s.Size*s.Size*Channels]
}

// CopyFrom copies the pixel data of src, which must have the same size.
func (s *FaceSet) CopyFrom(src *FaceSet) {
	copy(s.Concat(), src.Concat())
}

func (s *FaceSet) aliases(o *FaceSet) bool {
	return len(s.data) > 0 && len(o.data) > 0 && &s.data[0] == &o.data[0]
}
