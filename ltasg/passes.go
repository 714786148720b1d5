package ltasg

import "fmt"

// Scratch holds the two working face sets the pass orchestrator ping-pongs
// between. One scratch sized to the largest mip level serves every smaller
// level of the same pipeline run. A Scratch must not be shared between
// concurrent calls.
type Scratch struct {
	p, q []float32
}

// NewScratch allocates working storage for face sets up to maxSize.
func NewScratch(maxSize int) (*Scratch, error) {
	if maxSize <= 0 || maxSize > MaxFaceSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, maxSize)
	}
	n := FaceCount * maxSize * maxSize * Channels
	return &Scratch{
		p: make([]float32, n),
		q: make([]float32, n),
	}, nil
}

func (s *Scratch) facesets(size int) (p, q *FaceSet, err error) {
	if p, err = WrapFaceSet(s.p, size); err != nil {
		return nil, nil, err
	}
	if q, err = WrapFaceSet(s.q, size); err != nil {
		return nil, nil, err
	}
	return p, q, nil
}

// Blur applies numPasses rounds of the (U, V, W) convolution triple to src
// and writes the result to dst. dst may alias src; the working buffers are
// owned by the call.
func Blur(dst, src *FaceSet, kernel []float32, scale float32, numPasses int) error {
	scratch, err := NewScratch(src.Size)
	if err != nil {
		return err
	}
	return BlurWith(scratch, dst, src, kernel, scale, numPasses)
}

// BlurWith is Blur with caller-provided scratch, letting one allocation be
// recycled across the levels of a mip pipeline.
func BlurWith(scratch *Scratch, dst, src *FaceSet, kernel []float32, scale float32, numPasses int) error {
	if numPasses < 1 {
		return fmt.Errorf("ltasg: pass count %d must be at least 1", numPasses)
	}
	if err := checkKernel(src.Size, kernel, scale); err != nil {
		return err
	}
	if dst.Size != src.Size {
		return fmt.Errorf("%w: destination %d does not match source %d", ErrInvalidSize, dst.Size, src.Size)
	}

	p, q, err := scratch.facesets(src.Size)
	if err != nil {
		return err
	}

	p.CopyFrom(src)
	for pass := 0; pass < numPasses; pass++ {
		for axis := AxisX; axis <= AxisZ; axis++ {
			if err := BlurSingle(q, p, kernel, scale, axis); err != nil {
				return err
			}
			p, q = q, p
		}
	}
	dst.CopyFrom(p)
	return nil
}
