package ltasg_test

import (
	"errors"
	"testing"

	"envmapgen/ltasg"

	"github.com/chewxy/math32"
)

func TestBlurSingleIdentityKernel(t *testing.T) {
	src := randomFaceSet(t, 16, 0, 4)
	dst := emptyFaceSet(t, 16)

	for axis := ltasg.AxisX; axis <= ltasg.AxisZ; axis++ {
		err := ltasg.BlurSingle(dst, src, []float32{1}, 0.5, axis)
		if err != nil {
			t.Fatal(err)
		}

		srcPix, dstPix := src.Concat(), dst.Concat()
		for i := range srcPix {
			if dstPix[i] != srcPix[i] {
				t.Fatalf("axis %d: identity kernel changed sample %d from %g to %g", axis, i, srcPix[i], dstPix[i])
			}
		}
	}
}

func TestBlurSingleConstantPreserved(t *testing.T) {
	color := [4]float32{0.5, 0.25, 0.75, 1.0}
	src := constantFaceSet(t, 32, color)
	dst := emptyFaceSet(t, 32)
	kernel := ltasg.GaussianKernel(6, 3)

	for axis := ltasg.AxisX; axis <= ltasg.AxisZ; axis++ {
		err := ltasg.BlurSingle(dst, src, kernel, 0.5, axis)
		if err != nil {
			t.Fatal(err)
		}

		dstPix := dst.Concat()
		for i, v := range dstPix {
			want := color[i%4]
			if math32.Abs(v-want) > 1e-5 {
				t.Fatalf("axis %d: constant input drifted at sample %d: %g, want %g", axis, i, v, want)
			}
		}
	}
}

func TestBlurSingleNonNegative(t *testing.T) {
	src := randomFaceSet(t, 16, 0, 8)
	dst := emptyFaceSet(t, 16)
	kernel := ltasg.GaussianKernel(4, 2)

	for axis := ltasg.AxisX; axis <= ltasg.AxisZ; axis++ {
		err := ltasg.BlurSingle(dst, src, kernel, 0.5, axis)
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range dst.Concat() {
			if v < 0 {
				t.Fatalf("axis %d: negative output %g at sample %d for non-negative input", axis, v, i)
			}
		}
	}
}

// A pattern that only depends on the distance from the face center is
// invariant under every cube rotation when all six faces carry it. The
// three passes of a round do not commute exactly, so the blurred faces
// agree up to a small reordering error rather than bitwise.
func TestBlurIdenticalFacesStayIdentical(t *testing.T) {
	size := 16
	src := emptyFaceSet(t, size)
	for f := 0; f < ltasg.FaceCount; f++ {
		face := src.Faces[f]
		o := 0
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				cu := (2*float32(x)+1)/float32(size) - 1
				cv := (2*float32(y)+1)/float32(size) - 1
				v := 1 / (1 + cu*cu + cv*cv)
				face[o+0] = v
				face[o+1] = v * 0.5
				face[o+2] = 1 - v
				face[o+3] = 1
				o += ltasg.Channels
			}
		}
	}

	dst := emptyFaceSet(t, size)
	err := ltasg.Blur(dst, src, ltasg.GaussianKernel(4, 2), 0.5, 2)
	if err != nil {
		t.Fatal(err)
	}

	first := dst.Faces[0]
	for f := 1; f < ltasg.FaceCount; f++ {
		if d := maxAbsDiff(first, dst.Faces[f]); d > 0.02 {
			t.Errorf("face %d diverged from face 0 by %g", f, d)
		}
	}
}

// A delta at the exact corner of +X must spread onto the two faces sharing
// that corner, keep off the opposite face, and keep its total energy.
func TestBlurCornerDelta(t *testing.T) {
	size := 32
	src := emptyFaceSet(t, size)
	src.Faces[ltasg.FacePositiveX][0] = 1
	src.Faces[ltasg.FacePositiveX][3] = 1

	dst := emptyFaceSet(t, size)
	err := ltasg.Blur(dst, src, ltasg.GaussianKernel(6, 2), 0.5, 1)
	if err != nil {
		t.Fatal(err)
	}

	var perFace [6]float64
	for f := 0; f < ltasg.FaceCount; f++ {
		var sum float64
		face := dst.Faces[f]
		for i := 0; i < len(face); i += ltasg.Channels {
			if face[i] < 0 {
				t.Fatalf("negative sample on face %d", f)
			}
			sum += float64(face[i])
		}
		perFace[f] = sum
	}

	// Pixel (0, 0) of +X touches the -U neighbor (+Z) and the -V
	// neighbor (+Y).
	if perFace[ltasg.FacePositiveZ] == 0 {
		t.Error("no energy spread onto +z")
	}
	if perFace[ltasg.FacePositiveY] == 0 {
		t.Error("no energy spread onto +y")
	}
	if perFace[ltasg.FaceNegativeX] != 0 {
		t.Errorf("energy %g reached the opposite face", perFace[ltasg.FaceNegativeX])
	}

	var total float64
	for _, s := range perFace {
		total += s
	}
	// A single pixel's spread weight quantizes tap by tap; the seam
	// handling keeps it near unity but not exact.
	if total < 0.92 || total > 1.08 {
		t.Errorf("total energy %g drifted too far from 1", total)
	}
}

// Blurring a whole random field conserves its total energy much more
// tightly than any single pixel: per-pixel quantization cancels out.
func TestBlurFieldEnergy(t *testing.T) {
	src := randomFaceSet(t, 16, 0, 1)
	dst := emptyFaceSet(t, 16)

	err := ltasg.Blur(dst, src, ltasg.GaussianKernel(4, 2), 0.5, 2)
	if err != nil {
		t.Fatal(err)
	}

	before := channelSum(src, 0)
	after := channelSum(dst, 0)
	if ratio := after / before; ratio < 0.99 || ratio > 1.01 {
		t.Errorf("field energy changed by factor %g", ratio)
	}
}

func TestBlurSingleRejects(t *testing.T) {
	src := randomFaceSet(t, 8, 0, 1)
	dst := emptyFaceSet(t, 8)

	err := ltasg.BlurSingle(dst, src, []float32{0.5, 0.5}, 0.5, ltasg.AxisX)
	if !errors.Is(err, ltasg.ErrInvalidKernel) {
		t.Errorf("even kernel: got %v, want ErrInvalidKernel", err)
	}

	err = ltasg.BlurSingle(dst, src, []float32{1}, 0, ltasg.AxisX)
	if !errors.Is(err, ltasg.ErrInvalidKernel) {
		t.Errorf("zero scale: got %v, want ErrInvalidKernel", err)
	}

	// Radius 9 at scale 1 exceeds the sqrt(3) footprint bound on an
	// 8 pixel face.
	err = ltasg.BlurSingle(dst, src, ltasg.GaussianKernel(9, 3), 1, ltasg.AxisX)
	if !errors.Is(err, ltasg.ErrInvalidKernel) {
		t.Errorf("oversized kernel: got %v, want ErrInvalidKernel", err)
	}

	err = ltasg.BlurSingle(src, src, []float32{1}, 0.5, ltasg.AxisX)
	if !errors.Is(err, ltasg.ErrInvalidSize) {
		t.Errorf("aliased buffers: got %v, want ErrInvalidSize", err)
	}

	big := randomFaceSet(t, 16, 0, 1)
	err = ltasg.BlurSingle(dst, big, []float32{1}, 0.5, ltasg.AxisX)
	if !errors.Is(err, ltasg.ErrInvalidSize) {
		t.Errorf("size mismatch: got %v, want ErrInvalidSize", err)
	}
}
