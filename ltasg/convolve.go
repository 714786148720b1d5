package ltasg

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Axis selects the world axis of a single convolution pass. The two faces
// perpendicular to the axis blur radially from their centers; the other
// four blur along the in-plane direction that wraps around the cube in
// that axis, so each pass smears along one globally consistent family of
// lines. One full round is X, then Y, then Z, which gives every face one
// pass along each of its local U, V and radial directions.
type Axis int

const (
	AxisX = Axis(iota)
	AxisY
	AxisZ
)

// BlurSingle convolves all six faces of src along one world axis into dst.
// The kernel must have odd length and scale gives the tap stride in pixels
// per kernel step. The effective stride at each pixel is scaled by the cube
// map projection factor sqrt(1+u²+v²), up to sqrt(3) at the corners, which
// is why the kernel footprint must satisfy size > radius*scale*1.8: no tap
// may reach past the directly adjacent face.
//
// dst and src must be distinct storage of equal size.
func BlurSingle(dst, src *FaceSet, kernel []float32, scale float32, axis Axis) error {
	if axis < AxisX || axis > AxisZ {
		return fmt.Errorf("ltasg: invalid axis %d", axis)
	}
	if err := checkKernel(src.Size, kernel, scale); err != nil {
		return err
	}
	if dst.Size != src.Size {
		return fmt.Errorf("%w: destination %d does not match source %d", ErrInvalidSize, dst.Size, src.Size)
	}
	if dst.aliases(src) {
		return fmt.Errorf("%w: destination must not alias source", ErrInvalidSize)
	}

	axisFace := Face(2 * axis)
	for f := FacePositiveX; f <= FaceNegativeZ; f++ {
		if f.Abs() == axisFace {
			blurFaceRadial(dst.Faces[f], src, f, kernel, scale)
		} else {
			blurFaceDirectional(dst.Faces[f], src, f, kernel, scale, f.UFace().Abs() == axisFace)
		}
	}
	return nil
}

func checkKernel(size int, kernel []float32, scale float32) error {
	if len(kernel)%2 != 1 {
		return fmt.Errorf("%w: even length %d", ErrInvalidKernel, len(kernel))
	}
	if scale <= 0 {
		return fmt.Errorf("%w: non-positive scale %g", ErrInvalidKernel, scale)
	}
	if size <= 0 || size > MaxFaceSize {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	radius := len(kernel) / 2
	if float32(size) <= float32(radius)*scale*1.8 {
		return fmt.Errorf("%w: radius %d at scale %g exceeds face size %d", ErrInvalidKernel, radius, scale, size)
	}
	return nil
}

// blurFaceDirectional convolves one face along its U or V axis. Taps that
// leave the face continue onto the adjacent face: the overflow distance
// becomes the depth into the neighbor, and the other coordinate drifts
// toward the neighbor's center at the rate given by the pixel's own
// off-center coordinate, which is the first order continuation of the
// world line the pass blurs along.
func blurFaceDirectional(out []float32, src *FaceSet, face Face, kernel []float32, scale float32, alongU bool) {
	size := src.Size
	radius := len(kernel) / 2
	in := src.Faces[face]

	brdMin := float32(-0.5)
	brdMax := float32(size) - 0.5

	var ePos, eNeg edge
	if alongU {
		ePos, eNeg = edgePosU, edgeNegU
	} else {
		ePos, eNeg = edgePosV, edgeNegV
	}

	duv := 2 / float32(size)
	corner := 1/float32(size) - 1

	o := 0
	cv := corner
	for y := 0; y < size; y++ {
		cu := corner
		for x := 0; x < size; x++ {
			local := scale * math32.Sqrt(1+cu*cu+cv*cv)

			var m0, minor int
			var cn float32
			if alongU {
				m0, minor, cn = x, y, cv
			} else {
				m0, minor, cn = y, x, cu
			}

			mf := float32(m0) - local*float32(radius)

			var r, g, b, a float32
			for _, w := range kernel {
				var px []float32
				var si int
				switch {
				case mf <= brdMin:
					dist := brdMin - mf
					sf, su, sv := resolveEdge(face, eNeg, int(dist), roundCoord(float32(minor)-dist*cn), size)
					px = src.Faces[sf]
					si = (sv*size + su) * Channels
				case mf >= brdMax:
					dist := mf - brdMax
					sf, su, sv := resolveEdge(face, ePos, int(dist), roundCoord(float32(minor)-dist*cn), size)
					px = src.Faces[sf]
					si = (sv*size + su) * Channels
				default:
					mi := roundCoord(mf)
					px = in
					if alongU {
						si = (y*size + mi) * Channels
					} else {
						si = (mi*size + x) * Channels
					}
				}

				r += w * px[si+0]
				g += w * px[si+1]
				b += w * px[si+2]
				a += w * px[si+3]

				mf += local
			}

			out[o+0] = r
			out[o+1] = g
			out[o+2] = b
			out[o+3] = a
			o += Channels

			cu += duv
		}
		cv += duv
	}
}

// blurFaceRadial convolves one of the two faces perpendicular to the pass
// axis. The blur lines run radially through the face center, so the step
// vector at each pixel points along its own (u, v) offset; the center tap
// is the identity. A footprint that leaves the face continues onto the
// neighbor across the dominant axis as a straight line at the projected
// crossing coordinate.
func blurFaceRadial(out []float32, src *FaceSet, face Face, kernel []float32, scale float32) {
	size := src.Size
	radius := len(kernel) / 2
	in := src.Faces[face]

	brdMin := float32(-0.5)
	brdMax := float32(size) - 0.5

	duv := 2 / float32(size)
	corner := 1/float32(size) - 1

	o := 0
	cv := corner
	for y := 0; y < size; y++ {
		cu := corner
		for x := 0; x < size; x++ {
			local := scale * math32.Sqrt(1+cu*cu+cv*cv)
			dfx := cu * local
			dfy := cv * local
			mx := float32(x) - dfx*float32(radius)
			my := float32(y) - dfy*float32(radius)

			majorIsV := math32.Abs(dfy) > math32.Abs(dfx)
			var majorDf, minorDf, major0, minor0 float32
			if majorIsV {
				majorDf, minorDf, major0, minor0 = dfy, dfx, my, mx
			} else {
				majorDf, minorDf, major0, minor0 = dfx, dfy, mx, my
			}

			end := major0 + majorDf*float32(len(kernel)-1)

			var r, g, b, a float32
			if majorDf != 0 && (end <= brdMin || end >= brdMax) {
				// The major step grows with the pixel's offset from the
				// center, so only the far side of the footprint can
				// leave the face.
				var tc float32
				var e edge
				if majorDf >= 0 {
					tc = (brdMax - major0) / majorDf
					e = edgePosU
					if majorIsV {
						e = edgePosV
					}
				} else {
					tc = (brdMin - major0) / majorDf
					e = edgeNegU
					if majorIsV {
						e = edgeNegV
					}
				}
				minorPos := minor0 + tc*minorDf
				if minorPos <= brdMin {
					minorPos = brdMin + 0.00001
				} else if minorPos >= brdMax {
					minorPos = brdMax - 0.00001
				}
				t := roundCoord(minorPos)

				maj := major0
				for k, w := range kernel {
					var inside bool
					if majorDf >= 0 {
						inside = maj < brdMax
					} else {
						inside = maj > brdMin
					}

					var px []float32
					var si int
					if inside {
						pu := clamp(roundCoord(mx+dfx*float32(k)), 0, size-1)
						pv := clamp(roundCoord(my+dfy*float32(k)), 0, size-1)
						px = in
						si = (pv*size + pu) * Channels
					} else {
						dist := maj - brdMax
						if majorDf < 0 {
							dist = brdMin - maj
						}
						sf, su, sv := resolveEdge(face, e, int(dist), t, size)
						px = src.Faces[sf]
						si = (sv*size + su) * Channels
					}

					r += w * px[si+0]
					g += w * px[si+1]
					b += w * px[si+2]
					a += w * px[si+3]

					maj += majorDf
				}
			} else {
				for k, w := range kernel {
					pu := roundCoord(mx + dfx*float32(k))
					pv := roundCoord(my + dfy*float32(k))
					si := (pv*size + pu) * Channels
					r += w * in[si+0]
					g += w * in[si+1]
					b += w * in[si+2]
					a += w * in[si+3]
				}
			}

			out[o+0] = r
			out[o+1] = g
			out[o+2] = b
			out[o+3] = a
			o += Channels

			cu += duv
		}
		cv += duv
	}
}

// roundCoord rounds to the nearest integer with halves toward +Inf.
func roundCoord(v float32) int {
	return int(math32.Floor(v + 0.5))
}
