package ltasg

import "github.com/go-gl/mathgl/mgl32"

// A convolution tap can land outside the [0, size) range of its face. Such a
// tap belongs to one of the four neighboring faces, with the neighbor's pixel
// coordinates related to the source coordinates by a fixed reorientation.
// The twenty-four (face, edge) relationships are precomputed into edgeLinks
// so that resolving an off-face tap is a single table lookup.

type edge int

const (
	edgePosU = edge(iota)
	edgeNegU
	edgePosV
	edgeNegV
)

// edgeLink maps an overflow past one edge of a face onto the adjacent face.
// With d the pixel distance beyond the edge (d = 0 is the first off-face
// pixel) and t the clamped coordinate along the edge, the neighbor pixel is
//
//	u' = uOrg*(size-1) + uD*d + uT*t
//	v' = vOrg*(size-1) + vD*d + vT*t
//
// All coefficients are -1, 0 or 1.
type edgeLink struct {
	face         Face
	uOrg, uD, uT int
	vOrg, vD, vT int
}

var edgeLinks [FaceCount][4]edgeLink

func init() {
	for f := FacePositiveX; f <= FaceNegativeZ; f++ {
		for e := edgePosU; e <= edgeNegV; e++ {
			edgeLinks[f][e] = buildEdgeLink(f, e)
		}
	}
}

// buildEdgeLink derives the reorientation for crossing edge e of face f.
// A point past the edge is expressed as a world direction using f's frame,
// then read back through the neighbor's frame: the depth coordinate advances
// along -f.Normal (into the neighbor), the along-edge coordinate keeps the
// direction of f's other in-plane axis.
func buildEdgeLink(f Face, e edge) edgeLink {
	var neighbor Face
	var along mgl32.Vec3
	switch e {
	case edgePosU:
		neighbor = f.UFace()
		along = f.VVec()
	case edgeNegU:
		neighbor = f.UFace().Neg()
		along = f.VVec()
	case edgePosV:
		neighbor = f.VFace()
		along = f.UVec()
	case edgeNegV:
		neighbor = f.VFace().Neg()
		along = f.UVec()
	}

	deep := f.Normal().Mul(-1)

	link := edgeLink{face: neighbor}
	link.uOrg, link.uD, link.uT = axisCoeffs(neighbor.UVec(), deep, along)
	link.vOrg, link.vD, link.vT = axisCoeffs(neighbor.VVec(), deep, along)
	return link
}

// axisCoeffs expresses one neighbor axis in terms of the depth and
// along-edge directions. The three vectors have components in {-1, 0, 1}
// and the axis always coincides with exactly one of ±deep, ±along.
func axisCoeffs(axis, deep, along mgl32.Vec3) (org, dCoeff, tCoeff int) {
	switch {
	case axis.Dot(deep) > 0.5:
		return 0, 1, 0
	case axis.Dot(deep) < -0.5:
		return 1, -1, 0
	case axis.Dot(along) > 0.5:
		return 0, 0, 1
	case axis.Dot(along) < -0.5:
		return 1, 0, -1
	}
	panic("ltasg: degenerate edge frame")
}

// overflow returns the distance of c beyond the [0, size) range, or -1 when
// c is in range. The first out-of-range pixel has distance 0.
func overflow(c, size int) int {
	if c < 0 {
		return -1 - c
	}
	if c >= size {
		return c - size
	}
	return -1
}

// Sample resolves integer pixel coordinates on face f, where u and v may lie
// outside [0, size), to an on-face coordinate of the correct neighboring
// face. Corner overflows are resolved along the dominant axis only; the
// other coordinate is clamped onto the edge. In-range coordinates are
// returned unchanged.
func Sample(f Face, u, v, size int) (Face, int, int) {
	du := overflow(u, size)
	dv := overflow(v, size)
	if du < 0 && dv < 0 {
		return f, u, v
	}

	var e edge
	var d, t int
	if du >= dv {
		if u < 0 {
			e = edgeNegU
		} else {
			e = edgePosU
		}
		d, t = du, v
	} else {
		if v < 0 {
			e = edgeNegV
		} else {
			e = edgePosV
		}
		d, t = dv, u
	}
	return resolveEdge(f, e, d, t, size)
}

// resolveEdge maps a crossing of edge e of face f onto the adjacent face.
// d is the pixel depth beyond the edge and t the coordinate along it; both
// clamp into [0, size). The kernel size invariant keeps d within the
// neighbor, the clamp guards rounding.
func resolveEdge(f Face, e edge, d, t, size int) (Face, int, int) {
	d = clamp(d, 0, size-1)
	t = clamp(t, 0, size-1)

	link := &edgeLinks[f][e]
	nu := link.uOrg*(size-1) + link.uD*d + link.uT*t
	nv := link.vOrg*(size-1) + link.vD*d + link.vT*t
	return link.face, nu, nv
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
