// Package ltasg implements a linear-time approximate spherical Gaussian
// blur over cube map faces. A blur with an arbitrary standard deviation is
// decomposed into a chain of small separable passes; each pass convolves
// every face along one of three axes, reading across face seams so the
// result is continuous on the sphere.
package ltasg

import "github.com/go-gl/mathgl/mgl32"

// Face identifies one of the six cube map faces. The ordinals match the
// usual +X, -X, +Y, -Y, +Z, -Z layout in a right-handed world frame.
type Face int

const (
	FacePositiveX = Face(iota)
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ
)

// FaceCount is the number of faces in a cube map.
const FaceCount = 6

// Neg returns the face on the opposite side of the cube.
func (f Face) Neg() Face {
	return f ^ 1
}

// Abs returns the positive face of f's axis pair.
func (f Face) Abs() Face {
	return f &^ 1
}

// UFace returns the face whose normal points along f's +U (tangent) axis.
func (f Face) UFace() Face {
	switch f {
	case FacePositiveX:
		return FaceNegativeZ
	case FaceNegativeX:
		return FacePositiveZ
	case FacePositiveY:
		return FacePositiveX
	case FaceNegativeY:
		return FacePositiveX
	case FacePositiveZ:
		return FacePositiveX
	case FaceNegativeZ:
		return FaceNegativeX
	}
	panic("ltasg: invalid cube face")
}

// VFace returns the face whose normal points along f's +V (bitangent) axis.
func (f Face) VFace() Face {
	switch f {
	case FacePositiveX:
		return FaceNegativeY
	case FaceNegativeX:
		return FaceNegativeY
	case FacePositiveY:
		return FacePositiveZ
	case FaceNegativeY:
		return FaceNegativeZ
	case FacePositiveZ:
		return FaceNegativeY
	case FaceNegativeZ:
		return FaceNegativeY
	}
	panic("ltasg: invalid cube face")
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() mgl32.Vec3 {
	switch f {
	case FacePositiveX:
		return mgl32.Vec3{1, 0, 0}
	case FaceNegativeX:
		return mgl32.Vec3{-1, 0, 0}
	case FacePositiveY:
		return mgl32.Vec3{0, 1, 0}
	case FaceNegativeY:
		return mgl32.Vec3{0, -1, 0}
	case FacePositiveZ:
		return mgl32.Vec3{0, 0, 1}
	case FaceNegativeZ:
		return mgl32.Vec3{0, 0, -1}
	}
	panic("ltasg: invalid cube face")
}

// UVec returns the world direction of increasing U on the face.
func (f Face) UVec() mgl32.Vec3 {
	return f.UFace().Normal()
}

// VVec returns the world direction of increasing V on the face.
func (f Face) VVec() mgl32.Vec3 {
	return f.VFace().Normal()
}

func (f Face) String() string {
	switch f {
	case FacePositiveX:
		return "+x"
	case FaceNegativeX:
		return "-x"
	case FacePositiveY:
		return "+y"
	case FaceNegativeY:
		return "-y"
	case FacePositiveZ:
		return "+z"
	case FaceNegativeZ:
		return "-z"
	}
	return "invalid"
}
