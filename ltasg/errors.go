package ltasg

import "errors"

// Validation failures. Errors for the conditions below wrap the matching
// sentinel; callers match with errors.Is. An invalid axis, a pass count
// below one or an empty sigma list is reported as a plain error.
var (
	// ErrInvalidArity reports that fewer than six cube faces were supplied.
	ErrInvalidArity = errors.New("ltasg: cube map requires six faces")
	// ErrInvalidSize reports a face size outside the supported range, a
	// backing slice too small for the declared size, source and destination
	// sizes that differ, or destination storage that aliases the source.
	ErrInvalidSize = errors.New("ltasg: invalid face size")
	// ErrInvalidFormat reports pixel data that is not premultiplied RGBA float.
	ErrInvalidFormat = errors.New("ltasg: pixel format must be premultiplied rgba float")
	// ErrInvalidKernel reports an even-length kernel, a non-positive kernel
	// scale, or a kernel footprint too large for the face.
	ErrInvalidKernel = errors.New("ltasg: invalid convolution kernel")
	// ErrNonMonotonicSigmas reports a decreasing mip level sigma sequence.
	ErrNonMonotonicSigmas = errors.New("ltasg: sigma sequence must be non-decreasing")
)
