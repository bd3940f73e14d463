package svgflat

import (
	"errors"
	"fmt"
)

// Sentinel errors for hard input errors at API boundaries.
var (
	// ErrInvalidNumber is returned when a numeric literal cannot be parsed.
	ErrInvalidNumber = errors.New("svgflat: invalid number")

	// ErrInvalidPrecision is returned by NewContext for a zero precision.
	ErrInvalidPrecision = errors.New("svgflat: precision must be positive")

	// ErrNonPositiveEpsilon is returned by NewContext when epsilon <= 0.
	ErrNonPositiveEpsilon = errors.New("svgflat: epsilon must be positive")

	// ErrToleranceBelowEpsilon is returned by NewContext when the
	// verification tolerance is smaller than epsilon.
	ErrToleranceBelowEpsilon = errors.New("svgflat: verification tolerance below epsilon")

	// ErrMatrixArity is returned when a matrix is built from a value list
	// that does not hold exactly six entries.
	ErrMatrixArity = errors.New("svgflat: matrix needs exactly 6 values")

	// ErrRotateCenter is returned when a rotation center is half specified.
	ErrRotateCenter = errors.New("svgflat: rotate center needs both cx and cy")

	// ErrOffOriginRotation is returned when two rotations about different
	// centers are asked to merge.
	ErrOffOriginRotation = errors.New("svgflat: rotations about different centers cannot merge")

	// ErrNotRotateAboutPoint is returned when a translate/rotate/translate
	// triple is not of the form T(c) R T(-c).
	ErrNotRotateAboutPoint = errors.New("svgflat: not a rotation about a point")

	// ErrEmptyPath is returned when path data holds no commands.
	ErrEmptyPath = errors.New("svgflat: empty path data")
)

// PathSyntaxError reports malformed path data.
type PathSyntaxError struct {
	Offset int
	Reason string
}

func (e *PathSyntaxError) Error() string {
	return fmt.Sprintf("svgflat: path data offset %d: %s", e.Offset, e.Reason)
}

// LengthError reports a length that cannot be resolved to user units.
type LengthError struct {
	Value  string
	Reason string
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("svgflat: length %q: %s", e.Value, e.Reason)
}
