package svgflat

// NamedTransform is one entry of a transform list: TranslateOp, RotateOp,
// ScaleOp or MatrixOp.
type NamedTransform interface {
	// Matrix returns the affine matrix of the operation.
	Matrix(c *Context) Matrix

	isNamedTransform()
}

// TranslateOp is translate(tx, ty).
type TranslateOp struct {
	TX, TY Num
}

func (TranslateOp) isNamedTransform() {}

// Matrix implements NamedTransform.
func (t TranslateOp) Matrix(*Context) Matrix { return Translate(t.TX, t.TY) }

// RotateOp is rotate(angle) or rotate(angle, cx, cy). Angle is in radians.
// Center is nil for a rotation about the origin.
type RotateOp struct {
	Angle  Num
	Center *Vec2
}

func (RotateOp) isNamedTransform() {}

// Matrix implements NamedTransform.
func (r RotateOp) Matrix(c *Context) Matrix {
	if r.Center == nil {
		return c.Rotate(r.Angle)
	}
	return c.RotateAbout(r.Angle, r.Center.X, r.Center.Y)
}

// Rotation returns a RotateOp about the origin.
func Rotation(angle Num) RotateOp {
	return RotateOp{Angle: angle}
}

// RotationAbout returns a RotateOp about (cx, cy).
func RotationAbout(angle, cx, cy Num) RotateOp {
	return RotateOp{Angle: angle, Center: &Vec2{X: cx, Y: cy}}
}

// center returns the rotation center, the origin when absent.
func (r RotateOp) center() Vec2 {
	if r.Center == nil {
		return Vec2{}
	}
	return *r.Center
}

// ScaleOp is scale(sx, sy).
type ScaleOp struct {
	SX, SY Num
}

func (ScaleOp) isNamedTransform() {}

// Matrix implements NamedTransform.
func (s ScaleOp) Matrix(*Context) Matrix { return Scale(s.SX, s.SY) }

// MatrixOp is matrix(a, b, c, d, e, f).
type MatrixOp struct {
	M Matrix
}

func (MatrixOp) isNamedTransform() {}

// Matrix implements NamedTransform.
func (m MatrixOp) Matrix(*Context) Matrix { return m.M }

// ListMatrix returns the left-to-right product of a transform list.
func (c *Context) ListMatrix(list []NamedTransform) Matrix {
	acc := Identity()
	for _, t := range list {
		acc = c.Multiply(acc, t.Matrix(c))
	}
	return acc
}

// Verified carries a rewritten value together with the recompose-and-compare
// check that proves it equivalent to its input.
type Verified[T any] struct {
	Value    T
	Verified bool
	MaxError Num
}

// verify compares two independently computed matrices.
func verify[T any](c *Context, v T, got, want Matrix) Verified[T] {
	diff := c.MaxDiff(got, want)
	return Verified[T]{Value: v, Verified: diff.Cmp(c.tolerance) < 0, MaxError: diff}
}
