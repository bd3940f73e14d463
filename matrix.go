package svgflat

import "fmt"

// Matrix represents a 2D affine transformation in homogeneous form.
// Fields follow SVG naming, so matrix(a,b,c,d,e,f) maps to:
//
//	| A  C  E |
//	| B  D  F |
//	| 0  0  1 |
//
// This represents the transformation:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
//
// The bottom row is implied and always [0 0 1]. Matrix is an immutable
// value; every operation returns a new matrix.
type Matrix struct {
	A, B, C, D, E, F Num
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: One, D: One}
}

// NewMatrix returns the matrix written as matrix(a,b,c,d,e,f).
func NewMatrix(a, b, c, d, e, f Num) Matrix {
	return Matrix{A: a, B: b, C: c, D: d, E: e, F: f}
}

// MatrixFromValues builds a matrix from exactly six values in SVG order.
func MatrixFromValues(vals []Num) (Matrix, error) {
	if len(vals) != 6 {
		return Matrix{}, fmt.Errorf("%w: got %d", ErrMatrixArity, len(vals))
	}
	return NewMatrix(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]), nil
}

// Translate creates a translation matrix.
func Translate(tx, ty Num) Matrix {
	return Matrix{A: One, D: One, E: tx, F: ty}
}

// Scale creates a scaling matrix.
func Scale(sx, sy Num) Matrix {
	return Matrix{A: sx, D: sy}
}

// Rotate creates a rotation matrix (angle in radians, counter-clockwise in
// a y-up frame, clockwise on screen).
func (c *Context) Rotate(theta Num) Matrix {
	sin, cos := c.SinCos(theta)
	return Matrix{A: cos, B: sin, C: sin.Neg(), D: cos}
}

// RotateAbout creates T(cx,cy) * R(theta) * T(-cx,-cy).
func (c *Context) RotateAbout(theta, cx, cy Num) Matrix {
	return c.Multiply(c.Multiply(Translate(cx, cy), c.Rotate(theta)), Translate(cx.Neg(), cy.Neg()))
}

// SkewX creates a horizontal shear matrix. It returns false when the angle
// is within epsilon of +-90 degrees, where the shear is unbounded.
func (c *Context) SkewX(theta Num) (Matrix, bool) {
	t, ok := c.Tan(theta)
	if !ok {
		return Identity(), false
	}
	return Matrix{A: One, C: t, D: One}, true
}

// SkewY creates a vertical shear matrix. It returns false when the angle is
// within epsilon of +-90 degrees.
func (c *Context) SkewY(theta Num) (Matrix, bool) {
	t, ok := c.Tan(theta)
	if !ok {
		return Identity(), false
	}
	return Matrix{A: One, B: t, D: One}, true
}

// At returns the element at the given row and column (0-based). The bottom
// row is always [0 0 1].
func (m Matrix) At(row, col int) Num {
	switch row {
	case 0:
		return [3]Num{m.A, m.C, m.E}[col]
	case 1:
		return [3]Num{m.B, m.D, m.F}[col]
	case 2:
		if col == 2 {
			return One
		}
		return Zero
	}
	panic(fmt.Sprintf("svgflat: matrix row %d out of range", row))
}

// Values returns [a b c d e f].
func (m Matrix) Values() [6]Num {
	return [6]Num{m.A, m.B, m.C, m.D, m.E, m.F}
}

// Multiply returns the standard product a*b: b is applied first.
func (c *Context) Multiply(a, b Matrix) Matrix {
	return Matrix{
		A: c.Add(c.Mul(a.A, b.A), c.Mul(a.C, b.B)),
		B: c.Add(c.Mul(a.B, b.A), c.Mul(a.D, b.B)),
		C: c.Add(c.Mul(a.A, b.C), c.Mul(a.C, b.D)),
		D: c.Add(c.Mul(a.B, b.C), c.Mul(a.D, b.D)),
		E: c.Sum(c.Mul(a.A, b.E), c.Mul(a.C, b.F), a.E),
		F: c.Sum(c.Mul(a.B, b.E), c.Mul(a.D, b.F), a.F),
	}
}

// MultiplyAll returns the left-to-right product of ms, or the identity.
func (c *Context) MultiplyAll(ms ...Matrix) Matrix {
	acc := Identity()
	for _, m := range ms {
		acc = c.Multiply(acc, m)
	}
	return acc
}

// Apply transforms a point.
func (c *Context) Apply(m Matrix, p Vec2) Vec2 {
	return Vec2{
		X: c.Sum(c.Mul(m.A, p.X), c.Mul(m.C, p.Y), m.E),
		Y: c.Sum(c.Mul(m.B, p.X), c.Mul(m.D, p.Y), m.F),
	}
}

// ApplyLinear transforms a vector (no translation).
func (c *Context) ApplyLinear(m Matrix, v Vec2) Vec2 {
	return Vec2{
		X: c.Add(c.Mul(m.A, v.X), c.Mul(m.C, v.Y)),
		Y: c.Add(c.Mul(m.B, v.X), c.Mul(m.D, v.Y)),
	}
}

// Determinant returns the determinant of the linear part.
func (c *Context) Determinant(m Matrix) Num {
	return c.Sub(c.Mul(m.A, m.D), c.Mul(m.B, m.C))
}

// Invert returns the inverse matrix. It returns the identity and false if
// the determinant is within epsilon of zero.
func (c *Context) Invert(m Matrix) (Matrix, bool) {
	det := c.Determinant(m)
	if c.NearZero(det) {
		return Identity(), false
	}
	return Matrix{
		A: c.Quo(m.D, det),
		B: c.Quo(m.B.Neg(), det),
		C: c.Quo(m.C.Neg(), det),
		D: c.Quo(m.A, det),
		E: c.Quo(c.Sub(c.Mul(m.C, m.F), c.Mul(m.D, m.E)), det),
		F: c.Quo(c.Sub(c.Mul(m.B, m.E), c.Mul(m.A, m.F)), det),
	}, true
}

// MaxDiff returns the largest absolute element-wise difference.
func (c *Context) MaxDiff(a, b Matrix) Num {
	av, bv := a.Values(), b.Values()
	worst := Zero
	for i := range av {
		worst = Max(worst, c.Sub(av[i], bv[i]).Abs())
	}
	return worst
}

// Equal reports whether the largest element-wise difference is below tol.
func (c *Context) Equal(a, b Matrix, tol Num) bool {
	return c.MaxDiff(a, b).Cmp(tol) < 0
}

// IsIdentity reports whether m is the identity within epsilon.
func (c *Context) IsIdentity(m Matrix) bool {
	return c.Equal(m, Identity(), c.epsilon)
}

// IsTranslation reports whether m only translates, within epsilon.
func (c *Context) IsTranslation(m Matrix) bool {
	return c.Near(m.A, One, c.epsilon) && c.NearZero(m.B) &&
		c.NearZero(m.C) && c.Near(m.D, One, c.epsilon)
}

// IsScale reports whether m is a pure axis-aligned scale about the origin,
// within epsilon.
func (c *Context) IsScale(m Matrix) bool {
	return c.NearZero(m.B) && c.NearZero(m.C) && c.NearZero(m.E) && c.NearZero(m.F)
}

// IsRigid reports whether the linear part has orthonormal columns and a
// positive determinant (a rotation, possibly with translation).
func (c *Context) IsRigid(m Matrix) bool {
	col1 := c.Add(c.Mul(m.A, m.A), c.Mul(m.B, m.B))
	col2 := c.Add(c.Mul(m.C, m.C), c.Mul(m.D, m.D))
	dot := c.Add(c.Mul(m.A, m.C), c.Mul(m.B, m.D))
	return c.Near(col1, One, c.epsilon) && c.Near(col2, One, c.epsilon) &&
		c.NearZero(dot) && c.Determinant(m).Sign() > 0
}

// String returns the matrix in SVG notation with full precision.
func (m Matrix) String() string {
	return fmt.Sprintf("matrix(%s,%s,%s,%s,%s,%s)", m.A, m.B, m.C, m.D, m.E, m.F)
}
