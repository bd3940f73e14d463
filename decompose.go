package svgflat

// Components are the factors of an affine matrix in the fixed order
//
//	M = translate(TranslateX, TranslateY) · rotate(Rotation) ·
//	    scale(ScaleX, ScaleY) · skewX(SkewX) · skewY(SkewY)
//
// Angles are in radians. A negative ScaleX encodes a reflection.
type Components struct {
	TranslateX, TranslateY Num
	Rotation               Num
	ScaleX, ScaleY         Num
	SkewX, SkewY           Num
}

// Decomposition is the result of Decompose.
type Decomposition struct {
	Components

	// Singular is set when the first column of the linear part is within
	// epsilon of zero. Only the translation is meaningful then.
	Singular bool

	// Verified reports whether Compose(Components) reproduces the input
	// within the verification tolerance; MaxError is the largest
	// element-wise difference found.
	Verified bool
	MaxError Num
}

// Decompose factors m into Components.
//
// ScaleX is the norm of the first column, negated when the determinant is
// negative; Rotation is the angle of the first column. The linear part is
// rotated back by -Rotation, leaving [[ScaleX, ScaleX·tan(SkewX)],
// [0, ScaleY]]. Four parameters cover every non-singular linear part, so
// SkewY is always zero.
//
// The result is always recomposed and compared with m.
func (c *Context) Decompose(m Matrix) Decomposition {
	out := Decomposition{Components: Components{
		TranslateX: m.E,
		TranslateY: m.F,
		ScaleX:     Zero,
		ScaleY:     Zero,
	}}

	sx := c.Hypot(m.A, m.B)
	if c.NearZero(sx) {
		out.Singular = true
		return c.finishDecomposition(out, m)
	}

	det := c.Determinant(m)
	a, b := m.A, m.B
	if det.Sign() < 0 {
		sx = sx.Neg()
		a, b = a.Neg(), b.Neg()
	}
	rot := c.Atan2(b, a)

	sin, cos := c.SinCos(rot)
	// R(-rot) applied to the columns.
	aPrime := c.Add(c.Mul(cos, m.A), c.Mul(sin, m.B))
	cPrime := c.Add(c.Mul(cos, m.C), c.Mul(sin, m.D))
	dPrime := c.Sub(c.Mul(cos, m.D), c.Mul(sin, m.C))

	out.Rotation = rot
	out.ScaleX = sx
	out.ScaleY = dPrime
	out.SkewX = c.Atan(c.Quo(cPrime, aPrime))
	out.SkewY = Zero

	return c.finishDecomposition(out, m)
}

func (c *Context) finishDecomposition(out Decomposition, m Matrix) Decomposition {
	recomposed, _ := c.Compose(out.Components)
	out.MaxError = c.MaxDiff(recomposed, m)
	out.Verified = out.MaxError.Cmp(c.tolerance) < 0
	if !out.Verified && !out.Singular {
		Logger().Warn("svgflat: decomposition failed verification",
			"matrix", m.String(), "maxError", out.MaxError.String())
	}
	return out
}

// Compose rebuilds the matrix from its components in the same order
// Decompose uses. It returns false when a skew angle is within epsilon of
// +-90 degrees; that factor is then left out.
func (c *Context) Compose(comp Components) (Matrix, bool) {
	ok := true
	m := c.Multiply(Translate(comp.TranslateX, comp.TranslateY), c.Rotate(comp.Rotation))
	m = c.Multiply(m, Scale(comp.ScaleX, comp.ScaleY))
	if !comp.SkewX.IsZero() {
		k, good := c.SkewX(comp.SkewX)
		ok = ok && good
		m = c.Multiply(m, k)
	}
	if !comp.SkewY.IsZero() {
		k, good := c.SkewY(comp.SkewY)
		ok = ok && good
		m = c.Multiply(m, k)
	}
	return m, ok
}
