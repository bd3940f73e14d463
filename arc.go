package svgflat

// Arc is the shape part of an SVG elliptical arc segment together with its
// absolute end point. XAxisRotation is in degrees.
type Arc struct {
	RX, RY        Num
	XAxisRotation Num
	LargeArc      bool
	Sweep         bool
	End           Vec2
}

// ArcResult is the outcome of TransformArc.
type ArcResult struct {
	Arc

	// Degenerate is set when the input radii are not positive or the
	// matrix collapses the ellipse; the arc then has zero radii and
	// renders as a straight segment.
	Degenerate bool

	// Verified compares the shape matrix of the output ellipse with the
	// image of the input ellipse, relative to its size.
	Verified bool
	MaxError Num
}

// TransformArc applies m to an arc segment.
//
// The end point is transformed directly. The ellipse's principal axis
// vectors (rx and ry long, rotated by XAxisRotation) are mapped through the
// linear part of m, giving the implicit conic A·x² + B·xy + C·y² = 1 of the
// image ellipse. Its eigenvalues give the new radii and its eigenvectors the
// new rotation; radii are ordered so that RX >= RY, with XAxisRotation in
// [0, 180). A reflection (negative determinant) flips the sweep flag.
func (c *Context) TransformArc(a Arc, m Matrix) ArcResult {
	out := ArcResult{Arc: Arc{
		LargeArc: a.LargeArc,
		Sweep:    a.Sweep,
		End:      c.Apply(m, a.End),
	}}
	if c.Determinant(m).Sign() < 0 {
		out.Sweep = !out.Sweep
	}

	if a.RX.Sign() <= 0 || a.RY.Sign() <= 0 {
		return degenerateArc(out)
	}

	sin, cos := c.SinCos(c.Radians(a.XAxisRotation))
	u := c.ApplyLinear(m, Vec2{X: c.Mul(a.RX, cos), Y: c.Mul(a.RX, sin)})
	v := c.ApplyLinear(m, Vec2{X: c.Mul(a.RY, sin).Neg(), Y: c.Mul(a.RY, cos)})

	// Shape matrix P = u·uᵀ + v·vᵀ of the image ellipse; the conic is
	// Q = P⁻¹ = [[r, -q], [-q, p]] / det².
	p := c.Add(c.Mul(u.X, u.X), c.Mul(v.X, v.X))
	q := c.Add(c.Mul(u.X, u.Y), c.Mul(v.X, v.Y))
	r := c.Add(c.Mul(u.Y, u.Y), c.Mul(v.Y, v.Y))
	size := Max(p.Abs(), Max(q.Abs(), r.Abs()))

	det := c.Cross(u, v)
	det2 := c.Mul(det, det)
	if c.NearZero(c.Quo(det2, c.Mul(size, size))) {
		return degenerateArc(out)
	}
	A := c.Quo(r, det2)
	B := c.Quo(c.Mul(q, Two), det2).Neg()
	C := c.Quo(p, det2)

	rx, ry, rot, ok := c.conicAxes(A, B, C)
	if !ok {
		return degenerateArc(out)
	}
	if rx.Cmp(ry) < 0 {
		rx, ry = ry, rx
		rot = c.Add(rot, NumFromInt(90))
	}
	out.RX = rx
	out.RY = ry
	out.XAxisRotation = c.NormalizeDegrees180(rot)

	// Recompose the shape matrix from the output and compare.
	s2, c2 := c.SinCos(c.Radians(out.XAxisRotation))
	uo := Vec2{X: c.Mul(rx, c2), Y: c.Mul(rx, s2)}
	vo := Vec2{X: c.Mul(ry, s2).Neg(), Y: c.Mul(ry, c2)}
	po := c.Add(c.Mul(uo.X, uo.X), c.Mul(vo.X, vo.X))
	qo := c.Add(c.Mul(uo.X, uo.Y), c.Mul(vo.X, vo.Y))
	ro := c.Add(c.Mul(uo.Y, uo.Y), c.Mul(vo.Y, vo.Y))
	diff := Max(c.Sub(po, p).Abs(), Max(c.Sub(qo, q).Abs(), c.Sub(ro, r).Abs()))
	out.MaxError = c.Quo(diff, Max(One, size))
	out.Verified = out.MaxError.Cmp(c.tolerance) < 0
	if !out.Verified {
		Logger().Warn("svgflat: arc transform failed verification",
			"maxError", out.MaxError.String())
	}
	return out
}

func degenerateArc(out ArcResult) ArcResult {
	out.RX, out.RY, out.XAxisRotation = Zero, Zero, Zero
	out.Degenerate = true
	out.Verified = true
	out.MaxError = Zero
	return out
}

// conicAxes returns the semi-axes of A·x² + B·xy + C·y² = 1 and the angle in
// degrees of the axis belonging to the first one.
func (c *Context) conicAxes(A, B, C Num) (Num, Num, Num, bool) {
	scale := Max(A.Abs(), C.Abs())
	radius := func(lambda Num) (Num, bool) {
		if lambda.Sign() <= 0 {
			return Zero, false
		}
		return c.Quo(One, c.Sqrt(lambda)), true
	}

	var l1, l2, deg Num
	switch {
	case c.NearZero(c.Quo(B, scale)):
		// Axis aligned: the eigenvalues are the diagonal.
		l1, l2, deg = A, C, Zero
	case c.NearZero(c.Quo(c.Sub(A, C), scale)):
		// Equal diagonal: eigenvectors at 45 and 135 degrees.
		halfB := c.Mul(B, Half)
		l1, l2, deg = c.Add(A, halfB), c.Sub(A, halfB), NumFromInt(45)
	default:
		mean := c.Mul(c.Add(A, C), Half)
		rad := c.Hypot(c.Mul(c.Sub(A, C), Half), c.Mul(B, Half))
		// The larger eigenvalue belongs to the eigenvector at
		// atan2(B, A-C)/2; the other axis is perpendicular.
		theta := c.Mul(c.Degrees(c.Atan2(B, c.Sub(A, C))), Half)
		l1, l2, deg = c.Add(mean, rad), c.Sub(mean, rad), theta
	}

	r1, ok1 := radius(l1)
	r2, ok2 := radius(l2)
	return r1, r2, deg, ok1 && ok2
}
