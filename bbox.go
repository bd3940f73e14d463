package svgflat

// ObjectBoundingBoxTransform maps the unit square (0,0)-(1,1) used by
// objectBoundingBox gradients, patterns and clip paths onto the box
// (x, y, w, h): translate(x, y) · scale(w, h).
//
// A zero or negative width or height yields the identity and false; a
// zero-size shape is valid input and simply has no bounding-box space.
func (c *Context) ObjectBoundingBoxTransform(x, y, w, h Num) (Matrix, bool) {
	if w.Sign() <= 0 || h.Sign() <= 0 {
		Logger().Debug("svgflat: zero-area bounding box, using identity",
			"width", w.String(), "height", h.String())
		return Identity(), false
	}
	return c.Multiply(Translate(x, y), Scale(w, h)), true
}

// BoundingBoxToUser maps a point given in objectBoundingBox units to user
// space. Degenerate boxes return the point unchanged and false.
func (c *Context) BoundingBoxToUser(x, y, w, h Num, p Vec2) (Vec2, bool) {
	m, ok := c.ObjectBoundingBoxTransform(x, y, w, h)
	return c.Apply(m, p), ok
}
