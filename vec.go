package svgflat

// Vec2 represents a 2D point or displacement with decimal coordinates.
type Vec2 struct {
	X, Y Num
}

// V2 is a convenience function to create a Vec2.
func V2(x, y Num) Vec2 {
	return Vec2{X: x, Y: y}
}

// V2f creates a Vec2 from float64 coordinates.
func V2f(x, y float64) Vec2 {
	return Vec2{X: NumFromFloat(x), Y: NumFromFloat(y)}
}

// AddVec returns v+w.
func (c *Context) AddVec(v, w Vec2) Vec2 {
	return Vec2{X: c.Add(v.X, w.X), Y: c.Add(v.Y, w.Y)}
}

// SubVec returns v-w.
func (c *Context) SubVec(v, w Vec2) Vec2 {
	return Vec2{X: c.Sub(v.X, w.X), Y: c.Sub(v.Y, w.Y)}
}

// Dot returns the dot product of two vectors.
func (c *Context) Dot(v, w Vec2) Num {
	return c.Add(c.Mul(v.X, w.X), c.Mul(v.Y, w.Y))
}

// Cross returns the 2D cross product (scalar).
func (c *Context) Cross(v, w Vec2) Num {
	return c.Sub(c.Mul(v.X, w.Y), c.Mul(v.Y, w.X))
}

// Length returns the length of the vector.
func (c *Context) Length(v Vec2) Num {
	return c.Hypot(v.X, v.Y)
}

// ApproxVec reports whether both coordinates differ by less than tol.
func (c *Context) ApproxVec(v, w Vec2, tol Num) bool {
	return c.Near(v.X, w.X, tol) && c.Near(v.Y, w.Y, tol)
}
