package svgflat

import (
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// FormatTransform renders one operation in SVG notation with at most places
// decimals. Components equal to their default are omitted: translate(tx)
// when ty is zero, scale(s) when uniform.
func (c *Context) FormatTransform(t NamedTransform, places int) string {
	f := func(n Num) string { return c.FormatNum(n, places) }
	switch op := t.(type) {
	case TranslateOp:
		if f(op.TY) == "0" {
			return "translate(" + f(op.TX) + ")"
		}
		return "translate(" + f(op.TX) + "," + f(op.TY) + ")"
	case ScaleOp:
		if f(op.SX) == f(op.SY) {
			return "scale(" + f(op.SX) + ")"
		}
		return "scale(" + f(op.SX) + "," + f(op.SY) + ")"
	case RotateOp:
		deg := f(c.Degrees(op.Angle))
		if op.Center == nil || (f(op.Center.X) == "0" && f(op.Center.Y) == "0") {
			return "rotate(" + deg + ")"
		}
		return "rotate(" + deg + "," + f(op.Center.X) + "," + f(op.Center.Y) + ")"
	case MatrixOp:
		return c.formatMatrix(op.M, places)
	}
	return ""
}

// FormatTransforms renders a transform list separated by spaces.
func (c *Context) FormatTransforms(list []NamedTransform, places int) string {
	parts := make([]string, 0, len(list))
	for _, t := range list {
		parts = append(parts, c.FormatTransform(t, places))
	}
	return strings.Join(parts, " ")
}

func (c *Context) formatMatrix(m Matrix, places int) string {
	v := m.Values()
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = c.FormatNum(n, places)
	}
	return "matrix(" + strings.Join(parts, ",") + ")"
}

// MinimalTransformString returns the shortest SVG transform string for m
// with at most places decimals, or "" for the identity.
//
// The candidate built from the decomposition (translate, rotate, scale,
// skewX, each omitted when it rounds to its identity value) is parsed back
// and compared with m; if it does not reproduce m to the output precision,
// or matrix(...) is shorter, the matrix form is returned.
func (c *Context) MinimalTransformString(m Matrix, places int) string {
	if c.IsIdentity(m) {
		return ""
	}
	full := c.formatMatrix(m, places)

	d := c.Decompose(m)
	if d.Singular || !d.Verified {
		return full
	}

	f := func(n Num) string { return c.FormatNum(n, places) }
	var list []NamedTransform
	if f(d.TranslateX) != "0" || f(d.TranslateY) != "0" {
		list = append(list, TranslateOp{TX: d.TranslateX, TY: d.TranslateY})
	}
	if f(c.Degrees(d.Rotation)) != "0" {
		list = append(list, Rotation(d.Rotation))
	}
	if f(d.ScaleX) != "1" || f(d.ScaleY) != "1" {
		list = append(list, ScaleOp{SX: d.ScaleX, SY: d.ScaleY})
	}
	short := c.FormatTransforms(list, places)
	if skew := f(c.Degrees(d.SkewX)); skew != "0" {
		if short != "" {
			short += " "
		}
		short += "skewX(" + skew + ")"
	}
	if short == "" {
		return ""
	}

	back, diags := c.ParseTransform(short)
	if diags.HasFatal() || c.MaxDiff(back, m).Cmp(c.outputTolerance(m, places)) >= 0 {
		return full
	}
	if len(full) < len(short) {
		return full
	}
	return short
}

// outputTolerance is the largest difference a places-decimal rendering of m
// may introduce: ten output units, scaled by the largest linear entry.
func (c *Context) outputTolerance(m Matrix, places int) Num {
	unit := wrap(apd.New(1, int32(1-places)))
	scale := Max(One, Max(Max(m.A.Abs(), m.B.Abs()), Max(m.C.Abs(), m.D.Abs())))
	return Max(c.tolerance, c.Mul(unit, scale))
}
