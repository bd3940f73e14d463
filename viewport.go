package svgflat

import "strings"

// ViewBox is the parsed viewBox attribute.
type ViewBox struct {
	MinX, MinY    Num
	Width, Height Num
}

// Align is the alignment part of preserveAspectRatio.
type Align int

const (
	AlignXMidYMid Align = iota // default
	AlignNone
	AlignXMinYMin
	AlignXMidYMin
	AlignXMaxYMin
	AlignXMinYMid
	AlignXMaxYMid
	AlignXMinYMax
	AlignXMidYMax
	AlignXMaxYMax
)

var alignNames = map[string]Align{
	"none":     AlignNone,
	"xMinYMin": AlignXMinYMin,
	"xMidYMin": AlignXMidYMin,
	"xMaxYMin": AlignXMaxYMin,
	"xMinYMid": AlignXMinYMid,
	"xMidYMid": AlignXMidYMid,
	"xMaxYMid": AlignXMaxYMid,
	"xMinYMax": AlignXMinYMax,
	"xMidYMax": AlignXMidYMax,
	"xMaxYMax": AlignXMaxYMax,
}

// String returns the attribute token.
func (a Align) String() string {
	for name, v := range alignNames {
		if v == a {
			return name
		}
	}
	return "xMidYMid"
}

// factors returns the x and y alignment fractions: 0, 0.5 or 1 for
// Min, Mid and Max.
func (a Align) factors() (Num, Num) {
	name := a.String()
	pick := func(token string) Num {
		switch {
		case strings.Contains(name, token+"Min"):
			return Zero
		case strings.Contains(name, token+"Max"):
			return One
		}
		return Half
	}
	return pick("x"), pick("Y")
}

// MeetOrSlice selects how a uniformly scaled viewBox fits the viewport.
type MeetOrSlice int

const (
	// Meet scales the whole viewBox into the viewport (may letterbox).
	Meet MeetOrSlice = iota
	// Slice covers the whole viewport (may crop).
	Slice
)

func (m MeetOrSlice) String() string {
	if m == Slice {
		return "slice"
	}
	return "meet"
}

// PreserveAspectRatio is the parsed preserveAspectRatio attribute.
type PreserveAspectRatio struct {
	Defer       bool
	Align       Align
	MeetOrSlice MeetOrSlice
}

// String returns the attribute text.
func (p PreserveAspectRatio) String() string {
	s := p.Align.String()
	if p.Align != AlignNone {
		s += " " + p.MeetOrSlice.String()
	}
	if p.Defer {
		s = "defer " + s
	}
	return s
}

// DefaultPreserveAspectRatio is "xMidYMid meet".
var DefaultPreserveAspectRatio = PreserveAspectRatio{Align: AlignXMidYMid, MeetOrSlice: Meet}

// ParseViewBox parses "minX minY width height". It returns false when the
// attribute is malformed or the width or height is not strictly positive;
// callers treat that as "no viewBox".
func ParseViewBox(s string) (ViewBox, bool) {
	vals, ok := ParseNumberList(s)
	if !ok || len(vals) != 4 {
		return ViewBox{}, false
	}
	vb := ViewBox{MinX: vals[0], MinY: vals[1], Width: vals[2], Height: vals[3]}
	if vb.Width.Sign() <= 0 || vb.Height.Sign() <= 0 {
		Logger().Debug("svgflat: viewBox ignored", "viewBox", s)
		return ViewBox{}, false
	}
	return vb, true
}

// ParsePreserveAspectRatio parses "[defer] <align> [<meetOrSlice>]".
// Empty input yields DefaultPreserveAspectRatio and true; unrecognized input
// yields DefaultPreserveAspectRatio and false.
func ParsePreserveAspectRatio(s string) (PreserveAspectRatio, bool) {
	fields := strings.Fields(s)
	par := DefaultPreserveAspectRatio
	if len(fields) > 0 && fields[0] == "defer" {
		par.Defer = true
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return par, true
	}
	if len(fields) > 2 {
		Logger().Debug("svgflat: trailing preserveAspectRatio tokens", "value", s)
		return DefaultPreserveAspectRatio, false
	}
	align, ok := alignNames[fields[0]]
	if !ok {
		Logger().Debug("svgflat: unknown preserveAspectRatio align", "value", s)
		return DefaultPreserveAspectRatio, false
	}
	par.Align = align
	if len(fields) > 1 {
		switch fields[1] {
		case "meet":
			par.MeetOrSlice = Meet
		case "slice":
			par.MeetOrSlice = Slice
		default:
			Logger().Debug("svgflat: unknown meetOrSlice", "value", s)
			return DefaultPreserveAspectRatio, false
		}
	}
	return par, true
}

// ViewBoxTransform maps the viewBox onto a width x height viewport.
//
// With AlignNone x and y scale independently to fill the viewport exactly.
// Otherwise one uniform scale is used, min(sx, sy) for Meet and max(sx, sy)
// for Slice, and the scaled content is offset by (viewport - content) times
// 0, 0.5 or 1 for Min, Mid and Max. The result is
// translate(offset) · scale(s) · translate(-minX, -minY).
//
// Non-positive dimensions yield the identity.
func (c *Context) ViewBoxTransform(vb ViewBox, par PreserveAspectRatio, width, height Num) Matrix {
	if width.Sign() <= 0 || height.Sign() <= 0 || vb.Width.Sign() <= 0 || vb.Height.Sign() <= 0 {
		Logger().Debug("svgflat: degenerate viewport, using identity",
			"width", width.String(), "height", height.String())
		return Identity()
	}

	sx := c.Quo(width, vb.Width)
	sy := c.Quo(height, vb.Height)
	origin := Translate(vb.MinX.Neg(), vb.MinY.Neg())

	if par.Align == AlignNone {
		return c.Multiply(Scale(sx, sy), origin)
	}

	s := Min(sx, sy)
	if par.MeetOrSlice == Slice {
		s = Max(sx, sy)
	}
	fx, fy := par.Align.factors()
	tx := c.Mul(c.Sub(width, c.Mul(vb.Width, s)), fx)
	ty := c.Mul(c.Sub(height, c.Mul(vb.Height, s)), fy)

	return c.MultiplyAll(Translate(tx, ty), Scale(s, s), origin)
}
