package svgflat

// Viewport describes an <svg> element: its position in the parent, its size
// in the parent's user units, an optional viewBox and its own transform.
type Viewport struct {
	X, Y                Num
	Width, Height       Num
	ViewBox             *ViewBox
	PreserveAspectRatio PreserveAspectRatio
	Transform           *Matrix
}

// ViewportMatrix returns the viewport's own matrix:
// transform · translate(x, y) · viewBoxMatrix.
// A missing viewBox or a degenerate size contributes the identity.
func (c *Context) ViewportMatrix(vp Viewport) Matrix {
	m := Identity()
	if vp.Transform != nil {
		m = *vp.Transform
	}
	if !vp.X.IsZero() || !vp.Y.IsZero() {
		m = c.Multiply(m, Translate(vp.X, vp.Y))
	}
	if vp.ViewBox != nil {
		m = c.Multiply(m, c.ViewBoxTransform(*vp.ViewBox, vp.PreserveAspectRatio, vp.Width, vp.Height))
	}
	return m
}

// AncestorKind tags an entry of an ancestor chain.
type AncestorKind int

const (
	// KindSVG is a nested or outermost <svg> establishing a viewport.
	KindSVG AncestorKind = iota
	// KindGroup is a <g> (or any container) carrying a transform.
	KindGroup
	// KindElement is the leaf element itself.
	KindElement
)

func (k AncestorKind) String() string {
	switch k {
	case KindSVG:
		return "svg"
	case KindGroup:
		return "g"
	case KindElement:
		return "element"
	}
	return "unknown"
}

// Ancestor is one entry of a root-to-leaf chain.
type Ancestor struct {
	Kind AncestorKind

	// Viewport is used for KindSVG entries.
	Viewport Viewport

	// Transform is used for KindGroup and KindElement entries; nil means
	// no transform attribute.
	Transform *Matrix
}

// SVGAncestor returns a KindSVG chain entry.
func SVGAncestor(vp Viewport) Ancestor {
	return Ancestor{Kind: KindSVG, Viewport: vp}
}

// GroupAncestor returns a KindGroup chain entry.
func GroupAncestor(m Matrix) Ancestor {
	return Ancestor{Kind: KindGroup, Transform: &m}
}

// ElementAncestor returns a KindElement chain entry.
func ElementAncestor(m Matrix) Ancestor {
	return Ancestor{Kind: KindElement, Transform: &m}
}

// AncestorMatrix returns one entry's own matrix.
func (c *Context) AncestorMatrix(a Ancestor) Matrix {
	if a.Kind == KindSVG {
		return c.ViewportMatrix(a.Viewport)
	}
	if a.Transform == nil {
		return Identity()
	}
	return *a.Transform
}

// BuildFullCTM folds a root-to-leaf ancestor chain into one current
// transform matrix: chain[0] · chain[1] · ... · chain[n-1]. Order matters;
// the chain must start at the outermost viewport.
func (c *Context) BuildFullCTM(chain []Ancestor) Matrix {
	ctm := Identity()
	for _, a := range chain {
		ctm = c.Multiply(ctm, c.AncestorMatrix(a))
	}
	return ctm
}
