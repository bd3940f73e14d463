package svgflat

import "slices"

// Element is the view of a document node the CTM builder needs. Parent
// must return a nil interface at the root.
type Element interface {
	Tag() string
	Attr(name string) (string, bool)
	Parent() Element
}

// Node is a minimal in-memory Element.
type Node struct {
	Name  string
	Attrs map[string]string
	Up    *Node
}

// Tag implements Element.
func (n *Node) Tag() string { return n.Name }

// Attr implements Element.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// Parent implements Element.
func (n *Node) Parent() Element {
	if n.Up == nil {
		return nil
	}
	return n.Up
}

// AncestorChain builds the root-to-leaf chain for el from the document
// tree. <svg> nodes become viewports (width, height, x, y, viewBox,
// preserveAspectRatio, transform); every other ancestor contributes its
// transform attribute, and el itself is the final KindElement entry.
//
// Lengths resolve through u; percentages refer to the nearest enclosing
// viewport (its viewBox size when it has one). Unresolvable lengths and
// bad transforms are reported as diagnostics and treated as absent.
func (c *Context) AncestorChain(el Element, u Units) ([]Ancestor, Diagnostics) {
	var nodes []Element
	for n := el; n != nil; n = n.Parent() {
		nodes = append(nodes, n)
	}
	slices.Reverse(nodes)

	var (
		chain []Ancestor
		diags Diagnostics
	)
	refW, refH := Zero, Zero
	for i, n := range nodes {
		leaf := i == len(nodes)-1
		if n.Tag() == "svg" {
			vp := c.viewportFromElement(n, u, refW, refH, i == 0, &diags)
			chain = append(chain, SVGAncestor(vp))
			refW, refH = vp.Width, vp.Height
			if vp.ViewBox != nil {
				refW, refH = vp.ViewBox.Width, vp.ViewBox.Height
			}
			continue
		}
		kind := KindGroup
		if leaf {
			kind = KindElement
		}
		chain = append(chain, Ancestor{Kind: kind, Transform: c.transformAttr(n, &diags)})
	}
	return chain, diags
}

// ElementCTM returns BuildFullCTM(AncestorChain(el, u)).
func (c *Context) ElementCTM(el Element, u Units) (Matrix, Diagnostics) {
	chain, diags := c.AncestorChain(el, u)
	return c.BuildFullCTM(chain), diags
}

func (c *Context) transformAttr(n Element, diags *Diagnostics) *Matrix {
	s, ok := n.Attr("transform")
	if !ok {
		return nil
	}
	pt := c.transforms.GetOrCreate(s, func() parsedTransform {
		m, d := c.ParseTransform(s)
		return parsedTransform{m: m, diags: d}
	})
	*diags = append(*diags, pt.diags...)
	m := pt.m
	if c.NearZero(c.Determinant(m)) {
		diags.add(SeverityDegenerate, CodeSingularMatrix,
			"<%s> transform %q collapses its content", n.Tag(), s)
	}
	return &m
}

func (c *Context) viewportFromElement(n Element, u Units, refW, refH Num, root bool, diags *Diagnostics) Viewport {
	vp := Viewport{PreserveAspectRatio: DefaultPreserveAspectRatio}
	if s, ok := n.Attr("viewBox"); ok {
		if vb, ok := ParseViewBox(s); ok {
			vp.ViewBox = &vb
		} else {
			diags.add(SeverityDegenerate, CodeInvalidViewBox, "viewBox %q ignored", s)
		}
	}
	if s, ok := n.Attr("preserveAspectRatio"); ok {
		par, ok := ParsePreserveAspectRatio(s)
		if !ok {
			diags.add(SeverityDegenerate, CodeInvalidAlign, "preserveAspectRatio %q ignored", s)
		}
		vp.PreserveAspectRatio = par
	}

	length := func(name string, ref, fallback Num) Num {
		s, ok := n.Attr(name)
		if !ok {
			return fallback
		}
		v, err := c.Resolve(u, s, ref)
		if err != nil {
			diags.add(SeverityDegenerate, CodeUnresolvedLength, "%s: %v", name, err)
			return fallback
		}
		return v
	}

	// An outermost <svg> without a size takes it from its viewBox; a
	// nested one defaults to 100% of the enclosing viewport.
	defW, defH := refW, refH
	if root && vp.ViewBox != nil {
		defW, defH = vp.ViewBox.Width, vp.ViewBox.Height
	}
	vp.Width = length("width", refW, defW)
	vp.Height = length("height", refH, defH)
	if !root {
		vp.X = length("x", refW, Zero)
		vp.Y = length("y", refH, Zero)
	}
	if vp.ViewBox != nil && (vp.Width.Sign() <= 0 || vp.Height.Sign() <= 0) {
		diags.add(SeverityDegenerate, CodeZeroArea,
			"viewport %sx%s has no area, viewBox ignored", vp.Width, vp.Height)
	}
	vp.Transform = c.transformAttr(n, diags)
	return vp
}
