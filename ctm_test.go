package svgflat

import "testing"

func TestViewportMatrix(t *testing.T) {
	c := Default()
	vb := ViewBox{Width: n("100"), Height: n("50")}
	rot := c.Rotate(c.Radians(n("90")))

	tests := []struct {
		name string
		vp   Viewport
		want Matrix
	}{
		{"bare", Viewport{Width: n("10"), Height: n("10")}, Identity()},
		{"position only", Viewport{X: n("5"), Y: n("7"), Width: n("10"), Height: n("10")}, Translate(n("5"), n("7"))},
		{"viewBox", Viewport{Width: n("200"), Height: n("100"), ViewBox: &vb}, Scale(Two, Two)},
		{"position and viewBox", Viewport{X: n("1"), Y: n("2"), Width: n("200"), Height: n("100"), ViewBox: &vb},
			m6("2", "0", "0", "2", "1", "2")},
		{"transform first", Viewport{X: n("1"), Width: n("10"), Height: n("10"), Transform: &rot},
			c.Multiply(rot, Translate(One, Zero))},
		{"degenerate size ignores viewBox", Viewport{X: n("3"), ViewBox: &vb}, Translate(n("3"), Zero)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertMatrixNear(t, c.ViewportMatrix(tt.vp), tt.want, fine)
		})
	}
}

func TestBuildFullCTM(t *testing.T) {
	c := Default()
	vb := ViewBox{Width: n("100"), Height: n("100")}
	chain := []Ancestor{
		SVGAncestor(Viewport{Width: n("800"), Height: n("600"), ViewBox: &vb, PreserveAspectRatio: DefaultPreserveAspectRatio}),
		GroupAncestor(Translate(n("10"), Zero)),
		{Kind: KindGroup},
		ElementAncestor(Scale(Two, Two)),
	}
	// scale(6) centered at x=100, then translate(10), then scale(2)
	want := m6("12", "0", "0", "12", "160", "0")
	assertMatrixNear(t, c.BuildFullCTM(chain), want, fine)

	if got := c.BuildFullCTM(nil); !c.IsIdentity(got) {
		t.Errorf("empty chain = %s, want identity", got)
	}
}

func TestBuildFullCTMAssociative(t *testing.T) {
	c := Default()
	a := GroupAncestor(c.RotateAbout(c.Radians(n("30")), n("4"), n("-2")))
	b := GroupAncestor(m6("1.5", "0.2", "-0.3", "0.8", "7", "9"))
	el := ElementAncestor(Translate(n("-3"), n("11")))

	whole := c.BuildFullCTM([]Ancestor{a, b, el})
	prefix := c.BuildFullCTM([]Ancestor{a, b})
	split := c.Multiply(prefix, c.AncestorMatrix(el))
	assertMatrixNear(t, whole, split, c.Epsilon())

	// reordering the chain changes the result
	swapped := c.BuildFullCTM([]Ancestor{b, a, el})
	if c.Equal(whole, swapped, c.Tolerance()) {
		t.Error("chain order had no effect")
	}
}

func TestAncestorKindString(t *testing.T) {
	for k, want := range map[AncestorKind]string{KindSVG: "svg", KindGroup: "g", KindElement: "element", AncestorKind(9): "unknown"} {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(k), got, want)
		}
	}
}
