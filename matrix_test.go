package svgflat

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestMultiplyOrder(t *testing.T) {
	c := Default()
	// translate · scale: scale first, then translate.
	m := c.Multiply(Translate(n("10"), Zero), Scale(Two, Two))
	p := c.Apply(m, V2(One, One))
	if p.X.Cmp(n("12")) != 0 || p.Y.Cmp(n("2")) != 0 {
		t.Errorf("Apply = (%s, %s), want (12, 2)", p.X, p.Y)
	}

	m = c.Multiply(Scale(Two, Two), Translate(n("10"), Zero))
	p = c.Apply(m, V2(One, One))
	if p.X.Cmp(n("22")) != 0 || p.Y.Cmp(n("2")) != 0 {
		t.Errorf("Apply = (%s, %s), want (22, 2)", p.X, p.Y)
	}
}

func TestMatrixAt(t *testing.T) {
	m := m6("1", "2", "3", "4", "5", "6")
	want := [3][3]string{{"1", "3", "5"}, {"2", "4", "6"}, {"0", "0", "1"}}
	for r := range 3 {
		for col := range 3 {
			if got := m.At(r, col); got.Cmp(n(want[r][col])) != 0 {
				t.Errorf("At(%d, %d) = %s, want %s", r, col, got, want[r][col])
			}
		}
	}
}

func TestMatrixFromValues(t *testing.T) {
	m, err := MatrixFromValues(nums("1", "0", "0", "1", "5", "6"))
	if err != nil {
		t.Fatal(err)
	}
	if m.E.Cmp(n("5")) != 0 || m.F.Cmp(n("6")) != 0 {
		t.Errorf("MatrixFromValues = %s", m)
	}
	if _, err := MatrixFromValues(nums("1", "2", "3")); !errors.Is(err, ErrMatrixArity) {
		t.Errorf("error = %v, want ErrMatrixArity", err)
	}
}

func TestMatrixString(t *testing.T) {
	if got := m6("1", "0", "-0.5", "1", "10", "20").String(); got != "matrix(1,0,-0.5,1,10,20)" {
		t.Errorf("String() = %q", got)
	}
}

func TestRotateAbout(t *testing.T) {
	c := Default()
	m := c.RotateAbout(c.Radians(n("90")), n("10"), n("10"))
	p := c.Apply(m, V2(n("20"), n("10")))
	assertNear(t, "x", p.X, "10", fine)
	assertNear(t, "y", p.Y, "20", fine)

	// the center is fixed
	q := c.Apply(m, V2(n("10"), n("10")))
	assertNear(t, "cx", q.X, "10", fine)
	assertNear(t, "cy", q.Y, "10", fine)
}

func TestSkew(t *testing.T) {
	c := Default()
	kx, ok := c.SkewX(c.Radians(n("45")))
	if !ok {
		t.Fatal("SkewX(45) unbounded")
	}
	assertNear(t, "skewX C", kx.C, "1", fine)

	ky, ok := c.SkewY(c.Radians(n("-45")))
	if !ok {
		t.Fatal("SkewY(-45) unbounded")
	}
	assertNear(t, "skewY B", ky.B, "-1", fine)

	if _, ok := c.SkewX(c.Radians(n("90"))); ok {
		t.Error("SkewX(90) should be unbounded")
	}
}

func TestInvert(t *testing.T) {
	c := Default()
	m := c.MultiplyAll(Translate(n("3"), n("-7")), c.Rotate(c.Radians(n("30"))), Scale(n("2"), n("0.5")))
	inv, ok := c.Invert(m)
	if !ok {
		t.Fatal("Invert reported a singular matrix")
	}
	assertMatrixNear(t, c.Multiply(m, inv), Identity(), fine)
	assertMatrixNear(t, c.Multiply(inv, m), Identity(), fine)

	if _, ok := c.Invert(Scale(Zero, One)); ok {
		t.Error("Invert(scale(0,1)) should fail")
	}
}

func TestMultiplyAssociative(t *testing.T) {
	c := Default()
	r := rand.New(rand.NewPCG(1, 2))
	random := func() Matrix {
		var v [6]Num
		for i := range v {
			v[i] = NumFromFloat(float64(r.IntN(2000)-1000) / 100)
		}
		return NewMatrix(v[0], v[1], v[2], v[3], v[4], v[5])
	}
	for range 50 {
		a, b, d := random(), random(), random()
		left := c.Multiply(c.Multiply(a, b), d)
		right := c.Multiply(a, c.Multiply(b, d))
		assertMatrixNear(t, left, right, n("1e-18"))
	}
}

func TestMatrixPredicates(t *testing.T) {
	c := Default()
	rot := c.Rotate(c.Radians(n("30")))
	tests := []struct {
		name                         string
		m                            Matrix
		identity, translation, scale bool
		rigid                        bool
	}{
		{"identity", Identity(), true, true, true, true},
		{"translate", Translate(n("1"), n("2")), false, true, false, true},
		{"scale", Scale(n("2"), n("3")), false, false, true, false},
		{"zero scale", Scale(Zero, Zero), false, false, true, false},
		{"rotate", rot, false, false, false, true},
		{"rotate+translate", c.Multiply(Translate(n("5"), Zero), rot), false, false, false, true},
		{"reflection", Scale(n("-1"), One), false, false, true, false},
		{"nearly identity", m6("1.00000000001", "0", "0", "1", "0", "0"), true, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsIdentity(tt.m); got != tt.identity {
				t.Errorf("IsIdentity = %v", got)
			}
			if got := c.IsTranslation(tt.m); got != tt.translation {
				t.Errorf("IsTranslation = %v", got)
			}
			if got := c.IsScale(tt.m); got != tt.scale {
				t.Errorf("IsScale = %v", got)
			}
			if got := c.IsRigid(tt.m); got != tt.rigid {
				t.Errorf("IsRigid = %v", got)
			}
		})
	}
}

func TestBottomRowImplied(t *testing.T) {
	c := Default()
	m := c.MultiplyAll(Translate(n("1"), n("2")), Scale(n("3"), n("4")), c.Rotate(n("0.3")))
	if m.At(2, 0).Sign() != 0 || m.At(2, 1).Sign() != 0 || m.At(2, 2).Cmp(One) != 0 {
		t.Errorf("bottom row = %s %s %s", m.At(2, 0), m.At(2, 1), m.At(2, 2))
	}
}
