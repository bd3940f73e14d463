package svgflat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fine is the comparison threshold for results that should agree to
// nearly full precision.
var fine = MustNum("1e-20")

// numComparer lets cmp compare Num values by value.
var numComparer = cmp.Comparer(func(a, b Num) bool { return a.Cmp(b) == 0 })

func n(s string) Num { return MustNum(s) }

func nums(ss ...string) []Num {
	out := make([]Num, len(ss))
	for i, s := range ss {
		out[i] = MustNum(s)
	}
	return out
}

func m6(a, b, c, d, e, f string) Matrix {
	return NewMatrix(n(a), n(b), n(c), n(d), n(e), n(f))
}

func assertNear(t *testing.T, what string, got Num, want string, tol Num) {
	t.Helper()
	c := Default()
	if !c.Near(got, MustNum(want), tol) {
		t.Errorf("%s = %s, want %s (tol %s)", what, got, want, tol)
	}
}

func assertMatrixNear(t *testing.T, got, want Matrix, tol Num) {
	t.Helper()
	c := Default()
	if !c.Equal(got, want, tol) {
		t.Errorf("matrix = %s, want %s (max diff %s)", got, want, c.MaxDiff(got, want))
	}
}
