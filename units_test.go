package svgflat

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	c := Default()
	ref := n("200")
	tests := []struct {
		in   string
		want string
	}{
		{"10", "10"},
		{" 10 ", "10"},
		{"10px", "10"},
		{"-2.5", "-2.5"},
		{"1in", "96"},
		{"2.54cm", "96"},
		{"25.4mm", "96"},
		{"72pt", "96"},
		{"6pc", "96"},
		{"2em", "32"},
		{"2ex", "16"},
		{"50%", "100"},
		{"1e1px", "10"},
		{"3PX", "3"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := c.Resolve(DefaultUnits, tt.in, ref)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.in, err)
			}
			assertNear(t, tt.in, got, tt.want, c.Epsilon())
		})
	}
}

func TestResolveCustomUnits(t *testing.T) {
	c := Default()
	u := Units{DPI: n("72"), FontSize: n("10")}
	got, err := c.Resolve(u, "1in", Zero)
	if err != nil || got.Cmp(n("72")) != 0 {
		t.Errorf("1in at 72dpi = %s, %v", got, err)
	}
	got, err = c.Resolve(u, "1.5em", Zero)
	if err != nil || got.Cmp(n("15")) != 0 {
		t.Errorf("1.5em at font size 10 = %s, %v", got, err)
	}
}

func TestResolveErrors(t *testing.T) {
	c := Default()
	for _, in := range []string{"", "abc", "10 px", "10furlongs", "px"} {
		t.Run(in, func(t *testing.T) {
			_, err := c.Resolve(DefaultUnits, in, n("100"))
			var lerr *LengthError
			if !errors.As(err, &lerr) {
				t.Fatalf("Resolve(%q) error = %v, want *LengthError", in, err)
			}
			if lerr.Value != in {
				t.Errorf("LengthError.Value = %q, want %q", lerr.Value, in)
			}
		})
	}
}
