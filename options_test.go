package svgflat

import (
	"errors"
	"sync"
	"testing"

	"github.com/cockroachdb/apd/v3"
)

func TestNewContextDefaults(t *testing.T) {
	c, err := NewContext()
	if err != nil {
		t.Fatalf("NewContext() error: %v", err)
	}
	if c.Precision() != DefaultPrecision {
		t.Errorf("Precision() = %d, want %d", c.Precision(), DefaultPrecision)
	}
	if c.Epsilon().Cmp(MustNum("1e-10")) != 0 {
		t.Errorf("Epsilon() = %s, want 1e-10", c.Epsilon())
	}
	if c.Tolerance().Cmp(MustNum("1e-8")) != 0 {
		t.Errorf("Tolerance() = %s, want 1e-8", c.Tolerance())
	}
}

func TestNewContextOptions(t *testing.T) {
	c, err := NewContext(
		WithPrecision(12),
		WithRounding(apd.RoundDown),
		WithEpsilon(MustNum("1e-6")),
		WithTolerance(MustNum("1e-5")),
	)
	if err != nil {
		t.Fatalf("NewContext() error: %v", err)
	}
	if got := c.Quo(NumFromInt(2), NumFromInt(3)); got.String() != "0.666666666666" {
		t.Errorf("2/3 at 12 digits rounding down = %s", got)
	}
	if !c.NearZero(MustNum("5e-7")) {
		t.Error("epsilon option not applied")
	}
}

func TestNewContextErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"zero precision", []Option{WithPrecision(0)}, ErrInvalidPrecision},
		{"zero epsilon", []Option{WithEpsilon(Zero)}, ErrNonPositiveEpsilon},
		{"negative epsilon", []Option{WithEpsilon(MustNum("-1e-3"))}, ErrNonPositiveEpsilon},
		{"tolerance below epsilon", []Option{WithTolerance(MustNum("1e-12"))}, ErrToleranceBelowEpsilon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContext(tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewContext() error = %v, want %v", err, tt.want)
			}
			if c != nil {
				t.Error("NewContext() returned a context alongside an error")
			}
		})
	}
}

func TestDefaultShared(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*Context, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = Default()
		}()
	}
	wg.Wait()
	for i, c := range got {
		if c != got[0] {
			t.Fatalf("Default() call %d returned a different context", i)
		}
	}
}

func TestContextsAreIndependent(t *testing.T) {
	narrow, err := NewContext(WithPrecision(5))
	if err != nil {
		t.Fatal(err)
	}
	wide := Default()

	third := func(c *Context) string { return c.Quo(One, NumFromInt(3)).String() }
	if got := third(narrow); got != "0.33333" {
		t.Errorf("narrow 1/3 = %s", got)
	}
	if got := third(wide); len(got) != 30 {
		t.Errorf("wide 1/3 = %s, want 28 digits", got)
	}
}
