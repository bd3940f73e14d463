package svgflat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Num is an immutable arbitrary-precision decimal.
//
// The zero value is 0. A Num never mutates the decimal it wraps; every
// arithmetic operation on a Context allocates a fresh result, so Num values
// can be shared freely between goroutines.
type Num struct {
	d *apd.Decimal
}

var zeroDecimal = apd.New(0, 0)

// Common constants.
var (
	Zero = Num{}
	One  = NumFromInt(1)
	Two  = NumFromInt(2)
	Half = Num{d: apd.New(5, -1)}
)

func wrap(d *apd.Decimal) Num { return Num{d: d} }

func (n Num) dec() *apd.Decimal {
	if n.d == nil {
		return zeroDecimal
	}
	return n.d
}

// NumFromInt returns the exact decimal for i.
func NumFromInt(i int64) Num {
	return wrap(apd.New(i, 0))
}

// NumFromFloat converts f using its shortest decimal representation, so
// 0.1 becomes exactly 0.1 rather than the binary expansion of the float.
// Non-finite inputs map to zero.
func NumFromFloat(f float64) Num {
	d, _, err := apd.NewFromString(strconv.FormatFloat(f, 'g', -1, 64))
	if err != nil || d.Form != apd.Finite {
		return Zero
	}
	return wrap(d)
}

// ParseNum parses a decimal literal such as "12", "-0.5" or "1e-3".
func ParseNum(s string) (Num, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, fmt.Errorf("%w: empty string", ErrInvalidNumber)
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if d.Form != apd.Finite {
		return Zero, fmt.Errorf("%w: %q is not finite", ErrInvalidNumber, s)
	}
	return wrap(d), nil
}

// MustNum is like ParseNum but panics on error. Intended for constants and
// tests.
func MustNum(s string) Num {
	n, err := ParseNum(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Sign returns -1, 0 or +1.
func (n Num) Sign() int { return n.dec().Sign() }

// IsZero reports whether n is exactly zero.
func (n Num) IsZero() bool { return n.dec().IsZero() }

// IsFinite reports whether n is a finite number.
func (n Num) IsFinite() bool { return n.dec().Form == apd.Finite }

// Cmp compares n and m and returns -1, 0 or +1.
func (n Num) Cmp(m Num) int { return n.dec().Cmp(m.dec()) }

// Neg returns -n.
func (n Num) Neg() Num {
	if n.IsZero() {
		return Zero
	}
	d := new(apd.Decimal)
	d.Neg(n.dec())
	return wrap(d)
}

// Abs returns |n|.
func (n Num) Abs() Num {
	if n.Sign() >= 0 {
		return n
	}
	return n.Neg()
}

// Float64 returns the nearest float64. Intended for display and interop only.
func (n Num) Float64() float64 {
	f, err := n.dec().Float64()
	if err != nil {
		return 0
	}
	return f
}

// String returns the plain decimal notation of n.
func (n Num) String() string {
	return n.dec().Text('f')
}

// Decimal returns a copy of the underlying decimal.
func (n Num) Decimal() *apd.Decimal {
	return new(apd.Decimal).Set(n.dec())
}

// Max returns the larger of a and b.
func Max(a, b Num) Num {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min(a, b Num) Num {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Add returns a+b rounded to the context precision.
func (c *Context) Add(a, b Num) Num {
	d := new(apd.Decimal)
	_, _ = c.arith.Add(d, a.dec(), b.dec())
	return wrap(d)
}

// Sub returns a-b rounded to the context precision.
func (c *Context) Sub(a, b Num) Num {
	d := new(apd.Decimal)
	_, _ = c.arith.Sub(d, a.dec(), b.dec())
	return wrap(d)
}

// Mul returns a*b rounded to the context precision.
func (c *Context) Mul(a, b Num) Num {
	d := new(apd.Decimal)
	_, _ = c.arith.Mul(d, a.dec(), b.dec())
	return wrap(d)
}

// Quo returns a/b rounded to the context precision. Callers must guard
// b against zero; a zero divisor yields zero rather than an infinity.
func (c *Context) Quo(a, b Num) Num {
	if b.IsZero() {
		return Zero
	}
	d := new(apd.Decimal)
	_, _ = c.arith.Quo(d, a.dec(), b.dec())
	return wrap(d)
}

// Sqrt returns the square root of a. Negative inputs yield zero.
func (c *Context) Sqrt(a Num) Num {
	if a.Sign() <= 0 {
		return Zero
	}
	d := new(apd.Decimal)
	_, _ = c.arith.Sqrt(d, a.dec())
	return wrap(d)
}

// Sum adds all values.
func (c *Context) Sum(vals ...Num) Num {
	acc := Zero
	for _, v := range vals {
		acc = c.Add(acc, v)
	}
	return acc
}

// Hypot returns sqrt(a*a + b*b).
func (c *Context) Hypot(a, b Num) Num {
	return c.Sqrt(c.Add(c.Mul(a, a), c.Mul(b, b)))
}

// NearZero reports whether |a| < epsilon.
func (c *Context) NearZero(a Num) bool {
	return a.Abs().Cmp(c.epsilon) < 0
}

// Near reports whether |a-b| < tol.
func (c *Context) Near(a, b, tol Num) bool {
	return c.Sub(a, b).Abs().Cmp(tol) < 0
}

// Round rounds a half-even to the given number of decimal places.
func (c *Context) Round(a Num, places int) Num {
	d := new(apd.Decimal)
	rc := *c.arith
	rc.Rounding = apd.RoundHalfEven
	// Quantize needs enough digits for the integer part as well.
	rc.Precision = c.arith.Precision + uint32(max(places, 0))
	if _, err := rc.Quantize(d, a.dec(), int32(-places)); err != nil {
		return a
	}
	return wrap(d)
}

// FormatNum renders a rounded to places decimals without trailing zeros.
// Negative zero is printed as "0".
func (c *Context) FormatNum(a Num, places int) string {
	r := c.Round(a, places)
	if r.IsZero() {
		return "0"
	}
	s := r.dec().Text('f')
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
