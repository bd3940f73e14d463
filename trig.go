package svgflat

import (
	"sync"

	"github.com/cockroachdb/apd/v3"
)

// Transcendental functions evaluated by power series at the working
// precision (precision + guard digits) and rounded back to the context
// precision on return.

// piCache memoizes pi per working precision. Entries are never mutated.
var piCache sync.Map // uint32 -> *apd.Decimal

// Pi returns pi at the context precision.
func (c *Context) Pi() Num {
	return c.round(c.pi())
}

func (c *Context) pi() *apd.Decimal {
	if v, ok := piCache.Load(c.work.Precision); ok {
		return v.(*apd.Decimal)
	}
	// Machin: pi = 16*atan(1/5) - 4*atan(1/239)
	w := c.work
	fifth := new(apd.Decimal)
	_, _ = w.Quo(fifth, apd.New(1, 0), apd.New(5, 0))
	inv239 := new(apd.Decimal)
	_, _ = w.Quo(inv239, apd.New(1, 0), apd.New(239, 0))

	a := c.atanSeries(fifth)
	b := c.atanSeries(inv239)
	_, _ = w.Mul(a, a, apd.New(16, 0))
	_, _ = w.Mul(b, b, apd.New(4, 0))
	p := new(apd.Decimal)
	_, _ = w.Sub(p, a, b)

	piCache.Store(c.work.Precision, p)
	return p
}

// round converts a working-precision result into a Num at the context
// precision.
func (c *Context) round(d *apd.Decimal) Num {
	r := new(apd.Decimal)
	_, _ = c.arith.Round(r, d)
	return wrap(r)
}

// seriesLimit is 10^-(work precision + 2): terms below it no longer change
// the rounded result.
func (c *Context) seriesLimit() *apd.Decimal {
	return apd.New(1, -int32(c.work.Precision)-2)
}

// atanSeries evaluates sum((-1)^k x^(2k+1)/(2k+1)). Only used for |x| <= 0.25.
func (c *Context) atanSeries(x *apd.Decimal) *apd.Decimal {
	w := c.work
	limit := c.seriesLimit()

	sum := new(apd.Decimal).Set(x)
	x2 := new(apd.Decimal)
	_, _ = w.Mul(x2, x, x)
	power := new(apd.Decimal).Set(x)
	term := new(apd.Decimal)
	abs := new(apd.Decimal)
	for k := int64(1); k < 10000; k++ {
		_, _ = w.Mul(power, power, x2)
		power.Neg(power)
		_, _ = w.Quo(term, power, apd.New(2*k+1, 0))
		_, _ = w.Add(sum, sum, term)
		abs.Abs(term)
		if abs.Cmp(limit) < 0 {
			break
		}
	}
	return sum
}

// reduceAngle maps x into [-pi, pi] at working precision.
func (c *Context) reduceAngle(x *apd.Decimal) *apd.Decimal {
	w := c.work
	pi := c.pi()
	if new(apd.Decimal).Abs(x).Cmp(pi) <= 0 {
		return new(apd.Decimal).Set(x)
	}
	twoPi := new(apd.Decimal)
	_, _ = w.Mul(twoPi, pi, apd.New(2, 0))
	q := new(apd.Decimal)
	_, _ = w.Quo(q, x, twoPi)
	rc := *w
	rc.Rounding = apd.RoundHalfEven
	_, _ = rc.RoundToIntegralValue(q, q)
	r := new(apd.Decimal)
	_, _ = w.Mul(r, q, twoPi)
	_, _ = w.Sub(r, x, r)
	return r
}

// sinCos evaluates both Taylor series on the reduced angle.
func (c *Context) sinCos(x Num) (*apd.Decimal, *apd.Decimal) {
	w := c.work
	limit := c.seriesLimit()
	r := c.reduceAngle(x.dec())

	r2 := new(apd.Decimal)
	_, _ = w.Mul(r2, r, r)

	sin := new(apd.Decimal).Set(r)
	sinTerm := new(apd.Decimal).Set(r)
	cos := apd.New(1, 0)
	cosTerm := apd.New(1, 0)
	abs := new(apd.Decimal)
	div := new(apd.Decimal)

	for n := int64(1); n < 10000; n++ {
		// cos term: -t * r^2 / ((2n-1)(2n))
		_, _ = w.Mul(cosTerm, cosTerm, r2)
		div.SetInt64((2*n - 1) * (2 * n))
		_, _ = w.Quo(cosTerm, cosTerm, div)
		cosTerm.Neg(cosTerm)
		_, _ = w.Add(cos, cos, cosTerm)

		// sin term: -t * r^2 / ((2n)(2n+1))
		_, _ = w.Mul(sinTerm, sinTerm, r2)
		div.SetInt64((2 * n) * (2*n + 1))
		_, _ = w.Quo(sinTerm, sinTerm, div)
		sinTerm.Neg(sinTerm)
		_, _ = w.Add(sin, sin, sinTerm)

		abs.Abs(cosTerm)
		if abs.Cmp(limit) < 0 {
			abs.Abs(sinTerm)
			if abs.Cmp(limit) < 0 {
				break
			}
		}
	}
	return sin, cos
}

// Sin returns sin(x) for x in radians.
func (c *Context) Sin(x Num) Num {
	s, _ := c.sinCos(x)
	return c.round(s)
}

// Cos returns cos(x) for x in radians.
func (c *Context) Cos(x Num) Num {
	_, co := c.sinCos(x)
	return c.round(co)
}

// SinCos returns sin(x) and cos(x) from a single series evaluation.
func (c *Context) SinCos(x Num) (Num, Num) {
	s, co := c.sinCos(x)
	return c.round(s), c.round(co)
}

// Tan returns tan(x) and false when cos(x) is within epsilon of zero.
func (c *Context) Tan(x Num) (Num, bool) {
	s, co := c.sinCos(x)
	cn := c.round(co)
	if c.NearZero(cn) {
		return Zero, false
	}
	q := new(apd.Decimal)
	_, _ = c.work.Quo(q, s, co)
	return c.round(q), true
}

// atan evaluates arctangent at working precision.
func (c *Context) atan(x *apd.Decimal) *apd.Decimal {
	w := c.work
	if x.IsZero() {
		return new(apd.Decimal)
	}
	if x.Sign() < 0 {
		r := c.atan(new(apd.Decimal).Neg(x))
		return r.Neg(r)
	}
	one := apd.New(1, 0)
	if x.Cmp(one) > 0 {
		// atan(x) = pi/2 - atan(1/x)
		inv := new(apd.Decimal)
		_, _ = w.Quo(inv, one, x)
		halfPi := new(apd.Decimal)
		_, _ = w.Quo(halfPi, c.pi(), apd.New(2, 0))
		r := c.atan(inv)
		_, _ = w.Sub(r, halfPi, r)
		return r
	}

	// Halve the angle until the series converges quickly:
	// atan(x) = 2*atan(x / (1 + sqrt(1 + x^2)))
	y := new(apd.Decimal).Set(x)
	factor := int64(1)
	quarter := apd.New(25, -2)
	tmp := new(apd.Decimal)
	for y.Cmp(quarter) > 0 {
		_, _ = w.Mul(tmp, y, y)
		_, _ = w.Add(tmp, tmp, one)
		_, _ = w.Sqrt(tmp, tmp)
		_, _ = w.Add(tmp, tmp, one)
		_, _ = w.Quo(y, y, tmp)
		factor *= 2
	}
	r := c.atanSeries(y)
	_, _ = w.Mul(r, r, apd.New(factor, 0))
	return r
}

// Atan returns arctan(x) in radians.
func (c *Context) Atan(x Num) Num {
	return c.round(c.atan(x.dec()))
}

// Atan2 returns the angle of the vector (x, y) in (-pi, pi].
func (c *Context) Atan2(y, x Num) Num {
	w := c.work
	pi := c.pi()
	switch {
	case x.IsZero() && y.IsZero():
		return Zero
	case x.IsZero():
		h := new(apd.Decimal)
		_, _ = w.Quo(h, pi, apd.New(2, 0))
		if y.Sign() < 0 {
			h.Neg(h)
		}
		return c.round(h)
	}

	q := new(apd.Decimal)
	_, _ = w.Quo(q, y.dec(), x.dec())
	r := c.atan(q)
	if x.Sign() < 0 {
		if y.Sign() >= 0 {
			_, _ = w.Add(r, r, pi)
		} else {
			_, _ = w.Sub(r, r, pi)
		}
	}
	return c.round(r)
}

// Radians converts degrees to radians.
func (c *Context) Radians(deg Num) Num {
	r := new(apd.Decimal)
	_, _ = c.work.Mul(r, deg.dec(), c.pi())
	_, _ = c.work.Quo(r, r, apd.New(180, 0))
	return c.round(r)
}

// Degrees converts radians to degrees.
func (c *Context) Degrees(rad Num) Num {
	r := new(apd.Decimal)
	_, _ = c.work.Mul(r, rad.dec(), apd.New(180, 0))
	_, _ = c.work.Quo(r, r, c.pi())
	return c.round(r)
}

// NormalizeAngle maps a radian angle into (-pi, pi].
func (c *Context) NormalizeAngle(theta Num) Num {
	w := c.work
	r := c.reduceAngle(theta.dec())
	pi := c.pi()
	negPi := new(apd.Decimal).Neg(pi)
	twoPi := new(apd.Decimal)
	_, _ = w.Mul(twoPi, pi, apd.New(2, 0))
	if r.Cmp(negPi) <= 0 {
		_, _ = w.Add(r, r, twoPi)
	}
	if r.Cmp(pi) > 0 {
		_, _ = w.Sub(r, r, twoPi)
	}
	return c.round(r)
}

// NormalizeDegrees180 maps a degree angle into [0, 180), the canonical
// range for an undirected ellipse axis.
func (c *Context) NormalizeDegrees180(deg Num) Num {
	w := c.work
	d := new(apd.Decimal).Set(deg.dec())
	full := apd.New(180, 0)
	_, _ = w.Rem(d, d, full)
	if d.Sign() < 0 {
		_, _ = w.Add(d, d, full)
	}
	r := c.round(d)
	if c.Near(r, NumFromInt(180), c.epsilon) {
		return Zero
	}
	return r
}
