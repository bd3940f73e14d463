package svgflat

import (
	"fmt"
	"sync"

	"github.com/cockroachdb/apd/v3"

	"github.com/gogpu/svgflat/internal/cache"
)

// transformCacheSize bounds the memo of parsed transform attributes kept by
// each Context for AncestorChain.
const transformCacheSize = 512

// parsedTransform is a memoized ParseTransform result.
type parsedTransform struct {
	m     Matrix
	diags Diagnostics
}

// Context carries the numeric settings every engine operation runs under:
// precision, rounding mode and the two comparison thresholds.
//
// A Context's settings are fixed once NewContext returns and it is safe for
// concurrent use. Its only internal state is a bounded memo of parsed
// transform attributes. Pass one explicitly instead of relying on any global
// precision setting.
type Context struct {
	arith     *apd.Context // result precision
	work      *apd.Context // guard digits for series evaluation
	epsilon   Num
	tolerance Num

	transforms *cache.Cache[string, parsedTransform]
}

// NewContext creates a numeric context.
//
// It returns ErrInvalidPrecision for a zero precision, ErrNonPositiveEpsilon
// when epsilon is not positive and ErrToleranceBelowEpsilon when the
// verification tolerance is smaller than epsilon.
func NewContext(opts ...Option) (*Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.precision == 0 {
		return nil, ErrInvalidPrecision
	}
	if o.epsilon.Sign() <= 0 {
		return nil, ErrNonPositiveEpsilon
	}
	if o.tolerance.Cmp(o.epsilon) < 0 {
		return nil, fmt.Errorf("%w: tolerance %s < epsilon %s",
			ErrToleranceBelowEpsilon, o.tolerance, o.epsilon)
	}

	arith := apd.BaseContext.WithPrecision(o.precision)
	arith.Rounding = o.rounding
	arith.Traps = 0

	work := apd.BaseContext.WithPrecision(o.precision + guardDigits)
	work.Rounding = o.rounding
	work.Traps = 0

	return &Context{
		arith:     arith,
		work:      work,
		epsilon:   o.epsilon,
		tolerance: o.tolerance,

		transforms: cache.New[string, parsedTransform](transformCacheSize),
	}, nil
}

var (
	defaultOnce sync.Once
	defaultCtx  *Context
)

// Default returns a shared Context built from the default options.
func Default() *Context {
	defaultOnce.Do(func() {
		c, err := NewContext()
		if err != nil {
			panic(err)
		}
		defaultCtx = c
	})
	return defaultCtx
}

// Precision returns the number of significant digits.
func (c *Context) Precision() uint32 { return c.arith.Precision }

// Epsilon returns the near-zero threshold.
func (c *Context) Epsilon() Num { return c.epsilon }

// Tolerance returns the verification tolerance.
func (c *Context) Tolerance() Num { return c.tolerance }
