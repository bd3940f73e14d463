package svgflat

import "github.com/cockroachdb/apd/v3"

// Option configures a Context during creation.
//
// Example:
//
//	// Default precision (28 significant digits)
//	nc, _ := svgflat.NewContext()
//
//	// 40 digits with a tighter verification tolerance
//	nc, err := svgflat.NewContext(
//	    svgflat.WithPrecision(40),
//	    svgflat.WithTolerance(svgflat.MustNum("1e-12")),
//	)
type Option func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	precision uint32
	rounding  apd.Rounder
	epsilon   Num
	tolerance Num
}

// Default option values.
const (
	DefaultPrecision = 28
	guardDigits      = 10
)

// Default tolerances. VERIFICATION_TOLERANCE must stay >= EPSILON.
var (
	DefaultEpsilon   = MustNum("1e-10")
	DefaultTolerance = MustNum("1e-8")
)

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		precision: DefaultPrecision,
		rounding:  apd.RoundHalfEven,
		epsilon:   DefaultEpsilon,
		tolerance: DefaultTolerance,
	}
}

// WithPrecision sets the number of significant decimal digits kept by every
// arithmetic operation.
func WithPrecision(digits uint32) Option {
	return func(o *contextOptions) {
		o.precision = digits
	}
}

// WithRounding sets the rounding mode applied when a result exceeds the
// precision.
func WithRounding(r apd.Rounder) Option {
	return func(o *contextOptions) {
		o.rounding = r
	}
}

// WithEpsilon sets the near-zero threshold used by identity, orthogonality
// and parallelism tests.
func WithEpsilon(eps Num) Option {
	return func(o *contextOptions) {
		o.epsilon = eps
	}
}

// WithTolerance sets the maximum element-wise difference accepted when two
// independently computed matrices are compared.
func WithTolerance(tol Num) Option {
	return func(o *contextOptions) {
		o.tolerance = tol
	}
}
