// Package svgflat is an arbitrary-precision affine transform engine for SVG.
//
// # Overview
//
// svgflat parses transform attributes into matrices, factors and simplifies
// them, builds the current transformation matrix (CTM) of an element from
// its ancestor chain including viewBox mappings, and bakes a CTM directly
// into path data so the transform attribute can be dropped. All arithmetic
// is decimal (github.com/cockroachdb/apd/v3) and every non-trivial result
// is checked by recomposing it and comparing with its input.
//
// # Quick Start
//
//	import "github.com/gogpu/svgflat"
//
//	c := svgflat.Default()
//
//	m, diags := c.ParseTransform("translate(10,20) rotate(45) scale(2)")
//	if diags.HasFatal() {
//	    return diags.Err()
//	}
//
//	d, res, err := c.FlattenPath("M0 0 L10 0 A5 5 0 0 1 20 0", m, 3)
//
// # Numeric Context
//
// There is no process-wide precision. A [Context] carries the precision,
// rounding mode, EPSILON (near-zero threshold, default 1e-10) and
// verification tolerance (default 1e-8) and is passed to every operation:
//
//	c, err := svgflat.NewContext(
//	    svgflat.WithPrecision(40),
//	    svgflat.WithTolerance(svgflat.MustNum("1e-12")),
//	)
//
// A Context is safe for concurrent use; [Context.BakeAll] flattens many
// paths in parallel with one.
//
// # Diagnostics
//
// Hard input errors are returned as errors. Anomalies the engine can work
// around (unknown transform functions, zero-area boxes, degenerate arcs,
// malformed argument counts) are reported as [Diagnostics] next to a
// best-effort result, so callers decide how strict to be.
//
// # Verification
//
// Decomposition, optimizer rewrites and arc transforms report whether
// their output reproduces the input within the verification tolerance
// (Verified and MaxError fields). A failed check is logged at Warn level;
// see [SetLogger].
package svgflat
