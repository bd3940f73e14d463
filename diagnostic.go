package svgflat

import (
	"errors"
	"fmt"
	"strings"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	// SeverityInformational marks a harmless normalization, such as
	// surplus arguments that were ignored.
	SeverityInformational Severity = iota

	// SeverityDegenerate marks legal but degenerate geometry (zero-area
	// box, singular scale, vertical skew) that was replaced by a safe
	// fallback.
	SeverityDegenerate

	// SeverityFatal marks input that could not be understood. The operation
	// still returns a best-effort result; strict callers should reject it.
	SeverityFatal
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInformational:
		return "info"
	case SeverityDegenerate:
		return "degenerate"
	case SeverityFatal:
		return "fatal"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic describes an anomaly met while processing input.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
}

func (d Diagnostic) String() string {
	return d.Severity.String() + " " + d.Code + ": " + d.Message
}

// Diagnostic codes.
const (
	CodeUnknownFunction  = "unknown-function"
	CodeBadArguments     = "bad-arguments"
	CodeSyntax           = "syntax"
	CodeInfiniteSkew     = "infinite-skew"
	CodeZeroArea         = "zero-area"
	CodeInvalidViewBox   = "invalid-viewbox"
	CodeInvalidAlign     = "invalid-align"
	CodeArgumentCount    = "argument-count"
	CodeDegenerateArc    = "degenerate-arc"
	CodeSingularMatrix   = "singular-matrix"
	CodeUnresolvedLength = "unresolved-length"
	CodeNotVerified      = "not-verified"
)

// Diagnostics is an ordered list of Diagnostic values.
type Diagnostics []Diagnostic

func (ds *Diagnostics) add(sev Severity, code, format string, args ...any) {
	*ds = append(*ds, Diagnostic{Severity: sev, Code: code, Message: fmt.Sprintf(format, args...)})
}

// Max returns the highest severity present, or SeverityInformational when
// the list is empty.
func (ds Diagnostics) Max() Severity {
	m := SeverityInformational
	for _, d := range ds {
		if d.Severity > m {
			m = d.Severity
		}
	}
	return m
}

// HasFatal reports whether any diagnostic is fatal.
func (ds Diagnostics) HasFatal() bool {
	return ds.Max() == SeverityFatal
}

// Err joins the fatal diagnostics into an error, or returns nil.
func (ds Diagnostics) Err() error {
	var errs []error
	for _, d := range ds {
		if d.Severity == SeverityFatal {
			errs = append(errs, errors.New("svgflat: "+d.Code+": "+d.Message))
		}
	}
	return errors.Join(errs...)
}

func (ds Diagnostics) String() string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.String()
	}
	return strings.Join(parts, "; ")
}
