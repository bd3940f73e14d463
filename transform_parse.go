package svgflat

import "strings"

// ParseTransform parses a transform attribute such as
// "translate(10,20) rotate(45) scale(2)" into one matrix, the left-to-right
// product of every function in the list.
//
// A malformed or unknown function contributes the identity and a fatal
// diagnostic; the rest of the list is still applied.
func (c *Context) ParseTransform(s string) (Matrix, Diagnostics) {
	list, diags := c.ParseTransformList(s)
	return c.ListMatrix(list), diags
}

// ParseTransformList parses a transform attribute into named operations for
// the optimizer. Angles are converted from degrees to radians; skewX and
// skewY become MatrixOp entries.
func (c *Context) ParseTransformList(str string) ([]NamedTransform, Diagnostics) {
	var (
		list  []NamedTransform
		diags Diagnostics
	)
	s := newScanner(str)
	for {
		s.skipSeparators()
		if s.eof() {
			break
		}
		start := s.pos
		name := s.ident()
		if name == "" {
			diags.add(SeverityFatal, CodeSyntax, "unexpected %q at offset %d", s.peek(), s.pos)
			s.pos++
			s.skipToIdent()
			continue
		}
		s.skipSpace()
		if s.peek() != '(' {
			diags.add(SeverityFatal, CodeSyntax, "%s at offset %d: missing '('", name, start)
			s.skipToIdent()
			continue
		}
		s.pos++
		args := s.numberList()
		s.skipSeparators()
		if s.peek() != ')' {
			diags.add(SeverityFatal, CodeSyntax, "%s at offset %d: malformed arguments", name, start)
			// resync after the closing parenthesis, if any
			if i := strings.IndexByte(str[s.pos:], ')'); i >= 0 {
				s.pos += i + 1
				continue
			}
			break
		}
		s.pos++

		op, ok := c.namedTransform(name, args, &diags)
		if !ok {
			Logger().Debug("svgflat: transform function replaced by identity",
				"function", name, "offset", start)
			continue
		}
		list = append(list, op)
	}
	return list, diags
}

// namedTransform maps one parsed function to its operation.
func (c *Context) namedTransform(name string, args []Num, diags *Diagnostics) (NamedTransform, bool) {
	bad := func(want string) (NamedTransform, bool) {
		diags.add(SeverityFatal, CodeBadArguments, "%s expects %s arguments, got %d", name, want, len(args))
		return nil, false
	}

	switch name {
	case "translate":
		switch len(args) {
		case 1:
			return TranslateOp{TX: args[0]}, true
		case 2:
			return TranslateOp{TX: args[0], TY: args[1]}, true
		}
		return bad("1 or 2")

	case "scale":
		switch len(args) {
		case 1:
			return ScaleOp{SX: args[0], SY: args[0]}, true
		case 2:
			return ScaleOp{SX: args[0], SY: args[1]}, true
		}
		return bad("1 or 2")

	case "rotate":
		switch len(args) {
		case 1:
			return Rotation(c.Radians(args[0])), true
		case 2:
			diags.add(SeverityFatal, CodeBadArguments, "%v", ErrRotateCenter)
			return nil, false
		case 3:
			return RotationAbout(c.Radians(args[0]), args[1], args[2]), true
		}
		return bad("1 or 3")

	case "skewX", "skewY":
		if len(args) != 1 {
			return bad("1")
		}
		theta := c.Radians(args[0])
		var (
			m  Matrix
			ok bool
		)
		if name == "skewX" {
			m, ok = c.SkewX(theta)
		} else {
			m, ok = c.SkewY(theta)
		}
		if !ok {
			diags.add(SeverityDegenerate, CodeInfiniteSkew, "%s(%s) has an unbounded shear", name, args[0])
			return nil, false
		}
		return MatrixOp{M: m}, true

	case "matrix":
		m, err := MatrixFromValues(args)
		if err != nil {
			return bad("6")
		}
		return MatrixOp{M: m}, true
	}

	diags.add(SeverityFatal, CodeUnknownFunction, "unknown transform function %q", name)
	return nil, false
}
