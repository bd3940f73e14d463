package svgflat

import "errors"

// PathOption configures TransformPath.
type PathOption func(*pathOptions)

type pathOptions struct {
	relative bool
	snap     bool
	places   int
}

// WithRelativeOutput makes TransformPath keep lower-case commands relative
// to the transformed current point instead of emitting every segment in
// absolute coordinates.
//
// TransformPath alone computes each offset from the exact previous output
// point, so rounding every offset separately can drift by a unit in the
// last place per segment. FlattenPath and BakeAll round output points
// first and take offsets between rounded points, so re-absolutised
// relative output matches the absolute output digit for digit.
func WithRelativeOutput() PathOption {
	return func(o *pathOptions) {
		o.relative = true
	}
}

// snapTo rounds every output point to places decimals as it is produced.
func snapTo(places int) PathOption {
	return func(o *pathOptions) {
		o.snap = true
		o.places = places
	}
}

// PathResult is the outcome of TransformPath.
type PathResult struct {
	Commands    []PathCommand
	Diagnostics Diagnostics

	// Verified is false when any arc segment failed its self-check;
	// MaxError is the worst arc error seen.
	Verified bool
	MaxError Num
}

// pathState tracks the current point and subpath start in input space and,
// for relative output, in output space.
type pathState struct {
	cur, start       Vec2
	outCur, outStart Vec2
}

// TransformPath applies m to every coordinate of a path.
//
// Relative coordinates are resolved against the current point before the
// matrix is applied. Horizontal and vertical lines become general lines,
// because neither survives a rotation or skew. Arcs go through TransformArc.
// A command whose argument count is not a multiple of its arity is
// processed up to the last complete segment and reported.
func (c *Context) TransformPath(cmds []PathCommand, m Matrix, opts ...PathOption) PathResult {
	var o pathOptions
	for _, opt := range opts {
		opt(&o)
	}

	res := PathResult{Verified: true, MaxError: Zero}
	var st pathState
	for i, cmd := range cmds {
		arity := Arity(cmd.Letter)
		if arity < 0 {
			res.Diagnostics.add(SeverityFatal, CodeSyntax, "command %d: unknown letter %q", i, cmd.Letter)
			continue
		}
		if arity == 0 {
			if len(cmd.Args) > 0 {
				res.Diagnostics.add(SeverityInformational, CodeArgumentCount,
					"command %d: closepath takes no arguments, %d ignored", i, len(cmd.Args))
			}
			st.cur, st.outCur = st.start, st.outStart
			res.Commands = append(res.Commands, PathCommand{Letter: 'Z', Relative: cmd.Relative && o.relative})
			continue
		}

		segments := len(cmd.Args) / arity
		if rem := len(cmd.Args) % arity; rem != 0 || segments == 0 {
			res.Diagnostics.add(SeverityFatal, CodeArgumentCount,
				"command %d (%c): %d arguments is not a multiple of %d, %d dropped",
				i, cmd.Letter, len(cmd.Args), arity, rem)
			Logger().Debug("svgflat: path command truncated",
				"command", string(cmd.Letter), "index", i, "args", len(cmd.Args))
		}

		for s := 0; s < segments; s++ {
			args := cmd.Args[s*arity : (s+1)*arity]
			letter := cmd.Letter
			if letter == 'M' && s > 0 {
				letter = 'L'
			}
			out := c.transformSegment(&st, &res, letter, cmd.Relative, args, m, o)
			res.Commands = append(res.Commands, out)
		}
	}
	return res
}

// transformSegment handles one segment and advances the state.
func (c *Context) transformSegment(st *pathState, res *PathResult, letter byte, rel bool, args []Num, m Matrix, o pathOptions) PathCommand {
	base := st.cur
	abs := func(x, y Num) Vec2 {
		p := Vec2{X: x, Y: y}
		if rel {
			p = c.AddVec(base, p)
		}
		return p
	}
	outBase := st.outCur
	emitRel := rel && o.relative
	apply := func(p Vec2) Vec2 {
		q := c.Apply(m, p)
		if o.snap {
			q = Vec2{X: c.Round(q.X, o.places), Y: c.Round(q.Y, o.places)}
		}
		return q
	}

	var pts []Vec2
	var end Vec2
	switch letter {
	case 'M':
		end = abs(args[0], args[1])
		pts = []Vec2{end}
	case 'L', 'T':
		end = abs(args[0], args[1])
		pts = []Vec2{end}
	case 'H':
		x := args[0]
		if rel {
			x = c.Add(base.X, x)
		}
		end = Vec2{X: x, Y: base.Y}
		pts = []Vec2{end}
		letter = 'L'
	case 'V':
		y := args[0]
		if rel {
			y = c.Add(base.Y, y)
		}
		end = Vec2{X: base.X, Y: y}
		pts = []Vec2{end}
		letter = 'L'
	case 'C':
		pts = []Vec2{abs(args[0], args[1]), abs(args[2], args[3]), abs(args[4], args[5])}
		end = pts[2]
	case 'S', 'Q':
		pts = []Vec2{abs(args[0], args[1]), abs(args[2], args[3])}
		end = pts[1]
	case 'A':
		end = abs(args[5], args[6])
		ar := c.TransformArc(Arc{
			RX:            args[0],
			RY:            args[1],
			XAxisRotation: args[2],
			LargeArc:      !args[3].IsZero(),
			Sweep:         !args[4].IsZero(),
			End:           end,
		}, m)
		if ar.Degenerate {
			res.Diagnostics.add(SeverityDegenerate, CodeDegenerateArc,
				"arc to (%s, %s) has zero radius after transform", end.X, end.Y)
		}
		if !ar.Verified {
			res.Verified = false
		}
		res.MaxError = Max(res.MaxError, ar.MaxError)

		absEnd := ar.End
		if o.snap {
			absEnd = apply(end)
		}
		outEnd := absEnd
		if emitRel {
			outEnd = c.SubVec(outEnd, outBase)
		}
		st.cur = end
		st.outCur = absEnd
		return PathCommand{
			Letter:   'A',
			Relative: emitRel,
			Args: []Num{
				ar.RX, ar.RY, ar.XAxisRotation,
				flagNum(ar.LargeArc), flagNum(ar.Sweep),
				outEnd.X, outEnd.Y,
			},
		}
	}

	outArgs := make([]Num, 0, 2*len(pts))
	var outEnd Vec2
	for _, p := range pts {
		q := apply(p)
		outEnd = q
		if emitRel {
			q = c.SubVec(q, outBase)
		}
		outArgs = append(outArgs, q.X, q.Y)
	}

	st.cur = end
	st.outCur = outEnd
	if letter == 'M' {
		st.start = end
		st.outStart = outEnd
	}
	return PathCommand{Letter: letter, Relative: emitRel, Args: outArgs}
}

func flagNum(b bool) Num {
	if b {
		return One
	}
	return Zero
}

// FlattenPath parses path data, applies m and formats the result with at
// most places decimals. Blank input yields an empty string.
func (c *Context) FlattenPath(d string, m Matrix, places int, opts ...PathOption) (string, PathResult, error) {
	cmds, err := ParsePathData(d)
	if errors.Is(err, ErrEmptyPath) {
		return "", PathResult{Verified: true, MaxError: Zero}, nil
	}
	if err != nil {
		return "", PathResult{}, err
	}
	res := c.TransformPath(cmds, m, append(opts[:len(opts):len(opts)], snapTo(places))...)
	return c.FormatPathData(res.Commands, places), res, nil
}
