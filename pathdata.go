package svgflat

import (
	"fmt"
	"strings"
)

// PathCommand is one command of SVG path data. Letter is the upper-case
// command letter and Relative records whether it was written in lower case.
// Args may hold several argument groups (implicitly repeated commands).
type PathCommand struct {
	Letter   byte
	Relative bool
	Args     []Num
}

// Arity returns the number of arguments one segment of the command takes.
func Arity(letter byte) int {
	switch letter {
	case 'M', 'L', 'T':
		return 2
	case 'H', 'V':
		return 1
	case 'C':
		return 6
	case 'S', 'Q':
		return 4
	case 'A':
		return 7
	case 'Z':
		return 0
	}
	return -1
}

// String renders the command as it appears in path data.
func (pc PathCommand) String() string {
	var sb strings.Builder
	sb.WriteByte(pc.letterByte())
	for i, a := range pc.Args {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(a.String())
	}
	return sb.String()
}

func (pc PathCommand) letterByte() byte {
	if pc.Relative {
		return pc.Letter + ('a' - 'A')
	}
	return pc.Letter
}

// ParsePathData parses the d attribute of a <path>.
//
// Numbers may use scientific notation and need no separator where the sign
// or a second decimal point starts the next one; arc flags may be written
// without separators. Blank input returns ErrEmptyPath; text that is not
// path data returns a *PathSyntaxError.
func ParsePathData(d string) ([]PathCommand, error) {
	s := newScanner(d)
	s.skipSpace()
	if s.eof() {
		return nil, ErrEmptyPath
	}

	var cmds []PathCommand
	for {
		s.skipSeparators()
		if s.eof() {
			return cmds, nil
		}
		ch := s.peek()
		upper := ch &^ ('a' - 'A')
		arity := Arity(upper)
		if arity < 0 || !isLetter(ch) {
			return nil, &PathSyntaxError{Offset: s.pos, Reason: fmt.Sprintf("unexpected %q", ch)}
		}
		if len(cmds) == 0 && upper != 'M' {
			return nil, &PathSyntaxError{Offset: s.pos, Reason: "path data must start with a moveto"}
		}
		s.pos++
		cmd := PathCommand{Letter: upper, Relative: ch != upper}

		if upper == 'A' {
			cmd.Args = s.arcArgs()
		} else if arity > 0 {
			cmd.Args = s.numberList()
		}
		cmds = append(cmds, cmd)

		s.skipSeparators()
		if !s.eof() && !isLetter(s.peek()) {
			return nil, &PathSyntaxError{Offset: s.pos, Reason: fmt.Sprintf("unexpected %q", s.peek())}
		}
	}
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

// arcArgs scans arc argument groups: rx ry rotation large-arc sweep x y.
// A trailing partial group is kept so the transformer can report it.
func (s *scanner) arcArgs() []Num {
	var out []Num
	for {
		for i := 0; i < 7; i++ {
			s.skipSeparators()
			if i == 3 || i == 4 {
				f, ok := s.flag()
				if !ok {
					return out
				}
				if f {
					out = append(out, One)
				} else {
					out = append(out, Zero)
				}
				continue
			}
			v, ok := s.number()
			if !ok {
				return out
			}
			out = append(out, v)
		}
	}
}

// FormatPathData renders commands with at most places decimals.
func (c *Context) FormatPathData(cmds []PathCommand, places int) string {
	var sb strings.Builder
	for i, pc := range cmds {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(pc.letterByte())
		for j, a := range pc.Args {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(c.FormatNum(a, places))
		}
	}
	return sb.String()
}
