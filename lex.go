package svgflat

import (
	"github.com/tdewolff/parse/v2"
)

// scanner walks attribute text shared by the transform, viewBox and path
// data grammars.
type scanner struct {
	b   []byte
	pos int
}

func newScanner(s string) *scanner {
	return &scanner{b: []byte(s)}
}

func (s *scanner) eof() bool { return s.pos >= len(s.b) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.b[s.pos]
}

// skipSpace skips whitespace only.
func (s *scanner) skipSpace() {
	for !s.eof() && parse.IsWhitespace(s.b[s.pos]) {
		s.pos++
	}
}

// skipSeparators skips whitespace and at most one comma.
func (s *scanner) skipSeparators() {
	s.skipSpace()
	if s.peek() == ',' {
		s.pos++
		s.skipSpace()
	}
}

// number scans one numeric literal, including scientific notation.
// It returns false without consuming input when no number starts here.
func (s *scanner) number() (Num, bool) {
	n := parse.Number(s.b[s.pos:])
	if n == 0 {
		return Zero, false
	}
	v, err := ParseNum(string(s.b[s.pos : s.pos+n]))
	if err != nil {
		return Zero, false
	}
	s.pos += n
	return v, true
}

// flag scans a single '0' or '1' arc flag, which may be written without a
// separator before the next value.
func (s *scanner) flag() (bool, bool) {
	switch s.peek() {
	case '0':
		s.pos++
		return false, true
	case '1':
		s.pos++
		return true, true
	}
	return false, false
}

// ident scans an ASCII identifier.
func (s *scanner) ident() string {
	start := s.pos
	for !s.eof() {
		ch := s.b[s.pos]
		if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' {
			s.pos++
			continue
		}
		break
	}
	return string(s.b[start:s.pos])
}

// skipToIdent advances to the next ASCII letter, or to the end.
func (s *scanner) skipToIdent() {
	for !s.eof() && !isLetter(s.b[s.pos]) {
		s.pos++
	}
}

// numberList scans numbers separated by whitespace and/or commas.
func (s *scanner) numberList() []Num {
	var out []Num
	for {
		s.skipSeparators()
		v, ok := s.number()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// ParseNumberList parses a comma/space separated list of numbers. It
// returns false if any non-numeric text remains.
func ParseNumberList(str string) ([]Num, bool) {
	s := newScanner(str)
	vals := s.numberList()
	s.skipSeparators()
	return vals, s.eof()
}
