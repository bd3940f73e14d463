package svgflat

import (
	"strings"

	"github.com/tdewolff/parse/v2"
)

// Units resolves SVG lengths to user units.
//
// Percentages resolve against a reference length supplied by the caller
// (the enclosing viewport dimension), font-relative units against FontSize
// (ex is half an em) and absolute units through DPI.
type Units struct {
	DPI      Num
	FontSize Num
}

// DefaultUnits uses 96 DPI and a 16 unit font size.
var DefaultUnits = Units{DPI: NumFromInt(96), FontSize: NumFromInt(16)}

// Resolve converts a length such as "10", "2.5mm" or "50%" to user units.
func (c *Context) Resolve(u Units, s string, reference Num) (Num, error) {
	str := strings.TrimSpace(s)
	b := []byte(str)
	num, unit := parse.Dimension(b)
	if num == 0 || num+unit != len(b) {
		return Zero, &LengthError{Value: s, Reason: "not a length"}
	}
	v, err := ParseNum(str[:num])
	if err != nil {
		return Zero, &LengthError{Value: s, Reason: "bad number"}
	}

	perInch := func(n int64) Num { return c.Quo(u.DPI, NumFromInt(n)) }
	switch strings.ToLower(str[num:]) {
	case "", "px":
		return v, nil
	case "%":
		return c.Quo(c.Mul(v, reference), NumFromInt(100)), nil
	case "em":
		return c.Mul(v, u.FontSize), nil
	case "ex":
		return c.Mul(v, c.Mul(u.FontSize, Half)), nil
	case "in":
		return c.Mul(v, u.DPI), nil
	case "cm":
		return c.Quo(c.Mul(v, u.DPI), MustNum("2.54")), nil
	case "mm":
		return c.Quo(c.Mul(v, u.DPI), MustNum("25.4")), nil
	case "pt":
		return c.Mul(v, perInch(72)), nil
	case "pc":
		return c.Mul(v, perInch(6)), nil
	}
	return Zero, &LengthError{Value: s, Reason: "unknown unit " + str[num:]}
}
