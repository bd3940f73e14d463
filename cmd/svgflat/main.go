// Command svgflat bakes SVG transforms into path data and inspects
// transform matrices with exact decimal arithmetic.
//
// Usage:
//
//	svgflat flatten --transform "rotate(30) scale(2)" "M0 0 L10 0 A5 5 0 0 1 20 0"
//	svgflat optimize "translate(10) translate(5, 5) rotate(45)"
//	svgflat decompose "matrix(0 1 -1 0 10 20)"
//	svgflat viewbox --preserve-aspect-ratio "xMinYMin slice" "0 0 100 50" 800 600
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "svgflat:", err)
		os.Exit(1)
	}
}
