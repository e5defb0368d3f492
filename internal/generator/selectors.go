package generator

import (
	"slices"

	"bssc/internal/ast"
)

// crossJoin combines every parent selector with every child selector,
// parents varying slowest.
func crossJoin(parents, children []ast.Selector) []ast.Selector {
	out := make([]ast.Selector, 0, len(parents)*len(children))
	for _, parent := range parents {
		for _, child := range children {
			out = append(out, combine(parent, child))
		}
	}
	return out
}

// combine nests child into parent:
//
//	"&.active" in ".btn"  -> ".btn.active"
//	"& > a"    in ".btn"  -> ".btn > a"
//	".ie &"    in ".btn"  -> ".ie .btn"
//	"b"        in "a"     -> "a b"
func combine(parent, child ast.Selector) ast.Selector {
	n := len(child)
	switch {
	case n > 1 && child[0] == "&":
		if isCombinator(child[1]) {
			return concat(parent, child[1:])
		}
		if len(parent) == 0 {
			return slices.Clone(child[1:])
		}
		out := slices.Clone(parent)
		out[len(out)-1] += child[1]
		return append(out, child[2:]...)
	case n > 0 && child[n-1] == "&":
		return concat(child[:n-1], parent)
	}
	return concat(parent, child)
}

func concat(a, b ast.Selector) ast.Selector {
	out := make(ast.Selector, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func isCombinator(frag string) bool {
	return frag == ">" || frag == "+" || frag == "~"
}
