package functions

import (
	"fmt"
	"math"
	"strings"

	"github.com/mazznoer/csscolorparser"

	"bssc/internal/ast"
)

// colorArg accepts a Color, a hex string or anything csscolorparser knows
// (names, rgb()/hsl() text).
func colorArg(e ast.Expr) (*ast.Color, error) {
	switch e := e.(type) {
	case *ast.Color:
		return e, nil
	case *ast.Value, *ast.FunctionCall:
		text := strings.Trim(e.String(), `"'`)
		if c, ok := ast.ParseHexColor(text); ok && strings.HasPrefix(text, "#") {
			return c, nil
		}
		parsed, err := csscolorparser.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("%q is not a colour", text)
		}
		return ast.NewColor(to255(parsed.R), to255(parsed.G), to255(parsed.B), parsed.A), nil
	}
	return nil, fmt.Errorf("%q is not a colour", e.String())
}

func to255(v float64) int {
	return int(math.Round(v * 255))
}

func numArg(e ast.Expr) (*ast.Num, error) {
	if n, ok := e.(*ast.Num); ok {
		return n, nil
	}
	if v, ok := e.(*ast.Value); ok {
		if n, ok := ast.ParseNum(v.Text); ok {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%q is not a number", e.String())
}

func floatArg(e ast.Expr) (float64, error) {
	n, err := numArg(e)
	if err != nil {
		return 0, err
	}
	return n.Value.InexactFloat64(), nil
}

// channelArg reads an rgb channel: 0..255 or a percentage.
func channelArg(e ast.Expr) (int, error) {
	n, err := numArg(e)
	if err != nil {
		return 0, err
	}
	v := n.Value.InexactFloat64()
	if n.Unit == "%" {
		v = v * 255 / 100
	}
	return int(math.Round(v)), nil
}

// fractionArg reads an amount in [0, 1]. "10%" and "10" both mean 0.1;
// unitless values up to 1 are taken as they are.
func fractionArg(e ast.Expr) (float64, error) {
	n, err := numArg(e)
	if err != nil {
		return 0, err
	}
	v := n.Value.InexactFloat64()
	if n.Unit == "%" || v > 1 {
		v /= 100
	}
	return v, nil
}
