package functions

import (
	"github.com/shopspring/decimal"

	"bssc/internal/ast"
)

func rgb(args []ast.Expr) (ast.Expr, error) {
	if err := expectArgs(args, 3); err != nil {
		return nil, err
	}
	var ch [3]int
	for i := range ch {
		v, err := channelArg(args[i])
		if err != nil {
			return nil, err
		}
		ch[i] = v
	}
	return ast.NewColor(ch[0], ch[1], ch[2], 1), nil
}

// rgba(r, g, b, a) or rgba(color, a).
func rgba(args []ast.Expr) (ast.Expr, error) {
	if err := expectArgs(args, 2, 4); err != nil {
		return nil, err
	}
	if len(args) == 2 {
		c, err := colorArg(args[0])
		if err != nil {
			return nil, err
		}
		a, err := floatArg(args[1])
		if err != nil {
			return nil, err
		}
		return c.WithAlpha(a), nil
	}
	c, err := rgb(args[:3])
	if err != nil {
		return nil, err
	}
	a, err := floatArg(args[3])
	if err != nil {
		return nil, err
	}
	return c.(*ast.Color).WithAlpha(a), nil
}

func hsl(args []ast.Expr) (ast.Expr, error) {
	if err := expectArgs(args, 3); err != nil {
		return nil, err
	}
	return hslColor(args, 1)
}

func hsla(args []ast.Expr) (ast.Expr, error) {
	if err := expectArgs(args, 4); err != nil {
		return nil, err
	}
	a, err := floatArg(args[3])
	if err != nil {
		return nil, err
	}
	return hslColor(args[:3], a)
}

func hslColor(args []ast.Expr, a float64) (ast.Expr, error) {
	h, err := floatArg(args[0])
	if err != nil {
		return nil, err
	}
	s, err := fractionArg(args[1])
	if err != nil {
		return nil, err
	}
	l, err := fractionArg(args[2])
	if err != nil {
		return nil, err
	}
	return ast.ColorFromHSL(h, s, l, a), nil
}

// adjustHSL builds lighten/darken/saturate/desaturate; the signs select
// which component moves and in which direction.
func adjustHSL(dh, ds, dl float64) Func {
	return func(args []ast.Expr) (ast.Expr, error) {
		if err := expectArgs(args, 2); err != nil {
			return nil, err
		}
		c, err := colorArg(args[0])
		if err != nil {
			return nil, err
		}
		amount, err := fractionArg(args[1])
		if err != nil {
			return nil, err
		}
		h, s, l := c.HSL()
		return ast.ColorFromHSL(h+dh*amount, s+ds*amount, l+dl*amount, c.A), nil
	}
}

func adjustHue(args []ast.Expr) (ast.Expr, error) {
	if err := expectArgs(args, 2); err != nil {
		return nil, err
	}
	c, err := colorArg(args[0])
	if err != nil {
		return nil, err
	}
	deg, err := floatArg(args[1])
	if err != nil {
		return nil, err
	}
	h, s, l := c.HSL()
	return ast.ColorFromHSL(h+deg, s, l, c.A), nil
}

func fade(sign float64) Func {
	return func(args []ast.Expr) (ast.Expr, error) {
		if err := expectArgs(args, 2); err != nil {
			return nil, err
		}
		c, err := colorArg(args[0])
		if err != nil {
			return nil, err
		}
		amount, err := fractionArg(args[1])
		if err != nil {
			return nil, err
		}
		return c.WithAlpha(c.A + sign*amount), nil
	}
}

// alpha(color) yields the alpha channel. A non-colour argument is kept as
// written since opacity() is also a CSS filter function.
func alpha(args []ast.Expr) (ast.Expr, error) {
	if len(args) != 1 {
		return nil, errPassThrough
	}
	c, err := colorArg(args[0])
	if err != nil {
		return nil, errPassThrough
	}
	return ast.NewNum(decimal.NewFromFloat(c.A), ""), nil
}

// mix(a, b[, weight]); weight is the share of a and defaults to 50%.
func mix(args []ast.Expr) (ast.Expr, error) {
	if err := expectArgs(args, 2, 3); err != nil {
		return nil, err
	}
	a, err := colorArg(args[0])
	if err != nil {
		return nil, err
	}
	b, err := colorArg(args[1])
	if err != nil {
		return nil, err
	}
	weight := 0.5
	if len(args) == 3 {
		if weight, err = fractionArg(args[2]); err != nil {
			return nil, err
		}
	}
	return a.Mix(b, weight), nil
}
