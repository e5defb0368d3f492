package functions

import (
	"github.com/shopspring/decimal"

	"bssc/internal/ast"
)

type roundMode uint8

const (
	roundHalf roundMode = iota
	roundCeil
	roundFloor
)

func rounding(mode roundMode) Func {
	return func(args []ast.Expr) (ast.Expr, error) {
		if err := expectArgs(args, 1); err != nil {
			return nil, err
		}
		n, err := numArg(args[0])
		if err != nil {
			return nil, err
		}
		var v decimal.Decimal
		switch mode {
		case roundCeil:
			v = n.Value.Ceil()
		case roundFloor:
			v = n.Value.Floor()
		default:
			v = n.Value.Round(0)
		}
		return ast.NewNum(v, n.Unit), nil
	}
}

// percentage(0.25) = 25%.
func percentage(args []ast.Expr) (ast.Expr, error) {
	if err := expectArgs(args, 1); err != nil {
		return nil, err
	}
	n, err := numArg(args[0])
	if err != nil {
		return nil, err
	}
	return ast.NewNum(n.Value.Mul(decimal.NewFromInt(100)), "%"), nil
}
