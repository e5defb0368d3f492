// Package eval reduces expressions against a scope. Evaluation never mutates
// its input: constant nodes are returned as they are and everything else is
// rebuilt.
package eval

import (
	"fmt"

	"github.com/shopspring/decimal"

	"bssc/internal/ast"
	"bssc/internal/diag"
	"bssc/internal/scope"
	"bssc/internal/source"
)

// FunctionEvaluator resolves a call whose parameters are already evaluated.
type FunctionEvaluator interface {
	EvaluateFunction(call *ast.FunctionCall) ast.Expr
}

// Evaluator carries the function hook and the diagnostics sink for one
// compilation. Span is attached to every warning and is updated by the caller
// before each attribute.
type Evaluator struct {
	Funcs    FunctionEvaluator
	Reporter diag.Reporter
	Span     source.Span

	active map[string]bool
}

// New creates an evaluator; funcs may be nil to pass every call through.
func New(funcs FunctionEvaluator, reporter diag.Reporter) *Evaluator {
	return &Evaluator{Funcs: funcs, Reporter: reporter}
}

var (
	hundred       = decimal.NewFromInt(100)
	roundingSlack = decimal.RequireFromString("0.009")
)

// Eval reduces e in sc.
func (ev *Evaluator) Eval(e ast.Expr, sc scope.Scope) ast.Expr {
	switch e := e.(type) {
	case nil:
		return ast.Empty()
	case *ast.Value, *ast.Num, *ast.Color:
		return e
	case *ast.VariableRef:
		return ev.evalVariable(e, sc)
	case *ast.Operation:
		return ev.evalOperation(e, sc)
	case *ast.FunctionCall:
		return ev.evalCall(e, sc)
	case *ast.ValueList:
		out := &ast.ValueList{KeepCommas: e.KeepCommas, Elements: make([]ast.Expr, len(e.Elements))}
		for i, el := range e.Elements {
			out.Elements[i] = ev.Eval(el, sc)
		}
		return out
	case *ast.NamedParameter:
		if ast.IsConstant(e) {
			return e
		}
		return &ast.NamedParameter{Name: e.Name, Value: ev.Eval(e.Value, sc)}
	case *ast.MediaFilter:
		return &ast.MediaFilter{Name: e.Name, Value: ev.Eval(e.Value, sc)}
	}
	panic(fmt.Sprintf("eval: unexpected expression %T", e))
}

func (ev *Evaluator) evalVariable(ref *ast.VariableRef, sc scope.Scope) ast.Expr {
	value, ok := sc.Lookup(ref.Name)
	if !ok {
		return ast.Empty()
	}
	if ev.active[ref.Name] {
		ev.warn(diag.SemaVariableCycle, fmt.Sprintf("variable $%s refers to itself", ref.Name))
		return ast.Empty()
	}
	if ev.active == nil {
		ev.active = make(map[string]bool)
	}
	ev.active[ref.Name] = true
	defer delete(ev.active, ref.Name)
	return ev.Eval(value, sc)
}

func (ev *Evaluator) evalCall(call *ast.FunctionCall, sc scope.Scope) ast.Expr {
	// calc() is native CSS; its arguments are left to the browser
	if call.Name == "calc" {
		return call
	}
	out := &ast.FunctionCall{Name: call.Name, Params: make([]ast.Expr, len(call.Params))}
	for i, p := range call.Params {
		out.Params[i] = ev.Eval(p, sc)
	}
	if ev.Funcs == nil {
		return out
	}
	return ev.Funcs.EvaluateFunction(out)
}

func (ev *Evaluator) evalOperation(op *ast.Operation, sc scope.Scope) ast.Expr {
	left := ev.Eval(op.Left, sc)
	right := ev.Eval(op.Right, sc)
	l, lok := left.(*ast.Num)
	r, rok := right.(*ast.Num)
	if !lok || !rok {
		return &ast.Value{Text: left.String() + right.String()}
	}
	return ev.evalNumbers(op, l, r)
}

func (ev *Evaluator) evalNumbers(op *ast.Operation, l, r *ast.Num) *ast.Num {
	lv, lu := l.Value, l.Unit
	if lu == "%" {
		lv, lu = lv.Div(hundred), ""
	}
	rv, ru := r.Value, r.Unit
	if ru == "%" {
		rv, ru = rv.Div(hundred), ""
	}

	value := ev.apply(op, lv, rv)
	var unit string
	if percentResult(l.Unit, r.Unit) {
		value = value.Mul(hundred)
		unit = "%"
	} else {
		unit = ev.resultUnit(op, lu, ru)
	}

	if rounded := value.Round(0); value.Sub(rounded).Abs().LessThanOrEqual(roundingSlack) {
		value = rounded
	}
	return ast.NewNum(value, unit)
}

func (ev *Evaluator) apply(op *ast.Operation, l, r decimal.Decimal) decimal.Decimal {
	switch op.Op {
	case "+":
		return l.Add(r)
	case "-":
		return l.Sub(r)
	case "*":
		return l.Mul(r)
	case "/", "%":
		if r.IsZero() {
			ev.warn(diag.SemaDivisionByZero,
				fmt.Sprintf("cannot evaluate '%s': division by 0, using 0", op))
			return decimal.Zero
		}
		if op.Op == "/" {
			return l.Div(r)
		}
		return l.Mod(r)
	}
	return decimal.Zero
}

// percentResult: both sides are percentages, or one is and the other has
// no unit at all.
func percentResult(lu, ru string) bool {
	if lu == "%" && ru == "%" {
		return true
	}
	if lu == "%" || ru == "%" {
		return lu == "" || ru == ""
	}
	return false
}

func (ev *Evaluator) resultUnit(op *ast.Operation, lu, ru string) string {
	if lu == "" {
		return ru
	}
	if ru != "" && ru != lu {
		ev.warn(diag.SemaUnitMismatch,
			fmt.Sprintf("incompatible units in '%s': using %q", op, lu))
	}
	return lu
}

func (ev *Evaluator) warn(code diag.Code, msg string) {
	if ev.Reporter == nil {
		return
	}
	ev.Reporter.Report(code, diag.SevWarning, ev.Span, msg, nil)
}
