package functions

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"bssc/internal/ast"
	"bssc/internal/diag"
	"bssc/internal/source"
)

// Func computes the result of one built-in; args are already evaluated.
type Func func(args []ast.Expr) (ast.Expr, error)

// errPassThrough asks the library to keep the call as written.
var errPassThrough = errors.New("pass through")

// Library dispatches calls by lower-cased name.
type Library struct {
	Reporter diag.Reporter
	Span     source.Span
	funcs    map[string]Func
}

// New returns a library preloaded with the built-ins.
func New(reporter diag.Reporter) *Library {
	lib := &Library{Reporter: reporter, funcs: make(map[string]Func, len(builtins))}
	for name, fn := range builtins {
		lib.funcs[name] = fn
	}
	return lib
}

// Register adds or replaces a function.
func (l *Library) Register(name string, fn Func) {
	l.funcs[strings.ToLower(name)] = fn
}

// names lists the registered functions in order.
func (l *Library) names() []string {
	out := make([]string, 0, len(l.funcs))
	for name := range l.funcs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// EvaluateFunction runs a built-in. Unknown names and bad arguments leave
// the call as it is; bad arguments are also reported as a warning.
func (l *Library) EvaluateFunction(call *ast.FunctionCall) ast.Expr {
	fn, ok := l.funcs[strings.ToLower(call.Name)]
	if !ok {
		return call
	}
	res, err := fn(call.Params)
	if err != nil {
		if !errors.Is(err, errPassThrough) && l.Reporter != nil {
			diag.ReportWarning(l.Reporter, diag.SemaFunctionArgs, l.Span,
				fmt.Sprintf("%s: %v", call, err)).Emit()
		}
		return call
	}
	return res
}

var builtins = map[string]Func{
	"rgb":        rgb,
	"rgba":       rgba,
	"hsl":        hsl,
	"hsla":       hsla,
	"lighten":    adjustHSL(0, 0, 1),
	"darken":     adjustHSL(0, 0, -1),
	"saturate":   adjustHSL(0, 1, 0),
	"desaturate": adjustHSL(0, -1, 0),
	"adjusthue":  adjustHue,
	"fadein":     fade(1),
	"fadeout":    fade(-1),
	"alpha":      alpha,
	"opacity":    alpha,
	"mix":        mix,
	"round":      rounding(roundHalf),
	"ceil":       rounding(roundCeil),
	"floor":      rounding(roundFloor),
	"percentage": percentage,
}

func expectArgs(args []ast.Expr, counts ...int) error {
	for _, n := range counts {
		if len(args) == n {
			return nil
		}
	}
	parts := make([]string, len(counts))
	for i, n := range counts {
		parts[i] = fmt.Sprint(n)
	}
	return fmt.Errorf("expected %s arguments, got %d", strings.Join(parts, " or "), len(args))
}
