// Package generator lowers parsed stylesheets into flat rules.
//
// A Generator is used in four steps: import one or more stylesheets, call
// Compile once, then Generate into an output.Sink. All state of a run lives
// in the Generator, so independent runs may proceed in parallel as long as
// each has its own instance.
package generator

import (
	"errors"
	"fmt"

	"bssc/internal/ast"
	"bssc/internal/diag"
	"bssc/internal/eval"
	"bssc/internal/functions"
	"bssc/internal/log"
	"bssc/internal/scope"
	"bssc/internal/source"
)

// ErrImportNotFound is wrapped by resolvers when no file matches an import.
var ErrImportNotFound = errors.New("stylesheet not found")

// Resolver turns an import name into a parsed stylesheet. from is the Name
// of the importing stylesheet, empty for the entry point. The returned
// stylesheet's Name must be stable for the same underlying file, since
// imports are deduplicated by it. Resolvers may hand out shared trees: the
// generator never modifies a stylesheet it receives.
type Resolver interface {
	Resolve(from, name string) (*ast.Stylesheet, error)
}

// Options configures a Generator.
type Options struct {
	Reporter diag.Reporter
	Resolver Resolver
	// Functions resolves non-calc function calls; nil installs the
	// built-in library.
	Functions eval.FunctionEvaluator
}

type Generator struct {
	reporter diag.Reporter
	resolver Resolver
	funcs    eval.FunctionEvaluator
	eval     *eval.Evaluator

	scope      scope.Scope
	imported   map[string]bool
	sections   []*ast.Section
	extensible map[string]*ast.Section
	media      map[string]*ast.Section
	mediaOrder []string
	mixins     map[string]*ast.Mixin
	compiled   bool
}

func New(opts Options) *Generator {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	g := &Generator{
		reporter:   reporter,
		resolver:   opts.Resolver,
		funcs:      opts.Functions,
		scope:      scope.NewRoot(),
		imported:   make(map[string]bool),
		extensible: make(map[string]*ast.Section),
		media:      make(map[string]*ast.Section),
		mixins:     make(map[string]*ast.Mixin),
	}
	if g.funcs == nil {
		g.funcs = functions.New(reporter)
	}
	g.eval = eval.New(g, reporter)
	return g
}

// Scope exposes the root scope, mostly for inspection after imports.
func (g *Generator) Scope() scope.Scope { return g.scope }

// Sections returns the current top-level rules.
func (g *Generator) Sections() []*ast.Section { return g.sections }

// ImportStylesheetByName resolves name through the Resolver and imports it.
func (g *Generator) ImportStylesheetByName(name string) error {
	return g.importByName("", ast.Import{Name: name})
}

func (g *Generator) importByName(from string, imp ast.Import) error {
	if g.resolver == nil {
		return fmt.Errorf("import %q: no resolver configured", imp.Name)
	}
	sheet, err := g.resolver.Resolve(from, imp.Name)
	if err != nil {
		var perr *diag.ParseError
		switch {
		case errors.As(err, &perr):
			// parse errors were reported while parsing
		case errors.Is(err, ErrImportNotFound):
			diag.ReportError(g.reporter, diag.IOImportNotFound, imp.Span,
				fmt.Sprintf("cannot find stylesheet '%s'", imp.Name)).Emit()
		default:
			diag.ReportError(g.reporter, diag.IOImportFailed, imp.Span,
				fmt.Sprintf("cannot import '%s': %v", imp.Name, err)).Emit()
		}
		return fmt.Errorf("import %q: %w", imp.Name, err)
	}
	return g.ImportParsedStylesheet(sheet)
}

// ImportParsedStylesheet merges sheet and, depth first, everything it
// imports. A stylesheet is merged at most once per Generator.
func (g *Generator) ImportParsedStylesheet(sheet *ast.Stylesheet) error {
	if g.compiled {
		return errors.New("generator: import after Compile")
	}
	if g.imported[sheet.Name] {
		log.Debug("skipping %s: already imported", sheet.Name)
		return nil
	}
	g.imported[sheet.Name] = true

	for _, imp := range sheet.Imports {
		if err := g.importByName(sheet.Name, imp); err != nil {
			return err
		}
	}
	for _, v := range sheet.Variables {
		g.defineVariable(v)
	}
	for _, m := range sheet.Mixins {
		if _, ok := g.mixins[m.Name]; ok {
			log.Debug("mixin %s redefined in %s", m.Name, sheet.Name)
		}
		g.mixins[m.Name] = m
	}
	for _, sec := range sheet.Sections {
		g.expand(sec, "", nil)
	}
	log.Debug("imported %s: %d variables, %d mixins, %d sections",
		sheet.Name, len(sheet.Variables), len(sheet.Mixins), len(sheet.Sections))
	return nil
}

// defineVariable binds v unless it is a !default and the name is taken.
func (g *Generator) defineVariable(v ast.Variable) {
	if v.Default && g.scope.Has(v.Name) {
		log.Debug("keeping $%s: later !default ignored", v.Name)
		diag.NewReportBuilder(g.reporter, diag.SevInfo, diag.SemaRedundantDefault, v.Span,
			fmt.Sprintf("$%s is already defined, !default value ignored", v.Name)).Emit()
		return
	}
	g.scope.Set(v.Name, v.Value)
}

// EvaluateFunction is the hook the evaluator calls for every function
// except calc. It delegates to the configured function set.
func (g *Generator) EvaluateFunction(call *ast.FunctionCall) ast.Expr {
	return g.funcs.EvaluateFunction(call)
}

// evaluate reduces e in sc; warnings point at span.
func (g *Generator) evaluate(e ast.Expr, sc scope.Scope, span source.Span) ast.Expr {
	g.eval.Span = span
	if lib, ok := g.funcs.(*functions.Library); ok {
		lib.Span = span
	}
	return g.eval.Eval(e, sc)
}

func (g *Generator) warn(code diag.Code, span source.Span, format string, args ...any) {
	diag.ReportWarning(g.reporter, code, span, fmt.Sprintf(format, args...)).Emit()
}
