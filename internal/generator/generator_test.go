package generator

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"bssc/internal/ast"
	"bssc/internal/diag"
	"bssc/internal/output"
	"bssc/internal/parser"
)

// mapResolver serves stylesheets from memory and counts lookups.
type mapResolver struct {
	files map[string]string
	calls map[string]int
}

func newMapResolver(files map[string]string) *mapResolver {
	return &mapResolver{files: files, calls: make(map[string]int)}
}

func (r *mapResolver) Resolve(_, name string) (*ast.Stylesheet, error) {
	r.calls[name]++
	src, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrImportNotFound)
	}
	return parser.ParseSource(name, src, parser.Options{})
}

type harness struct {
	gen *Generator
	bag *diag.Bag
}

func newHarness(files map[string]string) *harness {
	bag := diag.NewBag(100)
	return &harness{
		gen: New(Options{Reporter: diag.BagReporter{Bag: bag}, Resolver: newMapResolver(files)}),
		bag: bag,
	}
}

func (h *harness) codes() []diag.Code {
	var out []diag.Code
	for _, d := range h.bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func compileWith(t *testing.T, src string, compact bool) (string, *harness) {
	t.Helper()
	h := newHarness(map[string]string{"main.bss": src})
	require.NoError(t, h.gen.ImportStylesheetByName("main.bss"))
	h.gen.Compile()
	return output.String(compact, h.gen.Generate), h
}

func compact(t *testing.T, src string) string {
	t.Helper()
	out, _ := compileWith(t, src, true)
	return out
}

func TestSimpleRule(t *testing.T) {
	expanded, _ := compileWith(t, "a { color: red; }", false)
	assert.Equal(t, "a {\n    color: red;\n}\n", expanded)
	assert.Equal(t, "a { color: red; }\n", compact(t, "a { color: red; }"))
}

func TestNesting(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"descendant", "a { b { color: red; } }", "a b { color: red; }\n"},
		{"parent pseudo", "a { &:hover { color: red; } }", "a:hover { color: red; }\n"},
		{"parent class", ".btn { &.active { x: 1; } }", ".btn.active { x: 1; }\n"},
		{"parent suffix", ".btn { .ie & { x: 1; } }", ".ie .btn { x: 1; }\n"},
		{"child combinator", "ul { > li { x: 1; } }", "ul > li { x: 1; }\n"},
		{"parent keeps attributes", "a { x: 1; b { y: 2; } }", "a { x: 1; }\na b { y: 2; }\n"},
		{"cross product", "a, b { c, d { x: 1; } }", "a c, a d, b c, b d { x: 1; }\n"},
		{"three levels", "a, b { c { d { x: 1; } } }", "a c d, b c d { x: 1; }\n"},
		{"siblings do not leak", "a { b { x: 1; } c { y: 2; } }", "a b { x: 1; }\na c { y: 2; }\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, compact(t, tc.src))
		})
	}
}

func TestCombine(t *testing.T) {
	cases := []struct {
		parent, child, want ast.Selector
	}{
		{ast.Selector{".btn"}, ast.Selector{"&", ".active"}, ast.Selector{".btn.active"}},
		{ast.Selector{"ul", "li"}, ast.Selector{"&", ":first-child", "a"}, ast.Selector{"ul", "li:first-child", "a"}},
		{ast.Selector{".btn"}, ast.Selector{"&", ">", "a"}, ast.Selector{".btn", ">", "a"}},
		{ast.Selector{".btn"}, ast.Selector{".ie", "&"}, ast.Selector{".ie", ".btn"}},
		{ast.Selector{"a"}, ast.Selector{"&"}, ast.Selector{"a"}},
		{ast.Selector{"a"}, ast.Selector{"b"}, ast.Selector{"a", "b"}},
	}
	for _, tc := range cases {
		parent := append(ast.Selector(nil), tc.parent...)
		assert.Equal(t, tc.want, combine(tc.parent, tc.child))
		assert.Equal(t, parent, tc.parent, "parent must not change")
	}
}

func TestArithmeticInAttributes(t *testing.T) {
	out, h := compileWith(t, "a { w: 10px + 5; p: 50% + 50%; z: 10px / 0; }", true)
	assert.Equal(t, "a { w: 15px; p: 100%; z: 0px; }\n", out)
	assert.Equal(t, []diag.Code{diag.SemaDivisionByZero}, h.codes())
	assert.False(t, h.bag.HasErrors())
}

func TestVariables(t *testing.T) {
	got := compact(t, "$c: red; $w: 2px; a { color: $c; border: $w * 2 solid $c; }")
	assert.Equal(t, "a { color: red; border: 4px solid red; }\n", got)
}

func TestDefaultVariables(t *testing.T) {
	files := map[string]string{
		"main.bss":    "@import 'first'; @import 'second';",
		"plain.bss":   "@import 'first'; @import 'override';",
		"reverse.bss": "$x: 1; $x: 5 !default;",
		"first":       "$x: 1 !default;",
		"second":      "$x: 2 !default;",
		"override":    "$x: 2;",
	}

	h := newHarness(files)
	require.NoError(t, h.gen.ImportStylesheetByName("main.bss"))
	assert.Equal(t, "1", h.gen.Scope().Get("x").String())
	require.Len(t, h.bag.Items(), 1)
	assert.Equal(t, diag.SemaRedundantDefault, h.bag.Items()[0].Code)
	assert.Equal(t, diag.SevInfo, h.bag.Items()[0].Severity)

	h = newHarness(files)
	require.NoError(t, h.gen.ImportStylesheetByName("plain.bss"))
	assert.Equal(t, "2", h.gen.Scope().Get("x").String())

	h = newHarness(files)
	require.NoError(t, h.gen.ImportStylesheetByName("reverse.bss"))
	assert.Equal(t, "1", h.gen.Scope().Get("x").String())
}

func TestImportsAreDeduplicated(t *testing.T) {
	files := map[string]string{
		"main.bss": "@import 'a'; @import 'a'; m { x: 1; }",
		"a": "@import 'main.bss'; a { y: 2; }",
	}
	h := newHarness(files)
	require.NoError(t, h.gen.ImportStylesheetByName("main.bss"))
	h.gen.Compile()
	assert.Equal(t, "a { y: 2; }\nm { x: 1; }\n", output.String(true, h.gen.Generate))
}

func TestImportDepthFirst(t *testing.T) {
	files := map[string]string{
		"main.bss": "@import 'a'; @import 'b'; main { x: 1; }",
		"a": "@import 'c'; a { x: 1; }",
		"b": "b { x: 1; }",
		"c": "c { x: 1; }",
	}
	h := newHarness(files)
	require.NoError(t, h.gen.ImportStylesheetByName("main.bss"))
	h.gen.Compile()
	assert.Equal(t, "c { x: 1; }\na { x: 1; }\nb { x: 1; }\nmain { x: 1; }\n",
		output.String(true, h.gen.Generate))
}

func TestMixinRedefinitionLastWins(t *testing.T) {
	files := map[string]string{
		"main.bss": "@import 'a'; @import 'b'; p { @include m; }",
		"a": "@mixin m { x: 1; }",
		"b": "@mixin m { x: 2; }",
	}
	h := newHarness(files)
	require.NoError(t, h.gen.ImportStylesheetByName("main.bss"))
	h.gen.Compile()
	assert.Equal(t, "p { x: 2; }\n", output.String(true, h.gen.Generate))
	assert.Empty(t, h.bag.Items())
}

func TestImportNotFound(t *testing.T) {
	h := newHarness(map[string]string{"main.bss": "@import 'missing';"})
	err := h.gen.ImportStylesheetByName("main.bss")
	require.ErrorIs(t, err, ErrImportNotFound)
	assert.Equal(t, []diag.Code{diag.IOImportNotFound}, h.codes())
	assert.True(t, h.bag.HasErrors())
}

func TestImportParseErrorAborts(t *testing.T) {
	h := newHarness(map[string]string{
		"main.bss": "@import 'broken'; a { x: 1; }",
		"broken":   "b { color: ; }",
	})
	err := h.gen.ImportStylesheetByName("main.bss")
	var perr *diag.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Count())
	assert.Empty(t, h.gen.Sections())
}

func TestExtend(t *testing.T) {
	got := compact(t, ".base { color: red; } .warn { @extend .base; font-weight: bold; }")
	assert.Equal(t, ".warn, .base { color: red; }\n.warn { font-weight: bold; }\n", got)
}

func TestExtendDeclaredLater(t *testing.T) {
	got := compact(t, ".warn { @extend .base; } .base { color: red; }")
	assert.Equal(t, ".warn, .base { color: red; }\n", got)
}

func TestUnknownExtend(t *testing.T) {
	out, h := compileWith(t, ".a { @extend .nope; color: red; }", true)
	assert.Equal(t, ".a { color: red; }\n", out)
	assert.Equal(t, []diag.Code{diag.SemaUnknownExtend}, h.codes())
}

func TestMixinArity(t *testing.T) {
	out, h := compileWith(t, "@mixin pair($a, $b) { first: $a; second: $b; } .x { @include pair(red); }", true)
	assert.Equal(t, ".x { first: red; second: ; }\n", out)
	assert.Equal(t, []diag.Code{diag.SemaMixinArity}, h.codes())
}

func TestMixinScope(t *testing.T) {
	got := compact(t, "$c: blue; @mixin m($c) { color: $c; } a { b: $c; @include m(red); }")
	assert.Equal(t, "a { b: blue; color: red; }\n", got)
}

func TestMixinArgumentsUseCallerScope(t *testing.T) {
	got := compact(t, "$w: 2px; @mixin m($x) { width: $x * 2; } a { @include m($w + 1); }")
	assert.Equal(t, "a { width: 6px; }\n", got)
}

func TestMixinSubSections(t *testing.T) {
	got := compact(t, "@mixin hov($c) { &:hover { color: $c; } } a, b { x: 1; @call hov(red); }")
	assert.Equal(t, "a, b { x: 1; }\na:hover { color: red; }\nb:hover { color: red; }\n", got)
}

func TestMixinSubSectionRulePerSelectorPair(t *testing.T) {
	got := compact(t, "@mixin m { b { x: 1; } } a, c { @include m; }")
	assert.Equal(t, "a b { x: 1; }\nc b { x: 1; }\n", got)

	got = compact(t, "@mixin m { b, i { x: 1; } } a, c { @include m; }")
	assert.Equal(t, "a b { x: 1; }\nc b { x: 1; }\na i { x: 1; }\nc i { x: 1; }\n", got)
}

func TestUnknownMixinStopsSection(t *testing.T) {
	out, h := compileWith(t, "@mixin ok { x: 1; } .a { y: 2; @include nope; @include ok; } .b { @include ok; }", true)
	assert.Equal(t, ".a { y: 2; }\n.b { x: 1; }\n", out)
	assert.Equal(t, []diag.Code{diag.SemaUnknownMixin}, h.codes())
}

func TestMediaHoisting(t *testing.T) {
	src := "nav { display: block; @media print { display: none; } }"
	assert.Equal(t, "@media print {\nnav { display: none; } }\nnav { display: block; }\n", compact(t, src))

	expanded, _ := compileWith(t, src, false)
	assert.Equal(t, "@media print {\n    nav {\n        display: none;\n    }\n}\nnav {\n    display: block;\n}\n", expanded)
}

func TestMediaQueriesAreEvaluated(t *testing.T) {
	got := compact(t, "$bp: 600px; @media screen and (max-width: $bp) { a { x: 1; } }")
	assert.Equal(t, "@media screen and (max-width: 600px) {\na { x: 1; } }\n", got)
}

func TestMediaBlocksWithSameConditionMerge(t *testing.T) {
	got := compact(t, "@media print { a { x: 1; } } b { @media print { y: 2; } }")
	assert.Equal(t, "@media print {\na { x: 1; }\nb { y: 2; } }\n", got)
}

func TestNestedMediaJoinsConditions(t *testing.T) {
	got := compact(t, "a { @media screen { @media (color) { x: 1; } } }")
	assert.Equal(t, "@media screen and (color) {\na { x: 1; } }\n", got)
}

func TestMediaChildrenNestUnderEnclosingRule(t *testing.T) {
	got := compact(t, ".box { @media print { span { x: 1; } } }")
	assert.Equal(t, "@media print {\n.box span { x: 1; } }\n", got)
}

func TestMediaAttributesWithoutSelector(t *testing.T) {
	out, h := compileWith(t, "@media print { x: 1; }", true)
	assert.Equal(t, "", out)
	assert.Equal(t, []diag.Code{diag.SemaMediaAttributes}, h.codes())
}

func TestAtRulesStayNested(t *testing.T) {
	assert.Equal(t, "@font-face { font-weight: bold; }\n", compact(t, "@font-face { font-weight: bold; }"))

	out, _ := compileWith(t, "$d: 1; @keyframes spin { from { x: 0; } to { x: $d; } }", false)
	assert.Equal(t, "@keyframes spin {\n    from {\n        x: 0;\n    }\n    to {\n        x: 1;\n    }\n}\n", out)
}

func TestFunctions(t *testing.T) {
	got := compact(t, "a { c: lighten(#000, 10%); w: calc(100% - 10px); u: foo(1 + 1); }")
	assert.Equal(t, "a { c: #1a1a1a; w: calc(100% - 10px); u: foo(2); }\n", got)
}

type upperFuncs struct{ calls int }

func (f *upperFuncs) EvaluateFunction(call *ast.FunctionCall) ast.Expr {
	f.calls++
	return &ast.Value{Text: strings.ToUpper(call.Name)}
}

func TestCustomFunctionHook(t *testing.T) {
	funcs := &upperFuncs{}
	g := New(Options{
		Functions: funcs,
		Resolver:  newMapResolver(map[string]string{"m": "a { x: shout(1); y: calc(1px + 1px); }"}),
	})
	require.NoError(t, g.ImportStylesheetByName("m"))
	g.Compile()
	assert.Equal(t, "a { x: SHOUT; y: calc(1px + 1px); }\n", output.String(true, g.Generate))
	assert.Equal(t, 1, funcs.calls)
}

func TestInputTreeIsNotModified(t *testing.T) {
	sheet, err := parser.ParseSource("m", "$w: 1px; a { b { w: $w + 1; } @media print { x: 1; } }", parser.Options{})
	require.NoError(t, err)
	before := sheet.String()

	g := New(Options{})
	require.NoError(t, g.ImportParsedStylesheet(sheet))
	g.Compile()
	assert.NotEmpty(t, output.String(true, g.Generate))
	assert.Equal(t, before, sheet.String())
}

func TestCompileRunsOnce(t *testing.T) {
	h := newHarness(map[string]string{"main.bss": "@mixin m { &:hover { x: 1; } } a { @include m; }"})
	require.NoError(t, h.gen.ImportStylesheetByName("main.bss"))
	h.gen.Compile()
	h.gen.Compile()
	assert.Equal(t, "a:hover { x: 1; }\n", output.String(true, h.gen.Generate))
	assert.Error(t, h.gen.ImportStylesheetByName("other"))
}

func TestRoundTripOfFlatOutput(t *testing.T) {
	src := ".a, .b > c { color: red; margin: 1px 2px; } d { &:hover { width: 10px + 5px; } } " +
		"@media print { e { font: bold 12px Arial, serif; } }"
	first, _ := compileWith(t, src, false)

	reparsed, err := parser.ParseSource("out.css", first, parser.Options{})
	require.NoError(t, err)
	g := New(Options{})
	require.NoError(t, g.ImportParsedStylesheet(reparsed))
	g.Compile()
	second := output.String(false, g.Generate)
	assert.Equal(t, first, second)
}

// lexCSS runs the generated text through an independent CSS3 parser and
// returns the number of rulesets, at-rule blocks and declared properties.
func lexCSS(t *testing.T, text string) (rulesets, atRules int, properties []string) {
	t.Helper()
	p := css.NewParser(parse.NewInputString(text), false)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			require.ErrorIs(t, p.Err(), io.EOF)
			return rulesets, atRules, properties
		case css.BeginRulesetGrammar:
			rulesets++
		case css.BeginAtRuleGrammar:
			atRules++
		case css.DeclarationGrammar:
			properties = append(properties, string(data))
		}
	}
}

func TestOutputIsValidCSS(t *testing.T) {
	src := "$c: #336699; .nav { color: $c; a { &:hover { color: darken($c, 10%); } } " +
		"@media screen and (max-width: 600px) { display: none; } }"
	for _, compactMode := range []bool{false, true} {
		out, h := compileWith(t, src, compactMode)
		require.Empty(t, h.bag.Items())
		rulesets, atRules, props := lexCSS(t, out)
		assert.Equal(t, 3, rulesets)
		assert.Equal(t, 1, atRules)
		assert.Equal(t, []string{"display", "color", "color"}, props)
	}
}
