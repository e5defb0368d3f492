package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bssc/internal/ast"
	"bssc/internal/diag"
)

func mustParse(t *testing.T, src string) *ast.Stylesheet {
	t.Helper()
	sheet, err := ParseSource("test.bss", src, Options{})
	require.NoError(t, err)
	return sheet
}

func attrValue(t *testing.T, src string) ast.Expr {
	t.Helper()
	sheet := mustParse(t, "a { v: "+src+"; }")
	require.Len(t, sheet.Sections, 1)
	require.Len(t, sheet.Sections[0].Attributes, 1)
	return sheet.Sections[0].Attributes[0].Value
}

func TestSimpleSection(t *testing.T) {
	sheet := mustParse(t, "a { color: red; }")
	require.Len(t, sheet.Sections, 1)
	sec := sheet.Sections[0]
	assert.Equal(t, []ast.Selector{{"a"}}, sec.Selectors)
	require.Len(t, sec.Attributes, 1)
	assert.Equal(t, "color", sec.Attributes[0].Name)
	assert.Equal(t, &ast.Value{Text: "red"}, sec.Attributes[0].Value)
}

func TestSelectors(t *testing.T) {
	cases := []struct {
		src  string
		want []ast.Selector
	}{
		{"b div.test > a:hover", []ast.Selector{{"b", "div.test", ">", "a:hover"}}},
		{"a, b ~ c", []ast.Selector{{"a"}, {"b", "~", "c"}}},
		{"&:hover", []ast.Selector{{"&", ":hover"}}},
		{"&::before", []ast.Selector{{"&", "::before"}}},
		{"&.active", []ast.Selector{{"&", ".active"}}},
		{".ie &", []ast.Selector{{".ie", "&"}}},
		{"::selection", []ast.Selector{{"::selection"}}},
		{"[disabled]", []ast.Selector{{"[disabled]"}}},
		{`input[type="text"]`, []ast.Selector{{`input[type="text"]`}}},
		{"a[lang|=en]", []ast.Selector{{"a[lang|=en]"}}},
		{"li:nth-child(2n+1)", []ast.Selector{{"li:nth-child(2n+1)"}}},
		{"a:not(.b):hover", []ast.Selector{{"a:not(.b):hover"}}},
		{"#main .x", []ast.Selector{{"#main", ".x"}}},
		{"@font-face", []ast.Selector{{"@font-face"}}},
		{"50%", []ast.Selector{{"50%"}}},
		{"* + p", []ast.Selector{{"*", "+", "p"}}},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			sheet := mustParse(t, c.src+" { }")
			require.Len(t, sheet.Sections, 1)
			assert.Equal(t, c.want, sheet.Sections[0].Selectors)
		})
	}
}

func TestExpressionPrecedence(t *testing.T) {
	e := attrValue(t, "1 + 2 * 3")
	op, ok := e.(*ast.Operation)
	require.True(t, ok)
	assert.Equal(t, "+", op.Op)
	right, ok := op.Right.(*ast.Operation)
	require.True(t, ok)
	assert.Equal(t, "*", right.Op)

	e = attrValue(t, "(1 + 2) * 3")
	op = e.(*ast.Operation)
	assert.Equal(t, "*", op.Op)
	left := op.Left.(*ast.Operation)
	assert.True(t, left.Protected)
	assert.Equal(t, "(1 + 2) * 3", e.String())

	// left associative within one level
	e = attrValue(t, "a + b * c * d")
	op = e.(*ast.Operation)
	assert.Equal(t, "+", op.Op)
	inner := op.Right.(*ast.Operation)
	assert.Equal(t, "*", inner.Op)
	assert.Equal(t, "b * c", inner.Left.String())

	e = attrValue(t, "$a * 2 + $b")
	op = e.(*ast.Operation)
	assert.Equal(t, "+", op.Op)
	assert.Equal(t, "$a * 2", op.Left.String())

	e = attrValue(t, "10 - 4 - 3")
	op = e.(*ast.Operation)
	assert.Equal(t, "10 - 4", op.Left.String())
}

func TestExpressionForms(t *testing.T) {
	cases := []struct {
		src  string
		kind ast.ExprKind
		want string
	}{
		{"bold 12px Arial", ast.ExprValueList, "bold 12px Arial"},
		{"a, b, c", ast.ExprValueList, "a, b, c"},
		{"red !important", ast.ExprValueList, "red !important"},
		{"#FF0000", ast.ExprColor, "#f00"},
		{"#abcdef", ast.ExprColor, "#abcdef"},
		{"1.5em", ast.ExprNum, "1.5em"},
		{"'Open Sans'", ast.ExprValue, "'Open Sans'"},
		{"$width", ast.ExprVariableRef, "$width"},
		{"rgba(0, 0, 0, 0.5)", ast.ExprFunctionCall, "rgba(0, 0, 0, 0.5)"},
		{"translate(10px, 20px) rotate(45deg)", ast.ExprValueList, "translate(10px, 20px) rotate(45deg)"},
		{"progid:DXImageTransform.Microsoft.gradient(startColorstr='#fff', GradientType=0)", ast.ExprFunctionCall,
			"progid:DXImageTransform.Microsoft.gradient(startColorstr='#fff', GradientType=0)"},
		{"calc(100% - 10px)", ast.ExprFunctionCall, "calc(100% - 10px)"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			e := attrValue(t, c.src)
			assert.Equal(t, c.kind, e.Kind())
			assert.Equal(t, c.want, e.String())
		})
	}
}

func TestSpaceListStaysFlat(t *testing.T) {
	e := attrValue(t, "1px 2px + 3px 4px")
	list, ok := e.(*ast.ValueList)
	require.True(t, ok)
	require.Len(t, list.Elements, 3)
	assert.Equal(t, ast.ExprOperation, list.Elements[1].Kind())
	assert.Equal(t, "2px + 3px", list.Elements[1].String())
}

func TestVariablesAndImports(t *testing.T) {
	sheet := mustParse(t, `
@import 'base';
@import "theme.bss";
$x: 1 !default;
$font: bold 12px !DEFAULT;
$y: $x + 1;
`)
	require.Len(t, sheet.Imports, 2)
	assert.Equal(t, "base", sheet.Imports[0].Name)
	assert.Equal(t, "theme.bss", sheet.Imports[1].Name)

	require.Len(t, sheet.Variables, 3)
	assert.Equal(t, "x", sheet.Variables[0].Name)
	assert.True(t, sheet.Variables[0].Default)
	assert.Equal(t, "1", sheet.Variables[0].Value.String())
	assert.True(t, sheet.Variables[1].Default)
	assert.Equal(t, "bold 12px", sheet.Variables[1].Value.String())
	assert.False(t, sheet.Variables[2].Default)
	assert.Equal(t, "$x + 1", sheet.Variables[2].Value.String())
}

func TestMixins(t *testing.T) {
	sheet := mustParse(t, `
@mixin border($w, $c) {
    border: $w solid $c;
    a:hover { color: $c }
}
@func plain { margin: 0; }
.box {
    @include border(1px, red);
    @call plain;
    @extend .base;
    @extend #main;
    padding: 2px;
}
`)
	require.Len(t, sheet.Mixins, 2)
	m := sheet.Mixins[0]
	assert.Equal(t, "border", m.Name)
	assert.Equal(t, []string{"w", "c"}, m.Params)
	require.Len(t, m.Attributes, 1)
	assert.Equal(t, "$w solid $c", m.Attributes[0].Value.String())
	require.Len(t, m.SubSections, 1)
	assert.Equal(t, []ast.Selector{{"a:hover"}}, m.SubSections[0].Selectors)
	assert.Equal(t, "plain", sheet.Mixins[1].Name)
	assert.Empty(t, sheet.Mixins[1].Params)

	require.Len(t, sheet.Sections, 1)
	box := sheet.Sections[0]
	require.Len(t, box.MixinRefs, 2)
	assert.Equal(t, "border", box.MixinRefs[0].Name)
	assert.Equal(t, "1px", box.MixinRefs[0].Args[0].String())
	assert.Equal(t, "red", box.MixinRefs[0].Args[1].String())
	assert.Equal(t, "plain", box.MixinRefs[1].Name)
	assert.Empty(t, box.MixinRefs[1].Args)
	assert.Equal(t, []string{".base", "#main"}, box.Extends)
	require.Len(t, box.Attributes, 1)
}

func TestMedia(t *testing.T) {
	sheet := mustParse(t, `
@media screen and (max-width: 100px) { a { color: red; } }
@media only screen and (color) { }
nav {
    @media print { display: none; }
}
`)
	require.Len(t, sheet.Sections, 3)
	top := sheet.Sections[0]
	assert.True(t, top.IsMedia())
	require.Len(t, top.MediaQueries, 2)
	assert.Equal(t, "screen", top.MediaQueries[0].String())
	filter, ok := top.MediaQueries[1].(*ast.MediaFilter)
	require.True(t, ok)
	assert.Equal(t, "max-width", filter.Name)
	assert.Equal(t, "100px", filter.Value.String())
	require.Len(t, top.SubSections, 1)

	second := sheet.Sections[1]
	require.Len(t, second.MediaQueries, 2)
	assert.Equal(t, "only screen", second.MediaQueries[0].String())
	assert.Equal(t, "(color)", second.MediaQueries[1].String())

	nav := sheet.Sections[2]
	require.Len(t, nav.SubSections, 1)
	assert.True(t, nav.SubSections[0].IsMedia())
	assert.Equal(t, "display", nav.SubSections[0].Attributes[0].Name)
}

func TestAttributeOrNestedSelector(t *testing.T) {
	sheet := mustParse(t, `a {
    b:hover { color: red; }
    font: 12px;
    color: blue
}`)
	a := sheet.Sections[0]
	require.Len(t, a.SubSections, 1)
	assert.Equal(t, []ast.Selector{{"b:hover"}}, a.SubSections[0].Selectors)
	require.Len(t, a.Attributes, 2)
	assert.Equal(t, "font", a.Attributes[0].Name)
	assert.Equal(t, "color", a.Attributes[1].Name)
}

func TestSingleErrorMessage(t *testing.T) {
	sheet, err := ParseSource("bad.bss", "a { color: ; }", Options{})
	require.Error(t, err)
	var pe *diag.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Count())
	assert.Equal(t, "line 1 position 12 Unexpected token: ';'. Expected an expression.", err.Error())
	// parsing went on
	require.Len(t, sheet.Sections, 1)
	assert.Equal(t, "color", sheet.Sections[0].Attributes[0].Name)
}

func TestErrorsAreAggregated(t *testing.T) {
	bag := diag.NewBag(10)
	sheet, err := ParseSource("bad.bss", "a { color: #xyz; }\nb { c: ; }\nc { d: 1; }", Options{Reporter: diag.BagReporter{Bag: bag}})
	require.Error(t, err)
	assert.Equal(t, "2 errors occurred. First: line 1 position 12 Unexpected token: '#xyz'. Expected a color hex string like #a12 or #a3aa31.", err.Error())
	assert.Len(t, sheet.Sections, 3)
	assert.Equal(t, 2, bag.Len())
	assert.Equal(t, diag.SynBadColor, bag.Items()[0].Code)
}

func TestMaxErrorsLimitsReporting(t *testing.T) {
	bag := diag.NewBag(10)
	_, err := ParseSource("bad.bss", "a { x: ; y: ; z: ; }", Options{MaxErrors: 1, Reporter: diag.BagReporter{Bag: bag}})
	var pe *diag.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Count())
	assert.Equal(t, 1, bag.Len())
}

func TestUnclosedBlockAndLexicalErrors(t *testing.T) {
	_, err := ParseSource("bad.bss", "a { color: red;", Options{})
	var pe *diag.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, diag.SynUnclosedBlock, pe.First().Code)

	_, err = ParseSource("bad.bss", "a { content: 'abc }", Options{})
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, diag.LexUnterminatedString, pe.First().Code)
}

func TestWarningsDoNotFail(t *testing.T) {
	bag := diag.NewBag(10)
	sheet, err := ParseSource("w.bss", "@mixin f($a, $a) { x: $a; }", Options{Reporter: diag.BagReporter{Bag: bag}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a"}, sheet.Mixins[0].Params)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.SevWarning, bag.Items()[0].Severity)
}

func TestRoundTrip(t *testing.T) {
	src := `a, b > c { color: red; margin: 1px 2px; }
.x:hover { font: bold 12px "Helvetica Neue", Arial; width: 10px + 5px * 2; }
input[type=text] { background: url('a.png') no-repeat; border: 1px solid #ccc !important; }
@media screen and (max-width: 600px) { p { width: (100% - 10px) / 2; } }
`
	first := mustParse(t, src)
	second := mustParse(t, first.String())

	require.Len(t, second.Sections, len(first.Sections))
	for i := range first.Sections {
		a, b := first.Sections[i], second.Sections[i]
		assert.Equal(t, a.Selectors, b.Selectors)
		assert.Equal(t, renderQueries(a), renderQueries(b))
		assert.Equal(t, renderAttrs(a), renderAttrs(b))
	}
	assert.Equal(t, first.String(), second.String())
}

func renderQueries(s *ast.Section) []string {
	var out []string
	for _, q := range s.MediaQueries {
		out = append(out, q.String())
	}
	return out
}

func renderAttrs(s *ast.Section) []string {
	var out []string
	for _, a := range s.Attributes {
		out = append(out, a.Name+"="+a.Value.String())
	}
	for _, sub := range s.SubSections {
		out = append(out, renderAttrs(sub)...)
	}
	return out
}

func TestDanglingMediaAnd(t *testing.T) {
	bag := diag.NewBag(10)
	sheet, err := ParseSource("m.bss", "@media screen and { a { x: 1; } }", Options{Reporter: diag.BagReporter{Bag: bag}})
	var pe *diag.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, diag.SynExpectExpression, pe.First().Code)
	assert.Equal(t, "Unexpected token: '{'. Expected a media query.", pe.First().Message)
	require.Equal(t, 1, bag.Len())
	// the block is still read
	require.Len(t, sheet.Sections, 1)
	assert.Len(t, sheet.Sections[0].SubSections, 1)

	_, err = ParseSource("m.bss", "@media screen and", Options{})
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, diag.SynExpectExpression, pe.First().Code)
	assert.Equal(t, "Unexpected end of input. Expected a media query.", pe.First().Message)
}

func TestUnexpectedEndOfInput(t *testing.T) {
	_, err := ParseSource("v.bss", "$x: 1", Options{})
	var pe *diag.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, diag.SynExpectSymbol, pe.First().Code)
	assert.Equal(t, "Unexpected end of input. Expected: ';'", pe.First().Message)

	_, err = ParseSource("v.bss", "$x: 1 }", Options{})
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "Unexpected token: '}'. Expected: ';'", pe.First().Message)
}
