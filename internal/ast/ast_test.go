package ast

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNum(t *testing.T) {
	cases := []struct {
		in, value, unit string
	}{
		{"10px", "10", "px"},
		{"-1.5em", "-1.5", "em"},
		{"50%", "50", "%"},
		{".5s", "0.5", "s"},
		{"-.25", "-0.25", ""},
		{"1e3", "1000", ""},
		{"2e-2px", "0.02", "px"},
		{"3em", "3", "em"},
	}
	for _, c := range cases {
		n, ok := ParseNum(c.in)
		require.True(t, ok, c.in)
		assert.Equal(t, c.value, n.Value.String(), c.in)
		assert.Equal(t, c.unit, n.Unit, c.in)
		assert.Equal(t, c.in, n.String(), "rendering keeps the source text")
	}

	_, ok := ParseNum("px")
	assert.False(t, ok)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "15", FormatNumber(decimal.NewFromInt(15)))
	assert.Equal(t, "0.0625", FormatNumber(decimal.NewFromInt(1).Div(decimal.NewFromInt(16))))
	assert.Equal(t, "33.3333", FormatNumber(decimal.NewFromInt(100).Div(decimal.NewFromInt(3))))
	assert.Equal(t, "15px", NewNum(decimal.NewFromInt(15), "px").String())
}

func TestColor(t *testing.T) {
	c, ok := ParseHexColor("#ff0000")
	require.True(t, ok)
	assert.Equal(t, "#f00", c.String())

	c, ok = ParseHexColor("#abc")
	require.True(t, ok)
	assert.Equal(t, &Color{R: 0xaa, G: 0xbb, B: 0xcc, A: 1}, c)

	c, ok = ParseHexColor("#123456")
	require.True(t, ok)
	assert.Equal(t, "#123456", c.String())

	for _, bad := range []string{"#ab", "#abcd", "#ggg", "#12345z"} {
		_, ok := ParseHexColor(bad)
		assert.False(t, ok, bad)
	}

	assert.Equal(t, "rgba(0, 0, 0, 0.5)", NewColor(0, 0, 0, 0.5).String())
	assert.Equal(t, &Color{R: 255, G: 0, B: 0, A: 1}, NewColor(300, -4, 0, 7))
}

func TestColorHSL(t *testing.T) {
	red := NewColor(255, 0, 0, 1)
	h, s, l := red.HSL()
	assert.InDelta(t, 0, h, 1e-9)
	assert.InDelta(t, 1, s, 1e-9)
	assert.InDelta(t, 0.5, l, 1e-9)

	assert.Equal(t, red, ColorFromHSL(h, s, l, 1))
	assert.Equal(t, "#0f0", ColorFromHSL(120, 1, 0.5, 1).String())
	assert.Equal(t, "#fff", ColorFromHSL(480, 0, 1, 1).String())
}

func TestColorMix(t *testing.T) {
	black := NewColor(0, 0, 0, 1)
	white := NewColor(255, 255, 255, 1)
	assert.Equal(t, "#808080", black.Mix(white, 0.5).String())
	assert.Equal(t, "#000", black.Mix(white, 1).String())
}

func TestIsConstant(t *testing.T) {
	num, _ := ParseNum("1px")
	ref := &VariableRef{Name: "x"}

	assert.True(t, IsConstant(&Value{Text: "red"}))
	assert.True(t, IsConstant(num))
	assert.True(t, IsConstant(&FunctionCall{Name: "url", Params: []Expr{&Value{Text: "'a.png'"}}}))
	assert.False(t, IsConstant(ref))
	assert.False(t, IsConstant(&Operation{Op: "+", Left: num, Right: num}))
	assert.False(t, IsConstant(&FunctionCall{Name: "lighten", Params: []Expr{ref}}))
	assert.False(t, IsConstant(&ValueList{Elements: []Expr{num, ref}}))
	assert.False(t, IsConstant(&MediaFilter{Name: "max-width", Value: ref}))
}

func TestExprStrings(t *testing.T) {
	one, _ := ParseNum("1")
	two, _ := ParseNum("2px")
	op := &Operation{Op: "+", Left: one, Right: &VariableRef{Name: "w"}, Protected: true}

	assert.Equal(t, "(1 + $w)", op.String())
	assert.Equal(t, "1 2px", (&ValueList{Elements: []Expr{one, two}}).String())
	assert.Equal(t, "1, 2px", (&ValueList{Elements: []Expr{one, two}, KeepCommas: true}).String())
	assert.Equal(t, "f(1, 2px)", (&FunctionCall{Name: "f", Params: []Expr{one, two}}).String())
	assert.Equal(t, "a=1", (&NamedParameter{Name: "a", Value: one}).String())
	assert.Equal(t, "(max-width: 2px)", (&MediaFilter{Name: "max-width", Value: two}).String())
	assert.Equal(t, ExprOperation, op.Kind())
	assert.Equal(t, "VariableReference", ExprVariableRef.String())
}

func TestSectionString(t *testing.T) {
	red := &Value{Text: "red"}
	s := &Section{
		Selectors:  []Selector{{"a", "b"}, {".c"}},
		Extends:    []string{".base"},
		Attributes: []Attribute{{Name: "color", Value: red}},
		SubSections: []*Section{{
			MediaQueries: []Expr{&Value{Text: "print"}},
			Attributes:   []Attribute{{Name: "display", Value: &Value{Text: "none"}}},
		}},
	}
	want := "a b, .c {\n" +
		"    @extend .base;\n" +
		"    color: red;\n" +
		"    @media print {\n" +
		"        display: none;\n" +
		"    }\n" +
		"}\n"
	assert.Equal(t, want, s.String())
	assert.False(t, s.IsMedia())
	assert.True(t, s.SubSections[0].IsMedia())
}

func TestSectionClone(t *testing.T) {
	s := &Section{
		Selectors:   []Selector{{"a"}},
		SubSections: []*Section{{Selectors: []Selector{{"b"}}}},
	}
	cp := s.Clone()
	cp.Selectors[0][0] = "x"
	cp.SubSections[0].Selectors = nil

	assert.Equal(t, "a", s.Selectors[0][0])
	assert.Len(t, s.SubSections[0].Selectors, 1)
}

func TestArena(t *testing.T) {
	a := NewArena[string](2)
	id1 := a.Allocate("a")
	id2 := a.Allocate("b")
	assert.Equal(t, uint32(1), id1)
	assert.Equal(t, "b", *a.Get(id2))
	assert.Nil(t, a.Get(0))

	a.Truncate(1)
	assert.Equal(t, uint32(1), a.Len())
	assert.Nil(t, a.Get(id2))
}
