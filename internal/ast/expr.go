package ast

import (
	"strings"
)

type ExprKind uint8

const (
	ExprValue ExprKind = iota + 1
	ExprNum
	ExprColor
	ExprOperation
	ExprVariableRef
	ExprFunctionCall
	ExprValueList
	ExprNamedParameter
	ExprMediaFilter
)

var exprKindNames = [...]string{
	ExprValue:          "Value",
	ExprNum:            "Num",
	ExprColor:          "Color",
	ExprOperation:      "Operation",
	ExprVariableRef:    "VariableReference",
	ExprFunctionCall:   "FunctionCall",
	ExprValueList:      "ValueList",
	ExprNamedParameter: "NamedParameter",
	ExprMediaFilter:    "MediaFilter",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) && exprKindNames[k] != "" {
		return exprKindNames[k]
	}
	return "Expr?"
}

// Expr is the closed set of expression nodes. Nodes are never mutated after
// construction; evaluation builds new ones.
type Expr interface {
	Kind() ExprKind
	String() string
	exprNode()
}

// Value is an opaque literal: identifiers, strings with their quotes, !important.
type Value struct {
	Text string
}

// Operation is a binary arithmetic node. Protected marks a parenthesized
// subtree that precedence rotation must not enter.
type Operation struct {
	Op        string
	Left      Expr
	Right     Expr
	Protected bool
}

// VariableRef names a variable without its '$'.
type VariableRef struct {
	Name string
}

type FunctionCall struct {
	Name   string
	Params []Expr
}

// ValueList is a space-joined list, or comma-joined when KeepCommas is set.
type ValueList struct {
	Elements   []Expr
	KeepCommas bool
}

// NamedParameter is name=value inside a function call.
type NamedParameter struct {
	Name  string
	Value Expr
}

// MediaFilter is a "(name: value)" media feature.
type MediaFilter struct {
	Name  string
	Value Expr
}

func (*Value) Kind() ExprKind          { return ExprValue }
func (*Num) Kind() ExprKind            { return ExprNum }
func (*Color) Kind() ExprKind          { return ExprColor }
func (*Operation) Kind() ExprKind      { return ExprOperation }
func (*VariableRef) Kind() ExprKind    { return ExprVariableRef }
func (*FunctionCall) Kind() ExprKind   { return ExprFunctionCall }
func (*ValueList) Kind() ExprKind      { return ExprValueList }
func (*NamedParameter) Kind() ExprKind { return ExprNamedParameter }
func (*MediaFilter) Kind() ExprKind    { return ExprMediaFilter }

func (*Value) exprNode()          {}
func (*Num) exprNode()            {}
func (*Color) exprNode()          {}
func (*Operation) exprNode()      {}
func (*VariableRef) exprNode()    {}
func (*FunctionCall) exprNode()   {}
func (*ValueList) exprNode()      {}
func (*NamedParameter) exprNode() {}
func (*MediaFilter) exprNode()    {}

// Empty is the value unresolved variables evaluate to.
func Empty() *Value { return &Value{} }

// IsConstant reports whether evaluating e can only return e itself.
func IsConstant(e Expr) bool {
	switch e := e.(type) {
	case nil:
		return true
	case *Value, *Num, *Color:
		return true
	case *VariableRef:
		return false
	case *Operation:
		return false
	case *FunctionCall:
		return allConstant(e.Params)
	case *ValueList:
		return allConstant(e.Elements)
	case *NamedParameter:
		return IsConstant(e.Value)
	case *MediaFilter:
		return IsConstant(e.Value)
	}
	return false
}

func allConstant(list []Expr) bool {
	for _, e := range list {
		if !IsConstant(e) {
			return false
		}
	}
	return true
}

func (v *Value) String() string { return v.Text }

func (o *Operation) String() string {
	s := render(o.Left) + " " + o.Op + " " + render(o.Right)
	if o.Protected {
		return "(" + s + ")"
	}
	return s
}

func (v *VariableRef) String() string { return "$" + v.Name }

func (f *FunctionCall) String() string {
	return f.Name + "(" + join(f.Params, ", ") + ")"
}

func (l *ValueList) String() string {
	if l.KeepCommas {
		return join(l.Elements, ", ")
	}
	return join(l.Elements, " ")
}

func (p *NamedParameter) String() string { return p.Name + "=" + render(p.Value) }

func (m *MediaFilter) String() string { return "(" + m.Name + ": " + render(m.Value) + ")" }

func render(e Expr) string {
	if e == nil {
		return ""
	}
	return e.String()
}

func join(list []Expr, sep string) string {
	parts := make([]string, 0, len(list))
	for _, e := range list {
		parts = append(parts, render(e))
	}
	return strings.Join(parts, sep)
}
