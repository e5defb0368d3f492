package parser

import (
	"strings"

	"bssc/internal/ast"
	"bssc/internal/diag"
)

// parseExpression reads an attribute value, a media filter value or an
// argument. Adjacent atoms form a space separated ValueList ("bold 12px");
// with acceptLists a comma list is accepted as well.
func (p *Parser) parseExpression(acceptLists bool) ast.Expr {
	expr := p.parseOperand(acceptLists)
	for p.more() {
		cur := p.cur()
		switch {
		case cur.IsSymbol("+", "-"):
			op := p.advance().Trigger
			expr = onLastElement(expr, func(left ast.Expr) ast.Expr {
				return &ast.Operation{Op: op, Left: left, Right: p.parseAtom()}
			})
		case cur.IsSymbol("*", "/", "%"):
			op := p.advance().Trigger
			expr = onLastElement(expr, func(left ast.Expr) ast.Expr {
				return joinOperations(left, op, p.parseAtom())
			})
		case p.atDefaultFlag():
			return expr
		case cur.IsSymbol() && !cur.IsSymbol("!"):
			return expr
		default:
			expr = appendToList(expr, p.parseOperand(acceptLists))
		}
	}
	return expr
}

func (p *Parser) parseOperand(acceptLists bool) ast.Expr {
	if acceptLists {
		return p.parseAtomList()
	}
	return p.parseAtom()
}

// atDefaultFlag reports a trailing "!default" of a variable declaration.
func (p *Parser) atDefaultFlag() bool {
	return p.cur().IsSymbol("!") && p.next().IsIdentifier() && strings.EqualFold(p.next().Contents, "default")
}

// onLastElement applies an operator to the last element of a space list so
// that "1px 2px + 3px" stays a list of two values.
func onLastElement(expr ast.Expr, apply func(ast.Expr) ast.Expr) ast.Expr {
	list, ok := expr.(*ast.ValueList)
	if !ok || list.KeepCommas || len(list.Elements) == 0 {
		return apply(expr)
	}
	elems := make([]ast.Expr, len(list.Elements))
	copy(elems, list.Elements)
	elems[len(elems)-1] = apply(elems[len(elems)-1])
	return &ast.ValueList{Elements: elems}
}

func appendToList(expr, next ast.Expr) ast.Expr {
	if list, ok := expr.(*ast.ValueList); ok && !list.KeepCommas {
		elems := make([]ast.Expr, 0, len(list.Elements)+1)
		elems = append(elems, list.Elements...)
		return &ast.ValueList{Elements: append(elems, next)}
	}
	return &ast.ValueList{Elements: []ast.Expr{expr, next}}
}

// joinOperations folds '*', '/' and '%' into the tree: the right operand of
// the right-most unprotected '+'/'-' becomes the left side of the new
// operation, so "a + b * c" is "a + (b * c)". Parenthesised subtrees are
// never entered.
func joinOperations(left ast.Expr, op string, right ast.Expr) ast.Expr {
	o, ok := left.(*ast.Operation)
	if !ok || o.Protected || (o.Op != "+" && o.Op != "-") {
		return &ast.Operation{Op: op, Left: left, Right: right}
	}
	return &ast.Operation{Op: o.Op, Left: o.Left, Right: joinOperations(o.Right, op, right)}
}

func (p *Parser) parseAtomList() ast.Expr {
	first := p.parseAtom()
	if !p.cur().IsSymbol(",") {
		return first
	}
	list := &ast.ValueList{KeepCommas: true, Elements: []ast.Expr{first}}
	for p.cur().IsSymbol(",") {
		p.advance()
		list.Elements = append(list.Elements, p.parseAtom())
	}
	return list
}

// parseAtom reads a number, a colour, an identifier, string or function
// call, a variable reference, a parenthesised expression or "!important".
func (p *Parser) parseAtom() ast.Expr {
	cur := p.cur()
	switch {
	case cur.IsNumber():
		tok := p.advance()
		if n, ok := ast.ParseNum(tok.Contents); ok {
			return n
		}
		p.errAt(tok, diag.LexBadNumber, "Malformed number: '%s'", tok.Source)
		return &ast.Value{Text: tok.Source}

	case cur.IsSpecialIdentifier("#"):
		tok := p.advance()
		if c, ok := ast.ParseHexColor(tok.Contents); ok {
			return c
		}
		p.errAt(tok, diag.SynBadColor, "Unexpected token: '%s'. Expected a color hex string like #a12 or #a3aa31.", tok.Source)
		return &ast.Value{Text: tok.Source}

	case cur.IsIdentifier() || cur.IsString():
		return p.parseIdentifierOrCall()

	case cur.IsSpecialIdentifier("$"):
		return &ast.VariableRef{Name: p.advance().Contents}

	case cur.IsSymbol("("):
		p.advance()
		expr := p.parseExpression(true)
		p.expectSymbol(")")
		if op, ok := expr.(*ast.Operation); ok {
			protected := *op
			protected.Protected = true
			return &protected
		}
		return expr

	case cur.IsSymbol("!") && p.next().IsIdentifier():
		p.advance()
		return &ast.Value{Text: "!" + p.advance().Contents}
	}

	// структурные токены не съедаем, чтобы не потерять границу блока
	if !cur.IsSymbol(";", "{", "}", ")") && cur.IsNotEnd() {
		p.advance()
	}
	p.errAt(cur, diag.SynExpectExpression, "Unexpected token: '%s'. Expected an expression.", cur.Source)
	return ast.Empty()
}

// parseIdentifierOrCall also accepts colon-joined names such as
// "progid:DXImageTransform.Microsoft.gradient(...)".
func (p *Parser) parseIdentifierOrCall() ast.Expr {
	var id strings.Builder
	for p.cur().IsIdentifier() && p.next().IsSymbol(":") {
		id.WriteString(p.advance().Source)
		id.WriteString(p.advance().Source)
	}
	id.WriteString(p.advance().Source)
	if !p.cur().IsSymbol("(") {
		return &ast.Value{Text: id.String()}
	}

	call := &ast.FunctionCall{Name: id.String()}
	p.advance()
	for p.more() && !p.cur().IsSymbol(")", ";", "{", "}") {
		if p.cur().IsIdentifier() && p.next().IsSymbol("=") {
			name := p.advance().Contents
			p.advance()
			call.Params = append(call.Params, &ast.NamedParameter{Name: name, Value: p.parseExpression(false)})
		} else {
			call.Params = append(call.Params, p.parseExpression(false))
		}
		p.expectComma("parameters")
	}
	p.expectSymbol(")")
	return call
}
