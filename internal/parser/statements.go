package parser

import (
	"slices"

	"bssc/internal/ast"
	"bssc/internal/diag"
)

// @import 'other';
func (p *Parser) parseImport() {
	kw := p.advance()
	if cur := p.cur(); cur.IsString() {
		tok := p.advance()
		p.sheet.Imports = append(p.sheet.Imports, ast.Import{Name: tok.Contents, Span: kw.Span.Cover(tok.Span)})
	} else {
		p.errAt(cur, diag.SynExpectString, "Unexpected token: '%s'. Expected a string constant naming an import file.", cur.Source)
	}
	p.expectSymbol(";")
}

// $name: value [!default];
func (p *Parser) parseVariable() {
	tok := p.advance()
	v := ast.Variable{Name: tok.Contents, Span: tok.Span}
	p.expectSymbol(":")
	v.Value = p.parseExpression(true)
	if p.atDefaultFlag() {
		p.advance()
		p.advance()
		v.Default = true
	}
	v.Span = v.Span.Cover(p.lastSpan)
	p.sheet.Variables = append(p.sheet.Variables, v)
	p.expectSymbol(";")
}

// @mixin name($a, $b) { attr: value; selector { attr: value; } }
// The parameter list may be left out when there are no parameters.
func (p *Parser) parseMixin() *ast.Mixin {
	kw := p.advance()
	m := &ast.Mixin{Span: kw.Span}
	if cur := p.cur(); cur.IsIdentifier() {
		m.Name = p.advance().Contents
	} else {
		p.errAt(cur, diag.SynExpectIdentifier, "Unexpected token: '%s'. Expected the name of the mixin as identifier.", cur.Source)
	}
	if !p.cur().IsSymbol("{") {
		p.parseParameterNames(m)
	}
	p.parseMixinBody(m)
	m.Span = m.Span.Cover(p.lastSpan)
	return m
}

func (p *Parser) parseParameterNames(m *ast.Mixin) {
	p.expectSymbol("(")
	for p.more() {
		cur := p.cur()
		switch {
		case cur.IsSymbol("{"):
			p.errAt(cur, diag.SynExpectSymbol, "Unexpected token: '%s'. Expected ')' to complete the parameter list.", cur.Source)
			return
		case cur.IsSymbol(")"):
			p.advance()
			return
		case cur.IsSpecialIdentifier("$"):
			p.advance()
			if slices.Contains(m.Params, cur.Contents) {
				p.warnAt(cur, diag.SynExpectParameter, "Parameter $%s is declared twice", cur.Contents)
			}
			m.Params = append(m.Params, cur.Contents)
		default:
			p.advance()
			p.errAt(cur, diag.SynExpectParameter, "Unexpected token: '%s'. Expected a parameter name like $parameter.", cur.Source)
		}
		p.expectComma("parameter names")
	}
}

func (p *Parser) parseMixinBody(m *ast.Mixin) {
	p.expectSymbol("{")
	for p.more() {
		if p.cur().IsSymbol("}") {
			p.advance()
			return
		}
		if p.isAtAttribute() {
			m.Attributes = append(m.Attributes, p.parseAttribute())
		} else {
			m.SubSections = append(m.SubSections, p.parseMixinSubSection())
		}
	}
	p.errAt(p.cur(), diag.SynUnclosedBlock, "Unexpected end of input. Expected: '}'")
}

// Mixin sub-sections hold attributes only; they are not nested further.
func (p *Parser) parseMixinSubSection() *ast.Section {
	sec := &ast.Section{Span: p.cur().Span}
	sec.Selectors = p.parseSelectors()
	p.expectSymbol("{")
	for p.more() && !p.cur().IsSymbol("}") {
		if cur := p.cur(); cur.IsIdentifier() && p.next().IsSymbol(":") {
			sec.Attributes = append(sec.Attributes, p.parseAttribute())
		} else {
			p.advance()
			p.errAt(cur, diag.SynUnexpectedToken, "Unexpected token: '%s'. Expected an attribute definition", cur.Source)
		}
	}
	p.expectSymbol("}")
	sec.Span = sec.Span.Cover(p.lastSpan)
	return sec
}
