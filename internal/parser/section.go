package parser

import (
	"strings"

	"bssc/internal/ast"
	"bssc/internal/diag"
	"bssc/internal/token"
)

// parseSection reads either a selector block or, with media set, an
// @media block.
func (p *Parser) parseSection(media bool) *ast.Section {
	sec := &ast.Section{Span: p.cur().Span}
	if media {
		p.parseMediaQuery(sec)
	} else {
		sec.Selectors = p.parseSelectors()
	}
	p.expectSymbol("{")
	for p.more() {
		cur := p.cur()
		switch {
		case cur.IsSymbol("}"):
			p.advance()
			sec.Span = sec.Span.Cover(p.lastSpan)
			return sec
		case p.isAtAttribute():
			sec.Attributes = append(sec.Attributes, p.parseAttribute())
		case cur.IsKeyword(token.KwMedia):
			sec.SubSections = append(sec.SubSections, p.parseSection(true))
		case cur.IsKeyword(token.KwInclude):
			p.parseInclude(sec)
		case cur.IsKeyword(token.KwExtend):
			p.parseExtend(sec)
		default:
			// ни атрибут, ни директива - значит вложенная секция
			sec.SubSections = append(sec.SubSections, p.parseSection(false))
		}
	}
	p.errAt(p.cur(), diag.SynUnclosedBlock, "Unexpected end of input. Expected: '}'")
	sec.Span = sec.Span.Cover(p.lastSpan)
	return sec
}

// isAtAttribute отличает "color: red;" от "a:hover { ... }": после "ident:"
// ищем вперёд ';' (или '}', или конец) раньше '{'.
func (p *Parser) isAtAttribute() bool {
	if !p.cur().IsIdentifier() || !p.next().IsSymbol(":") {
		return false
	}
	for i := 2; ; i++ {
		tok := p.tz.Peek(i)
		switch {
		case tok.IsEnd(), tok.IsSymbol(";", "}"):
			return true
		case tok.IsSymbol("{"):
			return false
		}
	}
}

func (p *Parser) parseAttribute() ast.Attribute {
	name := p.advance()
	attr := ast.Attribute{Name: name.Contents, Span: name.Span}
	p.expectSymbol(":")
	attr.Value = p.parseExpression(true)
	attr.Span = attr.Span.Cover(p.lastSpan)
	p.endStatement()
	return attr
}

// @extend .warning;
func (p *Parser) parseExtend(sec *ast.Section) {
	p.expectKeyword(token.KwExtend)
	if cur := p.cur(); cur.IsIdentifier() || cur.IsSpecialIdentifier("#") {
		sec.Extends = append(sec.Extends, p.advance().Source)
	} else {
		p.errAt(cur, diag.SynUnexpectedSelector, "Unexpected token: '%s'. Expected a selector to extend.", cur.Source)
	}
	p.endStatement()
}

// @include border(15px); - также @call
func (p *Parser) parseInclude(sec *ast.Section) {
	kw := p.advance()
	ref := ast.MixinRef{Span: kw.Span}
	if cur := p.cur(); cur.IsIdentifier() {
		ref.Name = p.advance().Contents
	} else {
		p.errAt(cur, diag.SynExpectIdentifier, "Unexpected token: '%s'. Expected a mixin to include.", cur.Source)
	}
	if p.cur().IsSymbol("(") {
		p.advance()
		for p.more() && !p.cur().IsSymbol(")", ";", "{", "}") {
			ref.Args = append(ref.Args, p.parseExpression(false))
			p.expectComma("parameters")
		}
		p.expectSymbol(")")
	}
	ref.Span = ref.Span.Cover(p.lastSpan)
	p.endStatement()
	if ref.Name != "" {
		sec.MixinRefs = append(sec.MixinRefs, ref)
	}
}

// parseMediaQuery reads "@media screen and (min-width: 1200px)". Only "and"
// joins conditions; adjacent identifiers ("only screen") form one condition.
func (p *Parser) parseMediaQuery(sec *ast.Section) {
	p.expectKeyword(token.KwMedia)
	afterAnd := false
	for {
		switch cur := p.cur(); {
		case cur.IsIdentifier() && !cur.IsIdentifier("and"):
			var words []string
			for p.cur().IsIdentifier() && !p.cur().IsIdentifier("and") {
				words = append(words, p.advance().Contents)
			}
			sec.MediaQueries = append(sec.MediaQueries, &ast.Value{Text: strings.Join(words, " ")})
		case cur.IsSymbol("("):
			p.parseMediaFilter(sec)
		default:
			if len(sec.MediaQueries) == 0 || afterAnd {
				p.errAt(cur, diag.SynExpectExpression, "%s. Expected a media query.", describe(cur))
			}
			return
		}
		if !p.cur().IsIdentifier("and") {
			return
		}
		p.advance()
		afterAnd = true
	}
}

// (orientation: landscape) или (color)
func (p *Parser) parseMediaFilter(sec *ast.Section) {
	p.expectSymbol("(")
	cur := p.cur()
	switch {
	case cur.IsIdentifier() && p.next().IsSymbol(":"):
		filter := &ast.MediaFilter{Name: p.advance().Contents}
		p.advance()
		filter.Value = p.parseExpression(true)
		sec.MediaQueries = append(sec.MediaQueries, filter)
	case cur.IsIdentifier() && p.next().IsSymbol(")"):
		sec.MediaQueries = append(sec.MediaQueries, &ast.Value{Text: "(" + p.advance().Contents + ")"})
	default:
		p.errAt(cur, diag.SynExpectExpression, "Unexpected symbol: '%s'. Expected an attribute filter.", cur.Source)
	}
	p.expectSymbol(")")
}
