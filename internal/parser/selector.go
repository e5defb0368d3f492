package parser

import (
	"bssc/internal/ast"
	"bssc/internal/diag"
)

// parseSelectors reads a comma separated selector list up to '{'.
func (p *Parser) parseSelectors() []ast.Selector {
	var out []ast.Selector
	for p.more() {
		out = append(out, p.parseSelector())
		if !p.cur().IsSymbol(",") {
			break
		}
		p.advance()
	}
	return out
}

// parseSelector builds one selector out of raw fragments: "b div.test > a:hover"
// gives ["b", "div.test", ">", "a:hover"].
func (p *Parser) parseSelector() ast.Selector {
	var sel ast.Selector
	p.parseSelectorPrefix(&sel)
	for p.more() {
		cur := p.cur()
		switch {
		case cur.IsSymbol("{", ","):
			if len(sel) == 0 {
				p.errAt(cur, diag.SynUnexpectedSelector, "Unexpected end of CSS selector")
			}
			return sel
		case cur.IsIdentifier() || cur.IsSpecialIdentifier("#", "@") || cur.IsNumber():
			frag := p.advance().Source
			frag = p.parseFilterInSelector(frag)
			frag = p.parsePseudoInSelector(frag)
			sel = append(sel, frag)
		case cur.IsSymbol("&", "*"):
			frag := p.advance().Trigger
			frag = p.parseFilterInSelector(frag)
			sel = append(sel, frag)
		case cur.IsSymbol("&:", "&::"):
			p.parseParentPseudo(&sel)
		case cur.IsSymbol("["):
			sel = append(sel, p.parsePseudoInSelector(p.parseFilterInSelector("")))
		case cur.IsSymbol(">", "+", "~"):
			sel = append(sel, p.advance().Source)
		default:
			p.advance()
			p.errAt(cur, diag.SynUnexpectedSelector, "Unexpected token: '%s'", cur.Source)
		}
	}
	return sel
}

// parseSelectorPrefix handles the forms that may only open a selector:
// [attr=value], &, &:hover, &::before and ::selection.
func (p *Parser) parseSelectorPrefix(sel *ast.Selector) {
	if p.more() && p.cur().IsSymbol("[") {
		*sel = append(*sel, p.parsePseudoInSelector(p.parseFilterInSelector("")))
	}
	if p.more() && p.cur().IsSymbol("&") {
		*sel = append(*sel, p.advance().Trigger)
	}
	if p.more() && p.cur().IsSymbol("&:", "&::") {
		p.parseParentPseudo(sel)
	}
	if p.more() && p.cur().IsSymbol("::") && p.next().IsIdentifier() {
		p.advance()
		*sel = append(*sel, "::"+p.advance().Contents)
	}
}

// parseParentPseudo splits "&:hover" into "&" and ":hover".
func (p *Parser) parseParentPseudo(sel *ast.Selector) {
	op := p.advance().Source[1:]
	if !p.cur().IsIdentifier() {
		p.errAt(p.cur(), diag.SynUnexpectedSelector, "Unexpected token: '%s'. Expected a pseudo class.", p.cur().Source)
		return
	}
	frag := op + p.advance().Contents
	if p.cur().IsSymbol("(") {
		frag = p.consumeArgument(frag)
	}
	*sel = append(*sel, "&", frag)
}

// parsePseudoInSelector appends ":hover", "::after" or ":nth-child(2n+1)"
// to the preceding fragment.
func (p *Parser) parsePseudoInSelector(frag string) string {
	for p.cur().IsSymbol(":", "::") {
		frag += p.advance().Source
		if !p.cur().IsIdentifier() {
			p.errAt(p.cur(), diag.SynUnexpectedSelector, "Unexpected token: '%s'. Expected a pseudo class.", p.cur().Source)
			return frag
		}
		frag += p.advance().Source
		if p.cur().IsSymbol("(") {
			frag = p.consumeArgument(frag)
		}
	}
	return frag
}

// consumeArgument copies a balanced parenthesised argument verbatim.
func (p *Parser) consumeArgument(frag string) string {
	frag += p.advance().Source
	for depth := 1; depth > 0 && p.more(); {
		cur := p.cur()
		switch {
		case cur.IsSymbol("("):
			depth++
		case cur.IsSymbol(")"):
			depth--
		}
		frag += p.advance().Source
	}
	return frag
}

var attributeOperators = []string{"=", "~=", "|=", "^=", "$=", "*="}

// parseFilterInSelector appends [name op value] filters.
func (p *Parser) parseFilterInSelector(frag string) string {
	for p.cur().IsSymbol("[") {
		frag += p.advance().Trigger
		if cur := p.cur(); !cur.IsSymbol("]") {
			if !cur.IsIdentifier() {
				p.errAt(cur, diag.SynExpectIdentifier, "Unexpected token: '%s'. Expected an attribute name.", cur.Source)
			}
			frag += p.advance().Source
		}
		if cur := p.cur(); !cur.IsSymbol("]") {
			if !cur.IsSymbol(attributeOperators...) {
				p.errAt(cur, diag.SynExpectSymbol, "Unexpected token: '%s'. Expected an operation.", cur.Source)
			}
			frag += p.advance().Source
		}
		if cur := p.cur(); !cur.IsSymbol("]") && cur.IsNotEnd() {
			frag += p.advance().Source
		}
		if !p.expectSymbol("]") {
			return frag
		}
		frag += "]"
	}
	return frag
}
