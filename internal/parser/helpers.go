package parser

import (
	"fmt"

	"bssc/internal/diag"
	"bssc/internal/source"
	"bssc/internal/token"
)

func (p *Parser) cur() token.Token  { return p.tz.Current() }
func (p *Parser) next() token.Token { return p.tz.Next() }
func (p *Parser) more() bool        { return p.tz.More() }

// advance - съедает текущий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.tz.Consume()
	if tok.IsNotEnd() {
		p.lastSpan = tok.Span
	}
	return tok
}

// expectSymbol consumes sym or reports it missing without consuming.
func (p *Parser) expectSymbol(sym string) bool {
	if p.cur().IsSymbol(sym) {
		p.advance()
		return true
	}
	p.unexpected(diag.SynExpectSymbol, "'"+sym+"'")
	return false
}

func (p *Parser) expectKeyword(kw string) bool {
	if p.cur().IsKeyword(kw) {
		p.advance()
		return true
	}
	p.unexpected(diag.SynExpectKeyword, "@"+kw)
	return false
}

// endStatement accepts ';'; before '}' the semicolon may be left out.
func (p *Parser) endStatement() {
	switch {
	case p.cur().IsSymbol(";"):
		p.advance()
	case p.cur().IsSymbol("}"):
	default:
		p.unexpected(diag.SynExpectSymbol, "';'")
	}
}

// expectComma separates call arguments and parameter names.
func (p *Parser) expectComma(what string) {
	switch cur := p.cur(); {
	case cur.IsSymbol(","):
		p.advance()
	case cur.IsSymbol(")", "{") || cur.IsEnd():
	default:
		p.advance()
		p.errAt(cur, diag.SynExpectSymbol, "Unexpected token: '%s'. Expected a comma between the %s.", cur.Source, what)
	}
}

func (p *Parser) unexpected(code diag.Code, expected string) {
	cur := p.cur()
	p.errAt(cur, code, "%s. Expected: %s", describe(cur), expected)
}

// describe names the offending token for error messages.
func describe(tok token.Token) string {
	if tok.IsEnd() {
		return "Unexpected end of input"
	}
	return fmt.Sprintf("Unexpected token: '%s'", tok.Source)
}

// errAt репортует ошибку на позиции токена
func (p *Parser) errAt(tok token.Token, code diag.Code, format string, args ...any) {
	p.report(code, diag.SevError, p.spanOf(tok), fmt.Sprintf(format, args...), nil)
}

func (p *Parser) warnAt(tok token.Token, code diag.Code, format string, args ...any) {
	p.report(code, diag.SevWarning, p.spanOf(tok), fmt.Sprintf(format, args...), nil)
}

// spanOf - для EOI берём позицию сразу после последнего токена
func (p *Parser) spanOf(tok token.Token) source.Span {
	if tok.IsEnd() && p.lastSpan.End > 0 {
		return source.At(p.lastSpan.File, p.lastSpan.End)
	}
	return tok.Span
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note) {
	if sev == diag.SevError {
		p.errs = append(p.errs, diag.Diagnostic{Severity: sev, Code: code, Message: msg, Primary: sp, Notes: notes})
		if p.opts.Enough() {
			return // достигли максимального количества ошибок
		}
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, notes)
	}
}
