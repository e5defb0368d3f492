package parser

import (
	"bssc/internal/ast"
	"bssc/internal/diag"
	"bssc/internal/lexer"
	"bssc/internal/source"
	"bssc/internal/token"
)

type Options struct {
	// MaxErrors caps how many errors are forwarded to Reporter; 0 is unlimited.
	// Every error still counts towards the final ParseError.
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser - состояние парсера на один файл
type Parser struct {
	tz       *lexer.Tokenizer
	file     *source.File
	sheet    *ast.Stylesheet
	opts     Options
	errs     []diag.Diagnostic
	lastSpan source.Span // span последнего съеденного токена
}

// Parse reads file as a BSS stylesheet registered under name.
//
// Parsing never stops at the first problem: lexical and syntax errors are
// collected while the whole file is consumed, and only then returned as a
// single *diag.ParseError. The stylesheet built so far is returned in both
// cases.
func Parse(name string, file *source.File, opts Options) (*ast.Stylesheet, error) {
	p := &Parser{
		file:     file,
		sheet:    &ast.Stylesheet{Name: name, File: file.ID},
		opts:     opts,
		lastSpan: source.At(file.ID, 0),
	}
	p.tz = lexer.NewBSS(file, lexer.Options{Reporter: collector{p}})

	p.parseItems()
	if len(p.errs) > 0 {
		return p.sheet, diag.NewParseError(file, p.errs)
	}
	return p.sheet, nil
}

// ParseSource is Parse for in-memory text.
func ParseSource(name, text string, opts Options) (*ast.Stylesheet, error) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual(name, []byte(text)))
	return Parse(name, f, opts)
}

// parseItems - основной цикл верхнего уровня.
func (p *Parser) parseItems() {
	for p.more() {
		cur := p.cur()
		switch {
		case cur.IsKeyword(token.KwImport):
			p.parseImport()
		case cur.IsKeyword(token.KwMixin):
			if m := p.parseMixin(); m.Name != "" {
				p.sheet.Mixins = append(p.sheet.Mixins, m)
			}
		case cur.IsKeyword(token.KwMedia):
			p.sheet.Sections = append(p.sheet.Sections, p.parseSection(true))
		case cur.IsSpecialIdentifier("$") && p.next().IsSymbol(":"):
			p.parseVariable()
		default:
			// всё остальное - обычная секция с селекторами
			p.sheet.Sections = append(p.sheet.Sections, p.parseSection(false))
		}
	}
}

// collector receives diagnostics from both the tokenizer and the parser.
type collector struct{ p *Parser }

func (c collector) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	c.p.report(code, sev, primary, msg, notes)
}
