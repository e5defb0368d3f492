package lexer

import (
	"slices"
	"strings"

	"bssc/internal/diag"
	"bssc/internal/lookahead"
	"bssc/internal/source"
	"bssc/internal/token"
)

// Tokenizer turns a character stream into a lookahead-buffered token stream.
// Current, Next, Peek and Consume come from the embedded buffer; after the
// last token every peek yields the same EOI token.
type Tokenizer struct {
	*lookahead.Buffer[token.Token]

	file   *source.File
	cursor Cursor
	input  *lookahead.Buffer[Char]
	cfg    Config
	opts   Options
}

// New creates a tokenizer for file using cfg.
func New(file *source.File, cfg Config, opts Options) *Tokenizer {
	tz := &Tokenizer{
		file:   file,
		cursor: NewCursor(file),
		cfg:    cfg,
		opts:   opts,
	}
	tz.input = lookahead.New[Char](tz.cursor.Read, tz.cursor.End)
	tz.Buffer = lookahead.New[token.Token](tz.fetch, tz.endOfInput)
	return tz
}

// NewBSS creates a tokenizer for the BSS stylesheet language.
func NewBSS(file *source.File, opts Options) *Tokenizer {
	return New(file, BSSConfig(), opts)
}

// File returns the file being tokenized.
func (tz *Tokenizer) File() *source.File { return tz.file }

// More reports whether a token other than EOI is current.
func (tz *Tokenizer) More() bool {
	return tz.Current().IsNotEnd()
}

// All drains the stream and returns every token including the final EOI.
func (tz *Tokenizer) All() []token.Token {
	var out []token.Token
	for tz.More() {
		out = append(out, tz.Consume())
	}
	return append(out, tz.Current())
}

func (tz *Tokenizer) endOfInput() token.Token {
	c := tz.input.Current()
	return token.Token{
		Type: token.EOI,
		Span: source.At(tz.file.ID, c.Off),
		Pos:  source.LineCol{Line: c.Line, Col: c.Col},
	}
}

// fetch runs the dispatch chain once per token. Whitespace and comments are
// skipped; an invalid character is reported and skipped.
func (tz *Tokenizer) fetch() (token.Token, bool) {
	for {
		for tz.input.Current().IsWhitespace() {
			tz.input.Consume()
		}
		cur := tz.input.Current()
		if cur.IsEnd() {
			return token.Token{}, false
		}
		if tz.atString(tz.cfg.LineComment, true) {
			tz.skipToEndOfLine()
			continue
		}
		if tz.atString(tz.cfg.BlockCommentStart, true) {
			tz.skipBlockComment(cur)
			continue
		}

		switch {
		case tz.isAtStartOfNumber():
			return tz.fetchNumber(), true
		case tz.isAtStartOfIdentifier():
			return tz.fetchID(), true
		case tz.isStringDelimiter(cur):
			return tz.fetchString(), true
		case tz.isAtBracket(false):
			b := tz.begin(token.Symbol)
			b.addTrigger(tz.input.Consume())
			return tz.finish(b), true
		case slices.Contains(tz.cfg.SpecialIDStarters, cur.Value):
			return tz.fetchSpecialID(), true
		case tz.isSymbolCharacter(cur):
			return tz.fetchSymbol(), true
		}

		tz.errorf(diag.LexUnknownChar, cur, "Invalid character in input: '%s'", cur)
		tz.input.Consume()
	}
}

// atString checks whether the input continues with s, optionally consuming it.
func (tz *Tokenizer) atString(s string, consume bool) bool {
	if s == "" {
		return false
	}
	i := 0
	for _, r := range s {
		if tz.input.Peek(i).Value != r {
			return false
		}
		i++
	}
	if consume {
		tz.input.ConsumeN(i)
	}
	return true
}

func (tz *Tokenizer) isStringDelimiter(c Char) bool {
	_, ok := tz.cfg.StringDelimiters[c.Value]
	return ok && !c.IsEnd()
}

func (tz *Tokenizer) isAtBracket(inSymbol bool) bool {
	cur := tz.input.Current()
	if cur.Is(tz.cfg.Brackets...) || cur.Is(tz.cfg.StandaloneSymbols...) {
		return true
	}
	// "|" одиночная - скобка, "||" и "|=" - нет
	return !inSymbol && tz.cfg.TreatSinglePipeAsBracket && cur.Is('|') && !tz.input.Next().Is('|', '=')
}

func (tz *Tokenizer) isSymbolCharacter(c Char) bool {
	if c.IsEnd() || c.IsDigit() || c.IsLetter() || c.IsWhitespace() {
		return false
	}
	if c.Is(tz.cfg.ExcludedSymbols...) {
		return false
	}
	if tz.cfg.SymbolRuns && c.Is(tz.cfg.SpecialIDStarters...) {
		return false
	}
	return !(tz.isAtBracket(true) ||
		tz.atString(tz.cfg.BlockCommentStart, false) ||
		tz.atString(tz.cfg.LineComment, false) ||
		tz.isAtStartOfNumber() ||
		tz.isAtStartOfIdentifier() ||
		tz.isStringDelimiter(c))
}

func (tz *Tokenizer) fetchSymbol() token.Token {
	b := tz.begin(token.Symbol)
	first := tz.input.Consume()
	b.addTrigger(first)
	if tz.cfg.SymbolRuns {
		if first.Is(',') {
			return tz.finish(b)
		}
		for cur := tz.input.Current(); tz.isSymbolCharacter(cur) && !cur.Is(','); cur = tz.input.Current() {
			b.addTrigger(tz.input.Consume())
		}
		return tz.finish(b)
	}
	next := tz.input.Current()
	if first.Is('*', '&', '|') && next.Value == first.Value || next.Is('=') {
		b.addTrigger(tz.input.Consume())
	}
	return tz.finish(b)
}

// builder accumulates the three text views of a token.
type builder struct {
	typ      token.Type
	start    Char
	trigger  strings.Builder
	contents strings.Builder
	src      strings.Builder
}

func (tz *Tokenizer) begin(typ token.Type) *builder {
	return &builder{typ: typ, start: tz.input.Current()}
}

func (b *builder) addTrigger(c Char) {
	b.trigger.WriteRune(c.Value)
	b.src.WriteRune(c.Value)
}

func (b *builder) addContent(c Char) {
	b.contents.WriteRune(c.Value)
	b.src.WriteRune(c.Value)
}

func (b *builder) addSource(c Char) {
	b.src.WriteRune(c.Value)
}

func (b *builder) silentContent(s string) {
	b.contents.WriteString(s)
}

func (tz *Tokenizer) finish(b *builder) token.Token {
	tok := token.Token{
		Type:     b.typ,
		Trigger:  b.trigger.String(),
		Contents: b.contents.String(),
		Source:   b.src.String(),
		Span: source.Span{
			File:  tz.file.ID,
			Start: b.start.Off,
			End:   tz.input.Current().Off,
		},
		Pos: source.LineCol{Line: b.start.Line, Col: b.start.Col},
	}
	switch tok.Type {
	case token.Symbol:
		tok.Contents = tok.Trigger
	case token.ID:
		tok.Trigger = tok.Contents
	}
	return tok
}
