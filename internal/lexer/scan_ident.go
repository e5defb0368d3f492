package lexer

import (
	"slices"
	"strings"

	"bssc/internal/token"
)

func (tz *Tokenizer) isAtStartOfIdentifier() bool {
	cur := tz.input.Current()
	if cur.IsLetter() {
		return true
	}
	// -moz-border-radius, .active
	return tz.cfg.SelectorIdentifiers && cur.Is('-', '.') && tz.input.Next().IsLetter()
}

// isIdentifierChar checks the current character.
func (tz *Tokenizer) isIdentifierChar() bool {
	cur := tz.input.Current()
	if cur.IsDigit() || cur.IsLetter() || cur.Is('_') {
		return true
	}
	// .foo-bar#id: '-', '.' и '#' допустимы, если дальше не пробел
	return tz.cfg.SelectorIdentifiers && cur.Is('-', '.', '#') && !tz.input.Next().IsWhitespace()
}

func (tz *Tokenizer) fetchID() token.Token {
	b := tz.begin(token.ID)
	b.addContent(tz.input.Consume())
	for tz.isIdentifierChar() {
		b.addContent(tz.input.Consume())
	}

	cur := tz.input.Current()
	if !cur.IsEnd() && slices.Contains(tz.cfg.SpecialIDTerminators, cur.Value) {
		b.typ = token.SpecialID
		b.trigger.WriteRune(cur.Value)
		b.addSource(tz.input.Consume())
	}
	return tz.handleKeywords(tz.finish(b))
}

func (tz *Tokenizer) fetchSpecialID() token.Token {
	b := tz.begin(token.SpecialID)
	b.addTrigger(tz.input.Consume())
	for tz.isIdentifierChar() {
		b.addContent(tz.input.Consume())
	}
	return tz.handleKeywords(tz.finish(b))
}

// handleKeywords reclassifies an ID or SPECIAL_ID whose contents are a
// keyword. Contents and source are kept.
func (tz *Tokenizer) handleKeywords(tok token.Token) token.Token {
	key := tok.Contents
	if !tz.cfg.KeywordsCaseSensitive {
		key = strings.ToLower(key)
	}
	if kw, ok := tz.cfg.Keywords[key]; ok {
		tok.Type = token.Keyword
		tok.Trigger = kw
	}
	return tok
}
