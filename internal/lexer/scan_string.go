package lexer

import (
	"bssc/internal/diag"
	"bssc/internal/token"
)

func (tz *Tokenizer) fetchString() token.Token {
	open := tz.input.Current()
	delim := open.Value
	escape := tz.cfg.StringDelimiters[delim]

	b := tz.begin(token.String)
	b.addTrigger(tz.input.Consume())
	for {
		cur := tz.input.Current()
		if cur.IsEnd() || cur.IsNewLine() || cur.Value == delim {
			break
		}
		if escape != 0 && cur.Value == escape {
			b.addSource(tz.input.Consume())
			next := tz.input.Current()
			if s, ok := tz.escape(next, delim, escape); ok {
				b.silentContent(s)
				b.addSource(tz.input.Consume())
			} else {
				tz.report(diag.LexBadEscape, diag.SevWarning, next, "Cannot use '%s' as escaped character", next)
			}
			continue
		}
		b.addContent(tz.input.Consume())
	}

	if tz.input.Current().Value == delim && !tz.input.Current().IsEnd() {
		b.addSource(tz.input.Consume())
	} else {
		tz.errorf(diag.LexUnterminatedString, tz.input.Current(), "Premature end of string constant")
	}
	return tz.finish(b)
}

func (tz *Tokenizer) escape(next Char, delim, escape rune) (string, bool) {
	if tz.cfg.Escape == nil {
		return DecodeEscape(next, delim, escape)
	}
	return tz.cfg.Escape(next, delim, escape)
}
