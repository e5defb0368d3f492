package lexer

import (
	"bssc/internal/diag"
	"bssc/internal/token"
)

func (tz *Tokenizer) isAtStartOfNumber() bool {
	cur, next := tz.input.Current(), tz.input.Next()
	return cur.IsDigit() ||
		cur.Is('-') && next.IsDigit() ||
		cur.Is('-') && next.Is(tz.cfg.DecimalSeparator) && tz.input.Peek(2).IsDigit() ||
		cur.Is(tz.cfg.DecimalSeparator) && next.IsDigit()
}

func (tz *Tokenizer) isScientificSeparator(c Char) bool {
	return c.Is(tz.cfg.ScientificSeparator, tz.cfg.AltScientificSeparator)
}

func (tz *Tokenizer) fetchNumber() token.Token {
	b := tz.begin(token.Integer)
	first := tz.input.Consume()
	if first.Is(tz.cfg.DecimalSeparator) {
		b.typ = token.Decimal
		b.silentContent(string(tz.cfg.EffectiveDecimalSeparator))
		b.addSource(first)
	} else {
		b.addContent(first)
	}

	for {
		cur, next := tz.input.Current(), tz.input.Next()
		switch {
		case cur.IsDigit():
			b.addContent(tz.input.Consume())
		case cur.Is(tz.cfg.GroupingSeparator) && next.IsDigit():
			b.addSource(tz.input.Consume())
		case cur.Is(tz.cfg.DecimalSeparator):
			if b.typ == token.Decimal || b.typ == token.ScientificDecimal {
				tz.errorf(diag.LexBadNumber, cur, "Unexpected decimal separators")
			} else {
				b.typ = token.Decimal
				b.silentContent(string(tz.cfg.EffectiveDecimalSeparator))
			}
			b.addSource(tz.input.Consume())
		case tz.isScientificSeparator(cur) && (next.IsDigit() || next.Is('+', '-')):
			if b.typ == token.ScientificDecimal {
				tz.errorf(diag.LexBadNumber, cur, "Unexpected scientific notation separators")
				b.addSource(tz.input.Consume())
				continue
			}
			b.typ = token.ScientificDecimal
			b.silentContent(string(tz.cfg.EffectiveScientificSeparator))
			b.addSource(tz.input.Consume())
			if tz.input.Current().Is('+', '-') {
				b.addContent(tz.input.Consume())
			}
		default:
			tz.fetchUnit(b)
			return tz.finish(b)
		}
	}
}

// fetchUnit appends "%" or a unit word (px, em, deg) to a number.
func (tz *Tokenizer) fetchUnit(b *builder) {
	if !tz.cfg.NumberUnits {
		return
	}
	if tz.input.Current().Is('%') {
		b.addContent(tz.input.Consume())
		return
	}
	for tz.input.Current().IsLetter() {
		b.addContent(tz.input.Consume())
	}
}
