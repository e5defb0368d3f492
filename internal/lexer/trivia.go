package lexer

import "bssc/internal/diag"

func (tz *Tokenizer) skipToEndOfLine() {
	for c := tz.input.Current(); !c.IsEnd() && !c.IsNewLine(); c = tz.input.Current() {
		tz.input.Consume()
	}
}

// skipBlockComment runs after the opening delimiter was consumed; start is
// where the comment began.
func (tz *Tokenizer) skipBlockComment(start Char) {
	for !tz.input.Current().IsEnd() {
		if tz.atString(tz.cfg.BlockCommentEnd, true) {
			return
		}
		tz.input.Consume()
	}
	tz.errorf(diag.LexUnterminatedBlockComment, start, "Premature end of block comment")
}
