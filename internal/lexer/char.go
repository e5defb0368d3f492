package lexer

import (
	"slices"
	"unicode"
)

// Char is a single decoded character with its position. The zero Value marks
// the end of input.
type Char struct {
	Value rune
	Off   uint32
	Line  uint32
	Col   uint32
}

func (c Char) IsEnd() bool        { return c.Value == 0 }
func (c Char) IsDigit() bool      { return c.Value >= '0' && c.Value <= '9' }
func (c Char) IsLetter() bool     { return unicode.IsLetter(c.Value) }
func (c Char) IsWhitespace() bool { return unicode.IsSpace(c.Value) }
func (c Char) IsNewLine() bool    { return c.Value == '\n' }

// Is reports whether c is one of runes.
func (c Char) Is(runes ...rune) bool {
	return !c.IsEnd() && slices.Contains(runes, c.Value)
}

func (c Char) String() string {
	if c.IsEnd() {
		return "<EOI>"
	}
	return string(c.Value)
}
