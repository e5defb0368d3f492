package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"bssc/internal/source"
)

// Cursor читает символы файла по одному и ведёт счёт строк и колонок.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off.
	Limit uint32
	line  uint32
	col   uint32
}

// NewCursor creates a cursor at the start of f.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit, line: 1, col: 1}
}

// EOF проверяет, достигнут ли конец файла.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Read decodes the next character. Invalid UTF-8 and NUL bytes are read as
// U+FFFD so that the zero rune stays reserved for the end of input.
func (c *Cursor) Read() (Char, bool) {
	if c.EOF() {
		return Char{}, false
	}
	r, size := utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
	if r == 0 {
		r = utf8.RuneError
	}
	ch := Char{Value: r, Off: c.Off, Line: c.line, Col: c.col}
	w, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("rune size overflow: %w", err))
	}
	c.Off += w
	if r == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return ch, true
}

// End returns the end-of-input character positioned after the last read.
func (c *Cursor) End() Char {
	return Char{Off: c.Off, Line: c.line, Col: c.col}
}
