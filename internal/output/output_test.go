package output

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func block(s Sink) {
	s.Output("a {")
	s.IncIndent()
	s.OptionalLineBreak()
	s.Output("color: red;")
	s.DecIndent()
	s.OptionalLineBreak()
	s.Output("}")
	s.LineBreak()
}

func TestExpandedIndents(t *testing.T) {
	assert.Equal(t, "a {\n    color: red;\n}\n", String(false, block))
}

func TestCompactUsesSpaces(t *testing.T) {
	assert.Equal(t, "a { color: red; }\n", String(true, block))
}

func TestNestedLevels(t *testing.T) {
	got := String(false, func(s Sink) {
		s.Output("@media print {")
		s.IncIndent()
		s.LineBreak()
		s.Output("a {")
		s.IncIndent()
		s.OptionalLineBreak()
		s.Output("x: 1;")
		s.DecIndent()
		s.OptionalLineBreak()
		s.Output("}")
		s.DecIndent()
		s.OptionalLineBreak()
		s.Output("}")
	})
	assert.Equal(t, "@media print {\n    a {\n        x: 1;\n    }\n}", got)
}

func TestDecIndentStopsAtZero(t *testing.T) {
	got := String(false, func(s Sink) {
		s.DecIndent()
		s.DecIndent()
		s.LineBreak()
		s.Output("x")
	})
	assert.Equal(t, "\nx", got)
}

type failingWriter struct{ calls int }

var errDiskFull = errors.New("disk full")

func (f *failingWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, errDiskFull
}

func TestFlushReportsWriteError(t *testing.T) {
	fw := &failingWriter{}
	w := NewWriter(fw, false)
	block(w)
	err := w.Flush()
	require.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, 1, fw.calls)
	assert.False(t, w.compact)
}
