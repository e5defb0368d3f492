// Package output renders generated stylesheets as text.
package output

import (
	"bufio"
	"io"
	"strings"
)

// Sink receives generated text. Formatting decisions live behind the two
// line-break calls so the generator does not know which mode is active.
type Sink interface {
	Output(s string)
	// LineBreak always ends the line; in expanded mode it also indents.
	LineBreak()
	// OptionalLineBreak is a newline plus indent in expanded mode and a
	// single space in compact mode.
	OptionalLineBreak()
	IncIndent()
	DecIndent()
}

const indentUnit = "    "

// Writer is a Sink over an io.Writer. The first write error is kept and
// returned by Flush; later writes are dropped.
type Writer struct {
	w       *bufio.Writer
	compact bool
	level   int
	err     error
}

// NewWriter returns an expanded (compact == false) or compact writer.
func NewWriter(w io.Writer, compact bool) *Writer {
	return &Writer{w: bufio.NewWriter(w), compact: compact}
}

func (o *Writer) Output(s string) {
	if o.err != nil {
		return
	}
	_, o.err = o.w.WriteString(s)
}

func (o *Writer) LineBreak() {
	o.Output("\n")
	if !o.compact {
		o.indent()
	}
}

func (o *Writer) OptionalLineBreak() {
	if o.compact {
		o.Output(" ")
		return
	}
	o.Output("\n")
	o.indent()
}

func (o *Writer) IncIndent() { o.level++ }

func (o *Writer) DecIndent() {
	if o.level > 0 {
		o.level--
	}
}

func (o *Writer) indent() {
	if o.level > 0 {
		o.Output(strings.Repeat(indentUnit, o.level))
	}
}

// Flush writes buffered output and reports the first error seen.
func (o *Writer) Flush() error {
	if o.err != nil {
		return o.err
	}
	return o.w.Flush()
}

// String renders through a fresh writer into memory.
func String(compact bool, render func(Sink)) string {
	var sb strings.Builder
	w := NewWriter(&sb, compact)
	render(w)
	// strings.Builder never fails
	_ = w.Flush()
	return sb.String()
}
