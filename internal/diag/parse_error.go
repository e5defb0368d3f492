package diag

import (
	"fmt"

	"bssc/internal/source"
)

// ParseError is the aggregated failure of one file's parse. It is returned
// only after the whole file was consumed.
type ParseError struct {
	Path   string
	Errors []Diagnostic
	first  source.LineCol
}

// NewParseError builds the aggregate for errs, which must not be empty.
func NewParseError(file *source.File, errs []Diagnostic) *ParseError {
	pe := &ParseError{Errors: errs}
	if file != nil {
		pe.Path = file.Path
		if len(errs) > 0 {
			pe.first = file.Position(errs[0].Primary.Start)
		}
	}
	return pe
}

// Count returns the number of errors.
func (e *ParseError) Count() int { return len(e.Errors) }

// First returns the first error in report order.
func (e *ParseError) First() Diagnostic { return e.Errors[0] }

func (e *ParseError) Error() string {
	if len(e.Errors) == 0 {
		return "parse failed"
	}
	msg := fmt.Sprintf("line %d position %d %s", e.first.Line, e.first.Col, e.Errors[0].Message)
	if len(e.Errors) == 1 {
		return msg
	}
	return fmt.Sprintf("%d errors occurred. First: %s", len(e.Errors), msg)
}
