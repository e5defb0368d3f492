package diag

import (
	"errors"
	"testing"

	"bssc/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	r := BagReporter{Bag: b}
	for i := range 3 {
		r.Report(SynUnexpectedToken, SevError, source.At(0, uint32(i)), "boom", nil)
	}
	if b.Len() != 2 || b.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d, want 2/1", b.Len(), b.Dropped())
	}
	if !b.HasErrors() || b.HasWarnings() {
		t.Fatalf("unexpected severities: %+v", b.Items())
	}
}

func TestBagSortAndErrors(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, SemaUnknownMixin, source.At(0, 9), "w"))
	b.Add(New(SevError, SynExpectSymbol, source.At(0, 9), "e"))
	b.Add(New(SevError, LexUnknownChar, source.At(0, 1), "first"))
	b.Sort()

	items := b.Items()
	if items[0].Message != "first" || items[1].Message != "e" || items[2].Message != "w" {
		t.Fatalf("bad order: %+v", items)
	}
	if got := len(b.Errors()); got != 2 {
		t.Fatalf("Errors() = %d, want 2", got)
	}
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: b})
	sp := source.Span{Start: 1, End: 4}
	r.Report(SemaUnitMismatch, SevWarning, sp, "px vs em", nil)
	r.Report(SemaUnitMismatch, SevWarning, sp, "px vs em", nil)
	r.Report(SemaUnitMismatch, SevWarning, sp, "px vs %", nil)
	if b.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", b.Len())
	}
}

func TestParseErrorMessage(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("x.bss", []byte("a {\n  b: ?;\n}")))

	one := NewParseError(f, []Diagnostic{New(SevError, LexUnknownChar, source.At(f.ID, 9), "Invalid character in input: '?'")})
	if got, want := one.Error(), "line 2 position 6 Invalid character in input: '?'"; got != want {
		t.Errorf("single: got %q want %q", got, want)
	}

	many := NewParseError(f, []Diagnostic{
		New(SevError, LexUnknownChar, source.At(f.ID, 9), "first"),
		New(SevError, SynExpectSymbol, source.At(f.ID, 10), "second"),
	})
	if got, want := many.Error(), "2 errors occurred. First: line 2 position 6 first"; got != want {
		t.Errorf("aggregate: got %q want %q", got, want)
	}

	var err error = many
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Count() != 2 {
		t.Fatal("errors.As should unwrap ParseError")
	}
}

func TestCodeID(t *testing.T) {
	if SemaUnknownExtend.ID() != "SEM3001" {
		t.Errorf("got %s", SemaUnknownExtend.ID())
	}
	if Code(9999).Title() != "Unknown error" {
		t.Errorf("got %s", Code(9999).Title())
	}
}
