package token

import (
	"fmt"
	"slices"

	"bssc/internal/source"
)

// Token is a single lexical unit.
type Token struct {
	Type     Type
	Trigger  string
	Contents string
	Source   string
	Span     source.Span
	Pos      source.LineCol
}

// Is reports whether the token has type t.
func (t Token) Is(typ Type) bool { return t.Type == typ }

// Matches reports whether the token has type typ and trigger trigger.
func (t Token) Matches(typ Type, trigger string) bool {
	return t.Type == typ && t.Trigger == trigger
}

// IsEnd reports whether this is the end-of-input token.
func (t Token) IsEnd() bool { return t.Type == EOI }

// IsNotEnd is the negation of IsEnd.
func (t Token) IsNotEnd() bool { return t.Type != EOI }

// IsSymbol reports whether the token is a symbol; with arguments, whether it
// is one of the given symbols.
func (t Token) IsSymbol(symbols ...string) bool {
	return t.matchesAny(Symbol, symbols)
}

// IsKeyword works like IsSymbol for keywords; triggers are canonical.
func (t Token) IsKeyword(keywords ...string) bool {
	return t.matchesAny(Keyword, keywords)
}

// IsIdentifier works like IsSymbol for plain identifiers.
func (t Token) IsIdentifier(values ...string) bool {
	return t.matchesAny(ID, values)
}

// IsSpecialIdentifier works like IsSymbol for special identifiers; the
// arguments are starters ("$", "#", "@").
func (t Token) IsSpecialIdentifier(starters ...string) bool {
	return t.matchesAny(SpecialID, starters)
}

// IsSpecialIdentifierWithContent reports a special identifier with the given
// starter and contents.
func (t Token) IsSpecialIdentifierWithContent(starter, contents string) bool {
	return t.Matches(SpecialID, starter) && t.Contents == contents
}

// IsNumber reports whether the token is an integer, decimal or scientific number.
func (t Token) IsNumber() bool { return t.Type.IsNumber() }

// IsString reports whether the token is a string literal.
func (t Token) IsString() bool { return t.Type == String }

// HasContent reports whether the token contents equal contents.
func (t Token) HasContent(contents string) bool {
	return t.Contents == contents
}

func (t Token) matchesAny(typ Type, values []string) bool {
	if t.Type != typ {
		return false
	}
	if len(values) == 0 {
		return true
	}
	return slices.Contains(values, t.Trigger)
}

func (t Token) String() string {
	return fmt.Sprintf("%s:%s (%d:%d)", t.Type, t.Source, t.Pos.Line, t.Pos.Col)
}
