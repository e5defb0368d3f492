package token

// Type represents the category of a token.
type Type uint8

const (
	// EOI marks the end of the input.
	EOI Type = iota
	// ID is a plain identifier: color, .btn, -webkit-box.
	ID
	// SpecialID is an identifier introduced by a starter: $var, #id, @font-face.
	SpecialID
	// String is a quoted literal.
	String
	Integer
	Decimal
	ScientificDecimal
	// Symbol covers brackets and operator runs.
	Symbol
	// Keyword is an ID or SpecialID that matched the keyword table.
	Keyword
)

var typeNames = [...]string{
	EOI:               "EOI",
	ID:                "ID",
	SpecialID:         "SPECIAL_ID",
	String:            "STRING",
	Integer:           "INTEGER",
	Decimal:           "DECIMAL",
	ScientificDecimal: "SCIENTIFIC_DECIMAL",
	Symbol:            "SYMBOL",
	Keyword:           "KEYWORD",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "UNKNOWN"
}

// IsNumber reports whether t is one of the numeric types.
func (t Type) IsNumber() bool {
	return t == Integer || t == Decimal || t == ScientificDecimal
}
