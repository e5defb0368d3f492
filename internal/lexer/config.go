package lexer

import (
	"strings"

	"bssc/internal/token"
)

// EscapeFunc decides what an escape sequence inside a string contributes to
// the token contents. next is the character after the escape character.
type EscapeFunc func(next Char, delim, escape rune) (string, bool)

// Config describes a tokenizer dialect.
type Config struct {
	DecimalSeparator             rune
	EffectiveDecimalSeparator    rune
	GroupingSeparator            rune
	ScientificSeparator          rune
	AltScientificSeparator       rune
	EffectiveScientificSeparator rune

	LineComment       string
	BlockCommentStart string
	BlockCommentEnd   string

	Brackets                 []rune
	TreatSinglePipeAsBracket bool

	SpecialIDStarters    []rune
	SpecialIDTerminators []rune

	// Keywords maps a (lower-cased unless KeywordsCaseSensitive) spelling to
	// its canonical trigger.
	Keywords              map[string]string
	KeywordsCaseSensitive bool

	// StringDelimiters maps an opening delimiter to its escape character;
	// 0 means the delimiter has no escapes.
	StringDelimiters map[rune]rune
	Escape           EscapeFunc

	// Dialect extensions used by the BSS tokenizer.

	// StandaloneSymbols are emitted as single-character symbols like brackets.
	StandaloneSymbols []rune
	// NumberUnits lets a number swallow a trailing unit word or a '%'.
	NumberUnits bool
	// SelectorIdentifiers accepts "-x" and ".x" as identifier starts and
	// '-', '.', '#' as identifier characters unless followed by whitespace.
	SelectorIdentifiers bool
	// ExcludedSymbols never take part in a symbol.
	ExcludedSymbols []rune
	// SymbolRuns joins consecutive symbol characters (except ',') into one
	// symbol instead of the default one/two-character symbols.
	SymbolRuns bool
}

// DefaultConfig returns the plain expression tokenizer configuration.
func DefaultConfig() Config {
	return Config{
		DecimalSeparator:             '.',
		EffectiveDecimalSeparator:    '.',
		GroupingSeparator:            '_',
		ScientificSeparator:          'e',
		AltScientificSeparator:       'E',
		EffectiveScientificSeparator: 'e',
		LineComment:                  "//",
		BlockCommentStart:            "/*",
		BlockCommentEnd:              "*/",
		Brackets:                     []rune{'(', '[', '{', '}', ']', ')'},
		TreatSinglePipeAsBracket:     true,
		Keywords:                     map[string]string{},
		StringDelimiters:             map[rune]rune{'"': '\\'},
		Escape:                       DecodeEscape,
	}
}

// BSSConfig returns the configuration of the BSS stylesheet tokenizer.
func BSSConfig() Config {
	cfg := DefaultConfig()
	cfg.SpecialIDStarters = []rune{'@', '$', '#'}
	for spelling, kw := range token.Keywords {
		cfg.AddKeywordAlias(spelling, kw)
	}
	cfg.StringDelimiters['\''] = '\''
	cfg.Escape = RawEscape
	cfg.StandaloneSymbols = []rune{'%'}
	cfg.NumberUnits = true
	cfg.SelectorIdentifiers = true
	cfg.ExcludedSymbols = []rune{'#'}
	cfg.SymbolRuns = true
	return cfg
}

// AddKeyword registers keyword with itself as trigger.
func (c *Config) AddKeyword(keyword string) {
	c.AddKeywordAlias(keyword, keyword)
}

// AddKeywordAlias registers spelling as another way to write keyword.
func (c *Config) AddKeywordAlias(spelling, keyword string) {
	if c.Keywords == nil {
		c.Keywords = make(map[string]string)
	}
	if !c.KeywordsCaseSensitive {
		spelling = strings.ToLower(spelling)
	}
	c.Keywords[spelling] = keyword
}

// DecodeEscape handles \<delim>, \\, \n and \r.
func DecodeEscape(next Char, delim, escape rune) (string, bool) {
	switch next.Value {
	case delim:
		return string(delim), true
	case escape:
		return string(escape), true
	case 'n':
		return "\n", true
	case 'r':
		return "\r", true
	}
	return "", false
}

// RawEscape keeps the escape sequence as written.
func RawEscape(next Char, _, escape rune) (string, bool) {
	if next.IsEnd() {
		return "", false
	}
	return string(escape) + string(next.Value), true
}
