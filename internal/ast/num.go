package ast

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NumberPrecision is the number of decimals computed numbers are rendered with.
const NumberPrecision = 4

// Num is a number with an optional unit ("px", "em", "%").
type Num struct {
	Value decimal.Decimal
	Text  string // numeric part as written or formatted
	Unit  string
}

// ParseNum splits number token contents such as "-1.5em", "10%" or "1e-3"
// into value and unit. ok is false when no numeric prefix exists.
func ParseNum(contents string) (*Num, bool) {
	i := numericPrefix(contents)
	if i == 0 {
		return nil, false
	}
	text := contents[:i]
	lit := text
	switch {
	case strings.HasPrefix(lit, "."):
		lit = "0" + lit
	case strings.HasPrefix(lit, "-."):
		lit = "-0" + lit[1:]
	}
	v, err := decimal.NewFromString(lit)
	if err != nil {
		return nil, false
	}
	return &Num{Value: v, Text: text, Unit: contents[i:]}, true
}

// NewNum builds a computed number; the text is derived from v.
func NewNum(v decimal.Decimal, unit string) *Num {
	return &Num{Value: v, Text: FormatNumber(v), Unit: unit}
}

// FormatNumber renders v with at most NumberPrecision decimals.
func FormatNumber(v decimal.Decimal) string {
	return v.Round(NumberPrecision).String()
}

func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits := 0
	for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
		if isDigit(s[i]) {
			digits++
		}
		i++
	}
	if digits == 0 {
		return 0
	}
	// экспонента: e5, e-3, E+2
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '-' || s[j] == '+') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (n *Num) String() string { return n.Text + n.Unit }
