package diag

import "fmt"

type Code uint16

const (
	// Unknown
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSymbol       Code = 2002
	SynExpectKeyword      Code = 2003
	SynExpectIdentifier   Code = 2004
	SynExpectExpression   Code = 2005
	SynBadColor           Code = 2006
	SynExpectParameter    Code = 2007
	SynExpectString       Code = 2008
	SynUnexpectedSelector Code = 2009
	SynUnclosedBlock      Code = 2010

	// Семантические предупреждения генератора
	SemaInfo             Code = 3000
	SemaUnknownExtend    Code = 3001
	SemaUnknownMixin     Code = 3002
	SemaMixinArity       Code = 3003
	SemaUnitMismatch     Code = 3004
	SemaDivisionByZero   Code = 3005
	SemaMediaAttributes  Code = 3006
	SemaVariableCycle    Code = 3007
	SemaFunctionArgs     Code = 3008
	SemaRedundantDefault Code = 3009

	// I/O
	IOLoadFileError  Code = 4001
	IOImportNotFound Code = 4002
	IOImportFailed   Code = 4003
	IOWriteError     Code = 4004

	// Manifest
	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001
	ProjNoInputs        Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Invalid character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number",
	LexBadEscape:                "Unknown escape sequence",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSymbol:             "Expected symbol",
	SynExpectKeyword:            "Expected keyword",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectExpression:         "Expected an expression",
	SynBadColor:                 "Invalid color literal",
	SynExpectParameter:          "Expected a $parameter",
	SynExpectString:             "Expected a string",
	SynUnexpectedSelector:       "Unexpected token in selector",
	SynUnclosedBlock:            "Unclosed block",
	SemaInfo:                    "Semantic information",
	SemaUnknownExtend:           "Unknown @extend target",
	SemaUnknownMixin:            "Unknown mixin",
	SemaMixinArity:              "Mixin parameter count mismatch",
	SemaUnitMismatch:            "Incompatible units",
	SemaDivisionByZero:          "Division by zero",
	SemaMediaAttributes:         "Attributes in @media without selector",
	SemaVariableCycle:           "Variable references itself",
	SemaFunctionArgs:            "Bad function arguments",
	SemaRedundantDefault:        "Redundant !default variable",
	IOLoadFileError:             "I/O load file error",
	IOImportNotFound:            "Imported stylesheet not found",
	IOImportFailed:              "Imported stylesheet failed to parse",
	IOWriteError:                "I/O write error",
	ProjInfo:                    "Project information",
	ProjManifestInvalid:         "Invalid bss.toml",
	ProjNoInputs:                "No input stylesheets",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
