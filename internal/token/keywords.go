package token

import "strings"

// Canonical keyword triggers of the BSS language.
const (
	KwImport  = "import"
	KwMixin   = "mixin"
	KwInclude = "include"
	KwExtend  = "extend"
	KwMedia   = "media"
)

// Keywords maps every accepted spelling to its canonical trigger.
// "func" and "call" are the historic spellings of mixin and include.
var Keywords = map[string]string{
	"import":  KwImport,
	"mixin":   KwMixin,
	"func":    KwMixin,
	"include": KwInclude,
	"call":    KwInclude,
	"extend":  KwExtend,
	"media":   KwMedia,
}

// LookupKeyword resolves ident case-insensitively.
func LookupKeyword(ident string) (string, bool) {
	kw, ok := Keywords[strings.ToLower(ident)]
	return kw, ok
}
