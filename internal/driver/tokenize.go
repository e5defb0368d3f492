package driver

import (
	"bssc/internal/diag"
	"bssc/internal/lexer"
	"bssc/internal/source"
	"bssc/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and returns its whole token stream, final EOI included.
// Lexical problems go to the result's Bag; only I/O fails the call.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	tz := lexer.NewBSS(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tz.All(),
		Bag:     bag,
	}, nil
}
