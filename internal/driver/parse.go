package driver

import (
	"fortio.org/safecast"

	"bssc/internal/ast"
	"bssc/internal/diag"
	"bssc/internal/parser"
	"bssc/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Sheet   *ast.Stylesheet
	Bag     *diag.Bag
	// Err is the aggregated *diag.ParseError, nil when the file is clean.
	// Sheet holds whatever was parsed either way.
	Err error
}

// Parse loads and parses a single file without following imports.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}

	sheet, perr := parser.Parse(file.Path, file, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Sheet:   sheet,
		Bag:     bag,
		Err:     perr,
	}, nil
}
