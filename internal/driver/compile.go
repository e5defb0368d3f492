package driver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"

	"bssc/internal/diag"
	"bssc/internal/generator"
	"bssc/internal/log"
	"bssc/internal/observ"
	"bssc/internal/output"
	"bssc/internal/source"
)

// CompileOptions configures Compile.
type CompileOptions struct {
	MaxDiagnostics int
	Compact        bool
	// Include lists extra import roots, see NewFileImporter.
	Include []string
	// Timer, when set, receives the parse/import/compile/generate phases.
	Timer *observ.Timer
}

type CompileResult struct {
	FileSet *source.FileSet
	Bag     *diag.Bag
	// Input is the canonical path of the entry stylesheet.
	Input string
	// Sheets lists every stylesheet that was parsed, entry first.
	Sheets []string
	CSS    []byte
}

// Compile turns the stylesheet at path, with everything it imports, into CSS.
// The result is returned even on failure so its diagnostics can be shown.
// Parse failures come back as an error wrapping *diag.ParseError.
func Compile(path string, opts CompileOptions) (*CompileResult, error) {
	fs := source.NewFileSet()
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &CompileResult{FileSet: fs, Bag: bag}

	if !strings.EqualFold(filepath.Ext(path), Ext) {
		return res, fmt.Errorf("%s: not a %s file", path, Ext)
	}
	input, err := source.Canonical(path)
	if err != nil {
		return res, err
	}
	res.Input = input

	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		return res, err
	}
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	importer, err := NewFileImporter(fs, reporter, maxErrors, opts.Include)
	if err != nil {
		return res, err
	}
	if roots := importer.Roots(); len(roots) > 0 {
		log.Debug("include roots: %s", strings.Join(roots, ", "))
	}

	stop := opts.Timer.Start("parse")
	entry, err := importer.Resolve("", input)
	stop("")
	if err != nil {
		return res, err
	}

	gen := generator.New(generator.Options{Reporter: reporter, Resolver: importer})
	stop = opts.Timer.Start("import")
	err = gen.ImportParsedStylesheet(entry)
	res.Sheets = importer.Loaded()
	stop(fmt.Sprintf("%d stylesheets", len(res.Sheets)))
	if err != nil {
		return res, err
	}

	stop = opts.Timer.Start("compile")
	gen.Compile()
	stop(fmt.Sprintf("%d rules", len(gen.Sections())))

	stop = opts.Timer.Start("generate")
	var buf bytes.Buffer
	w := output.NewWriter(&buf, opts.Compact)
	gen.Generate(w)
	err = w.Flush()
	stop("")
	if err != nil {
		return res, err
	}
	res.CSS = buf.Bytes()
	return res, nil
}

// OutputPath derives the CSS file for input: the base name with a .css
// extension, placed in outDir or next to the input when outDir is empty.
func OutputPath(input, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".css"
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	return filepath.Join(outDir, base)
}

// WriteCSS writes data to path, creating parent directories.
func WriteCSS(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	// #nosec G306 -- stylesheets are meant to be world readable
	return os.WriteFile(path, data, 0o644)
}
