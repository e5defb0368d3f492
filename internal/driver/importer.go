package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"bssc/internal/ast"
	"bssc/internal/diag"
	"bssc/internal/generator"
	"bssc/internal/log"
	"bssc/internal/parser"
	"bssc/internal/source"
)

// Ext is the stylesheet file extension.
const Ext = ".bss"

type importEntry struct {
	sheet *ast.Stylesheet
	err   error
}

// FileImporter resolves imports from disk. Stylesheets are named by their
// canonical path, so one file reached through different relative spellings
// is parsed and merged only once.
type FileImporter struct {
	files     *source.FileSet
	reporter  diag.Reporter
	maxErrors uint
	roots     []string
	cache     map[string]importEntry
	order     []string
}

// NewFileImporter loads into files and reports parse problems to reporter.
// include lists extra search roots; entries may be doublestar patterns such
// as "vendor/*/styles", which are expanded to the directories they match.
func NewFileImporter(files *source.FileSet, reporter diag.Reporter, maxErrors uint, include []string) (*FileImporter, error) {
	im := &FileImporter{
		files:     files,
		reporter:  reporter,
		maxErrors: maxErrors,
		cache:     make(map[string]importEntry),
	}
	for _, pattern := range include {
		dirs, err := expandRoot(pattern)
		if err != nil {
			return nil, fmt.Errorf("include %q: %w", pattern, err)
		}
		im.roots = append(im.roots, dirs...)
	}
	return im, nil
}

func expandRoot(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.IsDir() {
			dirs = append(dirs, m)
		}
	}
	return dirs, nil
}

// Roots returns the expanded include directories.
func (im *FileImporter) Roots() []string { return im.roots }

// Loaded lists the canonical paths parsed so far.
func (im *FileImporter) Loaded() []string {
	return im.order
}

// Resolve implements generator.Resolver. from is the canonical path of the
// importing stylesheet or empty for the entry file.
func (im *FileImporter) Resolve(from, name string) (*ast.Stylesheet, error) {
	path, err := im.find(from, name)
	if err != nil {
		return nil, err
	}
	if e, ok := im.cache[path]; ok {
		return e.sheet, e.err
	}
	sheet, err := im.load(path)
	im.cache[path] = importEntry{sheet: sheet, err: err}
	im.order = append(im.order, path)
	return sheet, err
}

// find tries name and name.bss next to the importing file (the working
// directory for the entry file), then in every include root.
func (im *FileImporter) find(from, name string) (string, error) {
	var dirs []string
	if filepath.IsAbs(name) {
		dirs = []string{""}
	} else {
		if from != "" {
			dirs = append(dirs, filepath.Dir(filepath.FromSlash(from)))
		} else {
			dirs = append(dirs, ".")
		}
		dirs = append(dirs, im.roots...)
	}

	candidates := []string{name}
	if !strings.HasSuffix(name, Ext) {
		candidates = append(candidates, name+Ext)
	}
	for _, dir := range dirs {
		for _, cand := range candidates {
			path := cand
			if dir != "" {
				path = filepath.Join(dir, cand)
			}
			info, err := os.Stat(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return "", err
			}
			if !info.Mode().IsRegular() {
				continue
			}
			return source.Canonical(path)
		}
	}
	return "", fmt.Errorf("%s: %w", name, generator.ErrImportNotFound)
}

func (im *FileImporter) load(path string) (*ast.Stylesheet, error) {
	id, err := im.files.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	log.Debug("parsing %s", path)
	return parser.Parse(path, im.files.Get(id), parser.Options{
		Reporter:  im.reporter,
		MaxErrors: im.maxErrors,
	})
}
