package diagfmt

import (
	"path/filepath"

	"bssc/internal/source"
)

const autoPathLimit = 40

func displayPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if rel, err := source.RelativePath(f.Path, fs.BaseDir()); err == nil {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	case PathModeAuto:
		if len(f.Path) >= autoPathLimit && filepath.IsAbs(f.Path) {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}

// fileOf guards against diagnostics whose span points outside fs.
func fileOf(fs *source.FileSet, id source.FileID) (*source.File, bool) {
	if fs == nil || int(id) >= fs.Len() {
		return nil, false
	}
	return fs.Get(id), true
}
