package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"bssc/internal/diag"
	"bssc/internal/log"
)

// BuildOptions describes a project build, usually read from bss.toml.
type BuildOptions struct {
	// Root is the directory globs and OutDir are relative to.
	Root   string
	Inputs []string
	OutDir string
	CompileOptions
}

// BuildResult is the outcome for one input file.
type BuildResult struct {
	Input    string // relative to Root
	Output   string
	Bytes    int
	Duration time.Duration
	Result   *CompileResult
	Err      error
}

// Warnings counts the warnings reported for this file.
func (r BuildResult) Warnings() int {
	if r.Result == nil {
		return 0
	}
	n := 0
	for _, d := range r.Result.Bag.Items() {
		if d.Severity == diag.SevWarning {
			n++
		}
	}
	return n
}

// ExpandInputs matches the doublestar patterns under root and returns the
// sorted, de-duplicated .bss files, relative to root.
func ExpandInputs(root string, patterns []string) ([]string, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("input pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if filepath.Ext(m) != Ext || seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	slices.Sort(out)
	return out, nil
}

// Build compiles every input one after another and writes the CSS into
// OutDir, keeping the directory layout of the inputs. A failing file does
// not stop the build; its error is recorded in its BuildResult. The context
// is checked between files.
func Build(ctx context.Context, opts BuildOptions) ([]BuildResult, error) {
	inputs, err := ExpandInputs(opts.Root, opts.Inputs)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no %s files match %v", Ext, opts.Inputs)
	}

	results := make([]BuildResult, 0, len(inputs))
	for _, rel := range inputs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, buildOne(opts, rel))
	}
	return results, nil
}

func buildOne(opts BuildOptions, rel string) BuildResult {
	started := time.Now()
	res := BuildResult{Input: rel}
	outDir := filepath.Join(opts.Root, opts.OutDir, filepath.Dir(filepath.FromSlash(rel)))
	res.Output = OutputPath(rel, outDir)

	cr, err := Compile(filepath.Join(opts.Root, filepath.FromSlash(rel)), opts.CompileOptions)
	res.Result = cr
	if err == nil {
		stop := opts.Timer.Start("write")
		err = WriteCSS(res.Output, cr.CSS)
		stop(rel)
		res.Bytes = len(cr.CSS)
	}
	res.Err = err
	res.Duration = time.Since(started)
	if err != nil {
		log.Debug("build %s failed: %v", rel, err)
	} else {
		log.Debug("built %s -> %s (%d bytes)", rel, res.Output, res.Bytes)
	}
	return res
}
