package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"bssc/internal/diag"
	"bssc/internal/log"
)

const (
	manifestName       = "bss.toml"
	noManifestMessage  = "no bss.toml found\nrun `bssc init` or compile a single file with `bssc compile file.bss`"
	defaultMaxDiagnose = 100
)

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Build       buildConfig       `toml:"build"`
	Diagnostics diagnosticsConfig `toml:"diagnostics"`
}

type buildConfig struct {
	Inputs  []string `toml:"inputs"`
	OutDir  string   `toml:"out_dir"`
	Compact bool     `toml:"compact"`
	Include []string `toml:"include"`
}

type diagnosticsConfig struct {
	Max    int  `toml:"max"`
	Werror bool `toml:"werror"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: %s: failed to parse TOML: %w", path, diag.ProjManifestInvalid.ID(), err)
	}
	for _, key := range meta.Undecoded() {
		log.Warn("%s: unknown key %s", path, key)
	}
	if !meta.IsDefined("build") {
		return projectConfig{}, fmt.Errorf("%s: %s: missing [build]", path, diag.ProjManifestInvalid.ID())
	}
	inputs := cfg.Build.Inputs[:0]
	for _, in := range cfg.Build.Inputs {
		if in = strings.TrimSpace(in); in != "" {
			inputs = append(inputs, in)
		}
	}
	cfg.Build.Inputs = inputs
	if len(cfg.Build.Inputs) == 0 {
		return projectConfig{}, fmt.Errorf("%s: %s: [build].inputs is empty", path, diag.ProjNoInputs.ID())
	}
	if cfg.Diagnostics.Max < 0 {
		return projectConfig{}, fmt.Errorf("%s: %s: [diagnostics].max must not be negative", path, diag.ProjManifestInvalid.ID())
	}
	if !meta.IsDefined("diagnostics", "max") {
		cfg.Diagnostics.Max = defaultMaxDiagnose
	}
	return cfg, nil
}

// includeRoots resolves the manifest's include entries against its directory.
func (m *projectManifest) includeRoots() []string {
	out := make([]string, 0, len(m.Config.Build.Include))
	for _, inc := range m.Config.Build.Include {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(m.Root, filepath.FromSlash(inc))
		}
		out = append(out, inc)
	}
	return out
}

// buildDefaultManifest returns the manifest written by `bssc init`.
func buildDefaultManifest() string {
	return `# BSS project manifest
[build]
inputs = ["styles/**/*.bss"]
out_dir = "dist"
compact = false
include = []

[diagnostics]
max = 100
werror = false
`
}
