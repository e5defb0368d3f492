package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxFuzzInput = 1 << 16  // 64 KiB
	maxSeedBytes = 64 << 10 // ограничение для тестового корпуса
)

var inlineSeeds = []string{
	"",
	"a { color: red; }",
	"$w: 10px !default;\n.box { width: $w * 2 + 1px; }",
	"@mixin m($a, $b) { x: $a; y: $b; a:hover { z: 1; } }\n.c { @include m(1, 2); @call m; }",
	".a { x: 1; }\n.b { @extend .a; @extend .missing; }",
	"nav { @media print { display: none; @media (color) { a { b: c; } } } }",
	"@font-face { font-family: 'X'; src: url('x.woff'); }",
	"a { color: lighten(#336699, 10%); background: rgba(0, 0, 0, .5); }",
	"a { b: 1px / 0; c: 1px + 2em; d: calc(100% - 2px); }",
	"a, b ~ c { &:hover { x: 1; } .ie & { y: 2; } &-suffix { z: 3; } }",
	"a { content: 'unterminated",
	"a { b: c; ",
	"}}}{{{",
	"$a: $b; $b: $a; x { y: $a; }",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.bss файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".bss" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

func clamp(src []byte, limit int) []byte {
	if len(src) <= limit {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:limit]...)
}
