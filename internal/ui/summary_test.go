package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bssc/internal/diag"
	"bssc/internal/driver"
)

func resultWithWarning() *driver.CompileResult {
	bag := diag.NewBag(4)
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.SemaUnknownExtend, Message: "unknown"})
	return &driver.CompileResult{Bag: bag}
}

func TestStatus(t *testing.T) {
	clean := driver.BuildResult{Result: &driver.CompileResult{Bag: diag.NewBag(1)}}
	warned := driver.BuildResult{Result: resultWithWarning()}
	failed := driver.BuildResult{Err: errors.New("boom")}

	assert.Equal(t, "ok", Status(clean, false))
	assert.Equal(t, "warnings", Status(warned, false))
	assert.Equal(t, "error", Status(warned, true))
	assert.Equal(t, "error", Status(failed, false))
}

func TestSummaryPlain(t *testing.T) {
	results := []driver.BuildResult{
		{Input: "site.bss", Output: "dist/site.css", Bytes: 2048, Duration: 1500 * time.Microsecond,
			Result: &driver.CompileResult{Bag: diag.NewBag(1)}},
		{Input: "broken.bss", Err: errors.New("broken.bss: 1 error occurred\nmore")},
	}
	out := Summary(results, SummaryOpts{Title: "bssc build", Width: 80})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.Equal(t, "bssc build", lines[0])
	assert.Contains(t, lines[1], "ok  site.bss -> dist/site.css")
	assert.Contains(t, lines[1], "2.0 KiB")
	assert.Contains(t, lines[1], "1.5 ms")
	assert.Contains(t, lines[2], "error  broken.bss")
	assert.NotContains(t, lines[2], "->")
	assert.Equal(t, "      broken.bss: 1 error occurred", lines[3])
	assert.Equal(t, "2 files, 1 failed, 0 with warnings, 2.0 KiB in 1.5 ms", lines[4])
	assert.NotContains(t, out, "\x1b[")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	// широкие символы считаются по две колонки
	assert.Equal(t, "日本...", truncate("日本語のファイル", 7))
}
