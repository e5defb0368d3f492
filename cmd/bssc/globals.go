package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bssc/internal/diag"
	"bssc/internal/diagfmt"
	"bssc/internal/log"
	"bssc/internal/observ"
	"bssc/internal/prof"
	"bssc/internal/source"
)

// profiling is started by setupGlobals and stopped by main.
var profiling *prof.Session

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on":
		return colorOn, nil
	case "off":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func (m colorMode) enabled(f *os.File) bool {
	switch m {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		return isTerminal(f)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// setupGlobals applies the persistent flags before any command runs.
func setupGlobals(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return err
	}
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return err
	}
	if quiet && verbose {
		return fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}
	switch {
	case verbose:
		log.SetLevel(log.LevelDebug)
	case quiet:
		log.SetLevel(log.LevelError)
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return err
	}
	mode, err := readColorMode(colorFlag)
	if err != nil {
		return err
	}
	color.NoColor = !mode.enabled(os.Stderr)

	var popts prof.Options
	if popts.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return err
	}
	if popts.Mem, err = flags.GetString("memprofile"); err != nil {
		return err
	}
	if popts.Trace, err = flags.GetString("trace-out"); err != nil {
		return err
	}
	if popts.Enabled() {
		if profiling, err = prof.Start(popts); err != nil {
			return err
		}
	}
	return nil
}

type globalOpts struct {
	quiet          bool
	timings        bool
	maxDiagnostics int
	diagFormat     string
	color          colorMode
}

func readGlobals(cmd *cobra.Command) (globalOpts, error) {
	flags := cmd.Root().PersistentFlags()
	var opts globalOpts
	var err error
	if opts.quiet, err = flags.GetBool("quiet"); err != nil {
		return opts, err
	}
	if opts.timings, err = flags.GetBool("timings"); err != nil {
		return opts, err
	}
	if opts.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.diagFormat, err = flags.GetString("diag-format"); err != nil {
		return opts, err
	}
	switch opts.diagFormat {
	case "pretty", "short", "json":
	default:
		return opts, fmt.Errorf("unsupported --diag-format %q (must be pretty, short or json)", opts.diagFormat)
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return opts, err
	}
	if opts.color, err = readColorMode(colorFlag); err != nil {
		return opts, err
	}
	return opts, nil
}

// newTimer returns nil unless --timings is set; a nil Timer records nothing.
func (g globalOpts) newTimer() *observ.Timer {
	if !g.timings {
		return nil
	}
	return observ.NewTimer()
}

func (g globalOpts) printTimings(t *observ.Timer) {
	if t == nil {
		return
	}
	fmt.Fprint(os.Stderr, t.Summary())
}

// printDiagnostics writes the bag to stderr in the selected format.
func (g globalOpts) printDiagnostics(bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	switch g.diagFormat {
	case "json":
		return diagfmt.JSON(os.Stderr, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
		})
	case "short":
		diagfmt.Short(os.Stderr, bag, fs, diagfmt.PathModeRelative)
	default:
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:     g.color.enabled(os.Stderr),
			Context:   2,
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: true,
		})
	}
	return nil
}

func countWarnings(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevWarning {
			n++
		}
	}
	return n
}
