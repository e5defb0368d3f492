package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bssc/internal/driver"
	"bssc/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [dir]",
	Short: "Build every stylesheet of a project",
	Long: `Build finds bss.toml in dir (default: the current directory) or one of its
parents, compiles every input matched by [build].inputs and writes the CSS
into [build].out_dir. Flags override the manifest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("out-dir", "", "override [build].out_dir")
	buildCmd.Flags().Bool("compact", false, "override [build].compact")
	buildCmd.Flags().Bool("werror", false, "treat warnings as errors")
}

func runBuild(cmd *cobra.Command, args []string) error {
	globals, err := readGlobals(cmd)
	if err != nil {
		return err
	}

	start := "."
	if len(args) == 1 {
		start = args[0]
	}
	manifest, found, err := loadProjectManifest(start)
	if err != nil {
		return err
	}
	if !found {
		return errors.New(noManifestMessage)
	}

	cfg := manifest.Config
	opts := driver.BuildOptions{
		Root:   manifest.Root,
		Inputs: cfg.Build.Inputs,
		OutDir: cfg.Build.OutDir,
		CompileOptions: driver.CompileOptions{
			MaxDiagnostics: cfg.Diagnostics.Max,
			Compact:        cfg.Build.Compact,
			Include:        manifest.includeRoots(),
			Timer:          globals.newTimer(),
		},
	}
	werror := cfg.Diagnostics.Werror
	if cmd.Flags().Changed("out-dir") {
		if opts.OutDir, err = cmd.Flags().GetString("out-dir"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("compact") {
		if opts.Compact, err = cmd.Flags().GetBool("compact"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("werror") {
		if werror, err = cmd.Flags().GetBool("werror"); err != nil {
			return err
		}
	}
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		opts.MaxDiagnostics = globals.maxDiagnostics
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	results, err := driver.Build(ctx, opts)
	defer globals.printTimings(opts.Timer)
	for _, r := range results {
		if r.Result != nil {
			if perr := globals.printDiagnostics(r.Result.Bag, r.Result.FileSet); perr != nil {
				return perr
			}
		}
	}
	if !globals.quiet && len(results) > 0 {
		fmt.Fprint(os.Stdout, ui.Summary(results, ui.SummaryOpts{
			Title:  "bssc build " + manifest.Root,
			Color:  globals.color.enabled(os.Stdout),
			Width:  terminalWidth(),
			Werror: werror,
		}))
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if ui.Status(r, werror) == ui.StatusError {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d stylesheets failed", failed, len(results))
	}
	return nil
}

func terminalWidth() int {
	if !isTerminal(os.Stdout) {
		return 0
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}
