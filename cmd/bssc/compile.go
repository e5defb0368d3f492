package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bssc/internal/driver"
	"bssc/internal/log"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] file.bss",
	Short: "Compile one stylesheet into CSS",
	Long: `Compile parses file.bss together with everything it imports and writes
the generated CSS next to it, into --out-dir, to the file given by -o, or to
stdout with -o -.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringP("output", "o", "", "output file (\"-\" for stdout)")
	compileCmd.Flags().String("out-dir", "", "directory for the generated CSS")
	compileCmd.Flags().Bool("compact", false, "emit compact CSS, one rule per line")
	compileCmd.Flags().StringSliceP("include", "I", nil, "extra import search roots (doublestar patterns allowed)")
	compileCmd.Flags().Bool("werror", false, "treat warnings as errors")
}

func runCompile(cmd *cobra.Command, args []string) error {
	globals, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return err
	}
	compact, err := cmd.Flags().GetBool("compact")
	if err != nil {
		return err
	}
	include, err := cmd.Flags().GetStringSlice("include")
	if err != nil {
		return err
	}
	werror, err := cmd.Flags().GetBool("werror")
	if err != nil {
		return err
	}
	if output != "" && outDir != "" {
		return fmt.Errorf("-o and --out-dir are mutually exclusive")
	}

	timer := globals.newTimer()
	defer globals.printTimings(timer)

	input := args[0]
	result, err := driver.Compile(input, driver.CompileOptions{
		MaxDiagnostics: globals.maxDiagnostics,
		Compact:        compact,
		Include:        include,
		Timer:          timer,
	})
	if result != nil {
		if perr := globals.printDiagnostics(result.Bag, result.FileSet); perr != nil {
			return perr
		}
	}
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}
	if werror && countWarnings(result.Bag) > 0 {
		return fmt.Errorf("%s: %d warnings treated as errors", input, countWarnings(result.Bag))
	}

	if output == "-" {
		_, err = os.Stdout.Write(result.CSS)
		return err
	}
	target := output
	if target == "" {
		target = driver.OutputPath(input, outDir)
	}
	stop := timer.Start("write")
	err = driver.WriteCSS(target, result.CSS)
	stop(filepath.Base(target))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	log.Info("wrote %s (%d bytes)", target, len(result.CSS))
	return nil
}
