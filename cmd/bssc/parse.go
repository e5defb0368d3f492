package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bssc/internal/diagfmt"
	"bssc/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.bss",
	Short: "Parse a stylesheet and print its syntax tree",
	Long: `Parse reads a single stylesheet without following its imports and prints
the syntax tree. The pretty format renders the tree back as BSS source.
Whatever could be parsed is printed even when the file has errors.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
}

func runParse(cmd *cobra.Command, args []string) error {
	globals, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	timer := globals.newTimer()
	defer globals.printTimings(timer)

	stop := timer.Start("parse")
	result, err := driver.Parse(args[0], globals.maxDiagnostics)
	stop("")
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := globals.printDiagnostics(result.Bag, result.FileSet); err != nil {
		return err
	}
	if err := diagfmt.FormatAST(os.Stdout, result.Sheet, diagfmt.Format(format)); err != nil {
		return err
	}
	return result.Err
}
