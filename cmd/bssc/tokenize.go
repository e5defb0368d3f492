package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bssc/internal/diagfmt"
	"bssc/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.bss",
	Short: "Tokenize a stylesheet",
	Long:  `Tokenize breaks a stylesheet down into its tokens and prints them`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	globals, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result, err := driver.Tokenize(args[0], globals.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if err := globals.printDiagnostics(result.Bag, result.FileSet); err != nil {
		return err
	}
	return diagfmt.FormatTokens(os.Stdout, result.Tokens, diagfmt.Format(format))
}
