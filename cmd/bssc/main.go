// Package main implements the bssc CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"bssc/internal/log"
	"bssc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "bssc",
	Short: "BSS stylesheet compiler",
	Long: `bssc compiles BSS stylesheets (variables, nesting, mixins, @extend and
@media merging on top of CSS) into plain CSS.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupGlobals,
}

// main registers subcommands and persistent flags and runs the root command.
// Any error exits with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Render(isTerminal(os.Stdout))

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("verbose", false, "print debug logging")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to file")
	rootCmd.PersistentFlags().String("trace-out", "", "write a runtime trace to file")

	err := rootCmd.Execute()
	// профили закрываем и при ошибке команды
	if stopErr := profiling.Stop(); stopErr != nil {
		log.Error("profiling: %v", stopErr)
	}
	if err != nil {
		os.Exit(1)
	}
}
