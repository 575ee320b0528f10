package pagesentry

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON          bool
	flagSARIF         bool
	flagNoColor       bool
	flagMinConfidence float64
	flagFailOn        string
	flagLogLevel      string

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the PageSentry CLI.
var rootCmd = &cobra.Command{
	Use:           "pagesentry",
	Version:       version,
	Short:         "Find secrets and phishing indicators in page content",
	Long:          "PageSentry scans text content for credential leaks, high-entropy tokens and phishing indicators, and reports scored findings with low noise.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the PageSentry CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().Float64Var(&flagMinConfidence, "min-confidence", 0.0, "only show findings with confidence >= value (0-1)")
	rootCmd.PersistentFlags().StringVar(&flagFailOn, "fail-on", "medium", "exit nonzero on findings at low|medium|high|critical")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log verbosity: trace|debug|info|warn|error")
}
