// Package cli provides the docqa command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/docqa-labs/docqa-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Question answering over internal documents",
	Long: `docqa indexes a directory of internal documents (PDF, DOCX, CSV,
plain text) plus optional intranet pages, and answers natural-language
questions about them. When a roster file is present, questions about
departments return structured employee records.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "docqa.toml", "path to the config file")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
