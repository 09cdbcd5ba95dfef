package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docqa-labs/docqa-cli/internal/core/ports/driving"
)

var askShowSources bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question about the document corpus",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowSources, "sources", false, "list the sources used for the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	conv := &driving.Conversation{}
	answer, err := a.query.Ask(cmd.Context(), conv, args[0])
	if err != nil {
		return fmt.Errorf("failed to answer: %w", err)
	}

	cmd.Println(answer.Text)

	if askShowSources && len(answer.Context) > 0 {
		cmd.Println("\nSources:")
		for _, doc := range answer.Context {
			cmd.Printf("  - %s\n", doc.Source())
		}
	}
	return nil
}
