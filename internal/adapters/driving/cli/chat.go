package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docqa-labs/docqa-cli/internal/core/ports/driving"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question answering session",
	Long: `Starts an interactive session. The conversation history is kept for
the duration of the session, so follow-up questions work. Type "exit" or
press Ctrl-D to quit.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	// Build the index up front so the first question is not slow.
	if _, err := a.ingest.Retriever(cmd.Context()); err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}
	cmd.Printf("Index ready (%s mode). Ask a question, or \"exit\" to quit.\n", a.ingest.Mode())

	conv := &driving.Conversation{}
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			return nil
		}

		answer, err := a.query.Ask(cmd.Context(), conv, query)
		if err != nil {
			// One failed question should not end the session.
			cmd.PrintErrf("error: %v\n", err)
			continue
		}

		cmd.Println(answer.Text)
		cmd.Println()
	}
}
