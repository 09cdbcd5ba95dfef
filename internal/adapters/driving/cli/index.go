package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docqa-labs/docqa-cli/internal/logger"
)

var indexWatch bool

// watchDebounce is how long a burst of file events is allowed to settle
// before re-indexing.
const watchDebounce = 2 * time.Second

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the document index",
	Long: `Loads the corpus, runs the preparation pipeline, and builds the
retrieval index. With --watch the command keeps running and re-indexes
whenever files under the data directory change.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "re-index on file changes")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := a.ingest.Retriever(ctx); err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}
	cmd.Printf("Index built (%s mode) over %s\n", a.ingest.Mode(), a.cfg.DataDir)

	if !indexWatch {
		return nil
	}

	changes, err := a.fs.Watch(ctx, watchDebounce)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", a.cfg.DataDir, err)
	}
	cmd.Println("Watching for changes. Ctrl-C to stop.")

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if err := a.ingest.Rebuild(ctx); err != nil {
				logger.Error("re-index failed: %v", err)
				continue
			}
			cmd.Printf("Re-indexed (%s mode)\n", a.ingest.Mode())
		}
	}
}
