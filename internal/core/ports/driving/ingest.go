package driving

import (
	"context"

	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
)

// IngestService builds and owns the process-wide retriever.
type IngestService interface {
	// Retriever returns the active retriever, building it on first use.
	// Initialisation runs at most once per process; concurrent callers share
	// the same instance. A failed initialisation is NOT cached: the next
	// call re-attempts the full build, so transient outages (an embedding
	// API that was briefly down) heal on the next session.
	Retriever(ctx context.Context) (driven.Retriever, error)

	// Rebuild discards the current retriever and builds a fresh one.
	// Used by watch mode after the corpus changes on disk.
	Rebuild(ctx context.Context) error
}
