package driven

import (
	"context"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

// Source produces documents from one corpus location (a directory tree, a
// list of web pages). Sources are re-read in full on every ingest; there is
// no incremental sync.
type Source interface {
	// Type returns the source type identifier for logging.
	Type() string

	// Documents loads every document the source can provide. Implementations
	// skip and log individual failures; an error return means the source as a
	// whole is unreadable.
	Documents(ctx context.Context) ([]domain.Document, error)
}
