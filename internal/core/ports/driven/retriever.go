package driven

import (
	"context"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

// Retriever returns the documents most relevant to a query, best first.
// Two implementations exist: a vector-similarity index and a keyword-scoring
// fallback. Callers must never branch on which one is active.
type Retriever interface {
	// Retrieve returns at most k documents ranked best-first.
	Retrieve(ctx context.Context, query string, k int) ([]domain.Document, error)
}
