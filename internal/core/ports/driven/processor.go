package driven

import (
	"context"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

// Processor is one stage of the document preparation pipeline
// (normalise, consolidate, prioritise, split).
// Each stage returns a fresh slice; it must not mutate its input documents.
type Processor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process transforms the document set and returns the new set.
	Process(ctx context.Context, docs []domain.Document) ([]domain.Document, error)
}

// ProcessorPipeline chains multiple Processors.
type ProcessorPipeline interface {
	// Process runs the documents through all processors in order.
	Process(ctx context.Context, docs []domain.Document) ([]domain.Document, error)
}
