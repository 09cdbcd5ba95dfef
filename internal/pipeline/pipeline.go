// Package pipeline provides the document preparation stages that run
// between loading and indexing.
package pipeline

import (
	"context"
	"fmt"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driven.ProcessorPipeline = (*Pipeline)(nil)

// Pipeline chains multiple Processors and runs them in order.
type Pipeline struct {
	processors []driven.Processor
}

// NewPipeline creates a processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.Processor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs the documents through all processors in order.
func (p *Pipeline) Process(ctx context.Context, docs []domain.Document) ([]domain.Document, error) {
	for _, processor := range p.processors {
		var err error
		before := len(docs)
		docs, err = processor.Process(ctx, docs)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
		logger.Debug("processor %s: %d documents in, %d out", processor.Name(), before, len(docs))
	}
	return docs, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.Processor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}
