// Package consolidate merges documents that share a source into one
// sectioned document, so a multi-row or multi-page file retrieves as a
// single unit.
package consolidate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
)

var _ driven.Processor = (*Processor)(nil)

// Processor groups documents by source metadata, preserving the order in
// which sources first appear.
type Processor struct{}

// New creates a consolidate processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "consolidate"
}

// Process merges same-source documents. A source with a single document
// passes through unchanged. Groups of two or more become one document whose
// content is blank-line separated numbered sections and whose metadata is
// copied from the group's first member.
func (p *Processor) Process(ctx context.Context, docs []domain.Document) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sources []string
	groups := make(map[string][]domain.Document)
	for _, doc := range docs {
		src := doc.Source()
		if _, seen := groups[src]; !seen {
			sources = append(sources, src)
		}
		groups[src] = append(groups[src], doc)
	}

	out := make([]domain.Document, 0, len(sources))
	for _, src := range sources {
		group := groups[src]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}

		sections := make([]string, 0, len(group))
		for i, member := range group {
			sections = append(sections, fmt.Sprintf("=== Section %d ===\n%s", i+1, member.Content))
		}

		out = append(out, domain.Document{
			ID:       uuid.NewString(),
			Content:  strings.Join(sections, "\n\n"),
			Metadata: group[0].CloneMetadata(),
		})
	}
	return out, nil
}
