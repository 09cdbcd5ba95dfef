// Package prioritize reorders documents so the high-value sources sit at
// the front of the corpus, where retrieval truncation cannot drop them.
package prioritize

import (
	"context"
	"strings"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
)

var _ driven.Processor = (*Processor)(nil)

// DefaultMarkers are the priority source substrings, most important first.
var DefaultMarkers = []string{"roster.csv", "rules.txt", "about-service", "about-company"}

// Processor moves documents whose source matches a priority marker to the
// front, in marker order.
type Processor struct {
	markers []string
}

// Option configures the processor.
type Option func(*Processor)

// WithMarkers overrides the priority marker list.
func WithMarkers(markers []string) Option {
	return func(p *Processor) {
		p.markers = markers
	}
}

// New creates a prioritize processor.
func New(opts ...Option) *Processor {
	p := &Processor{
		markers: DefaultMarkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "prioritize"
}

// Process returns the documents reordered: for each marker in order, the
// first not-yet-taken document whose source contains the marker; then the
// remainder in their original order. No document appears twice.
func (p *Processor) Process(ctx context.Context, docs []domain.Document) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	taken := make([]bool, len(docs))
	out := make([]domain.Document, 0, len(docs))

	for _, marker := range p.markers {
		for i, doc := range docs {
			if taken[i] {
				continue
			}
			if strings.Contains(doc.Source(), marker) {
				out = append(out, doc)
				taken[i] = true
				break
			}
		}
	}

	for i, doc := range docs {
		if !taken[i] {
			out = append(out, doc)
		}
	}
	return out, nil
}
