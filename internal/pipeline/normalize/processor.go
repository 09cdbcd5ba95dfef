// Package normalize canonicalises document text before consolidation.
//
// All content goes through Unicode NFC so visually identical strings compare
// equal downstream. On hosts that still exchange files with legacy Japanese
// systems (Windows by default) the text is additionally projected onto the
// cp932 character repertoire: runes that cannot survive a Shift-JIS round
// trip are dropped. The projection is idempotent, so re-running the stage
// never changes already-normalised text.
package normalize

import (
	"context"
	"runtime"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/unicode/norm"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
)

var _ driven.Processor = (*Processor)(nil)

// Processor normalises document content and string metadata values.
type Processor struct {
	legacyCharset bool
}

// Option configures the processor.
type Option func(*Processor)

// WithLegacyCharset forces the cp932 projection on or off regardless of the
// host platform.
func WithLegacyCharset(enabled bool) Option {
	return func(p *Processor) {
		p.legacyCharset = enabled
	}
}

// New creates a normalize processor. The cp932 projection defaults to on
// for Windows hosts.
func New(opts ...Option) *Processor {
	p := &Processor{
		legacyCharset: runtime.GOOS == "windows",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "normalize"
}

// Process returns a new document slice with normalised content and metadata.
func (p *Processor) Process(ctx context.Context, docs []domain.Document) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		normalised := domain.Document{
			ID:       doc.ID,
			Content:  p.normaliseString(doc.Content),
			Metadata: doc.CloneMetadata(),
		}
		for k, v := range normalised.Metadata {
			if s, ok := v.(string); ok {
				normalised.Metadata[k] = p.normaliseString(s)
			}
		}
		out = append(out, normalised)
	}
	return out, nil
}

func (p *Processor) normaliseString(s string) string {
	s = norm.NFC.String(s)
	if p.legacyCharset {
		s = projectToCP932(s)
	}
	return s
}

// projectToCP932 keeps only the runes that survive a Shift-JIS encode.
// Unmappable runes are dropped silently rather than replaced, so the
// projection is stable under repetition.
func projectToCP932(s string) string {
	encoder := japanese.ShiftJIS.NewEncoder()

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if _, err := encoder.String(string(r)); err == nil {
			b.WriteRune(r)
		}
	}
	return b.String()
}
