// Package split cuts documents into overlapping chunks sized for embedding.
package split

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
)

var _ driven.Processor = (*Processor)(nil)

// Defaults tuned for short office documents.
const (
	DefaultChunkSize = 500
	DefaultOverlap   = 50
	DefaultSeparator = "\n"
)

// DefaultNoSplitMarkers name the sources that must stay whole: cutting the
// roster or the rules file mid-record destroys their structure.
var DefaultNoSplitMarkers = []string{"roster.csv", "rules.txt"}

// Processor splits document content into chunks of at most chunkSize runes
// with overlap runes shared between neighbours, cutting at the separator
// when one falls inside the window.
type Processor struct {
	chunkSize      int
	overlap        int
	separator      string
	noSplitMarkers []string
}

// Option configures the processor.
type Option func(*Processor)

// WithChunkSize sets the maximum chunk length in runes.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the number of runes shared between adjacent chunks.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// WithSeparator sets the preferred cut point.
func WithSeparator(sep string) Option {
	return func(p *Processor) {
		p.separator = sep
	}
}

// WithNoSplitMarkers overrides the sources exempt from splitting.
func WithNoSplitMarkers(markers []string) Option {
	return func(p *Processor) {
		p.noSplitMarkers = markers
	}
}

// New creates a split processor.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize:      DefaultChunkSize,
		overlap:        DefaultOverlap,
		separator:      DefaultSeparator,
		noSplitMarkers: DefaultNoSplitMarkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 2
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "split"
}

// Process returns one document per chunk. Chunks inherit a copy of the
// parent metadata plus a chunk_index. Exempt sources pass through whole
// with chunk_index 0.
func (p *Processor) Process(ctx context.Context, docs []domain.Document) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []domain.Document
	for _, doc := range docs {
		var pieces []string
		if p.exempt(doc.Source()) {
			pieces = []string{doc.Content}
		} else {
			pieces = p.splitText(doc.Content)
		}

		for i, piece := range pieces {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			meta := doc.CloneMetadata()
			if meta == nil {
				meta = make(map[string]any)
			}
			meta["chunk_index"] = i
			out = append(out, domain.Document{
				ID:       uuid.NewString(),
				Content:  piece,
				Metadata: meta,
			})
		}
	}
	return out, nil
}

func (p *Processor) exempt(source string) bool {
	for _, marker := range p.noSplitMarkers {
		if strings.Contains(source, marker) {
			return true
		}
	}
	return false
}

// splitText cuts text into windows of at most chunkSize runes. When the
// separator occurs in the second half of a window the cut moves back to just
// after its last occurrence, so lines stay whole where possible.
func (p *Processor) splitText(text string) []string {
	runes := []rune(text)
	if len(runes) <= p.chunkSize {
		return []string{text}
	}

	sep := []rune(p.separator)
	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + p.chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		if len(sep) > 0 {
			if idx := lastIndex(runes[start:end], sep); idx > p.chunkSize/2 {
				end = start + idx + len(sep)
			}
		}
		chunks = append(chunks, string(runes[start:end]))

		next := end - p.overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}

// lastIndex returns the rune index of the last occurrence of sep in s,
// or -1.
func lastIndex(s, sep []rune) int {
	for i := len(s) - len(sep); i >= 0; i-- {
		match := true
		for j := range sep {
			if s[i+j] != sep[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
