package driven

import (
	"context"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

// Loader parses one file format into documents.
// Loaders may return more than one document per file (e.g. one per PDF page);
// the consolidation stage later merges documents sharing a source.
type Loader interface {
	// Extensions returns the file extensions this loader handles,
	// lowercase with the leading dot (e.g. ".csv").
	Extensions() []string

	// Load reads the file at path and returns documents.
	// Every returned document must carry non-empty source metadata.
	Load(ctx context.Context, path string) ([]domain.Document, error)
}

// LoaderRegistry resolves a loader for a file extension.
// Extensions without a registered loader are skipped by callers, not errors.
type LoaderRegistry interface {
	// Lookup returns the loader for ext, or (nil, false) when unmapped.
	Lookup(ext string) (Loader, bool)

	// Extensions returns all registered extensions, sorted.
	Extensions() []string
}
