package domain

import (
	"fmt"
	"strings"
)

// MetadataSourceKey is the metadata key carrying a document's provenance.
// Its value is the file path or URL the document was loaded from, and it is
// the join key for consolidation, prioritisation and deduplication.
const MetadataSourceKey = "source"

// Document is the unit of retrievable text.
// Chunks produced by splitting are themselves Documents: they inherit a copy
// of the parent metadata plus a "chunk_index" entry.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Content is the full text content.
	Content string

	// Metadata contains provenance and loader-specific key-value pairs.
	// Metadata[MetadataSourceKey] must be non-empty for every document that
	// enters the processing pipeline.
	Metadata map[string]any
}

// Source returns the provenance key, or "" if unset.
func (d Document) Source() string {
	if d.Metadata == nil {
		return ""
	}
	if s, ok := d.Metadata[MetadataSourceKey].(string); ok {
		return s
	}
	return ""
}

// SetSource stores the provenance key, allocating metadata if needed.
func (d *Document) SetSource(source string) {
	if d.Metadata == nil {
		d.Metadata = make(map[string]any)
	}
	d.Metadata[MetadataSourceKey] = source
}

// CloneMetadata returns a shallow copy of the document's metadata.
// Pipeline stages must never share metadata maps between input and output
// documents.
func (d Document) CloneMetadata() map[string]any {
	if d.Metadata == nil {
		return make(map[string]any)
	}
	dst := make(map[string]any, len(d.Metadata))
	for k, v := range d.Metadata {
		dst[k] = v
	}
	return dst
}

// CoerceMetadata flattens metadata values to scalars in place.
// Slices are joined with ", "; values that are not string, int, float or bool
// are rendered with fmt.Sprint. The vector index cannot persist arbitrary
// structures, so this runs once before indexing.
func CoerceMetadata(doc *Document) {
	for key, value := range doc.Metadata {
		switch v := value.(type) {
		case string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64:
			_ = v
		case []string:
			doc.Metadata[key] = strings.Join(v, ", ")
		case []any:
			parts := make([]string, len(v))
			for i, item := range v {
				parts[i] = fmt.Sprint(item)
			}
			doc.Metadata[key] = strings.Join(parts, ", ")
		default:
			doc.Metadata[key] = fmt.Sprint(value)
		}
	}
}
