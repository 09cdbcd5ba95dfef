// Package vector provides an in-memory vector similarity index.
// The corpus is small enough that brute-force cosine scoring beats the
// operational cost of an external vector store.
package vector

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/logger"
)

// Ensure Retriever implements the interface.
var _ driven.Retriever = (*Retriever)(nil)

// entry pairs an indexed chunk with its embedding.
type entry struct {
	doc domain.Document
	vec []float32
}

// Retriever ranks chunks by cosine similarity to the query embedding.
// The index is immutable after Build; re-ingestion builds a new one.
type Retriever struct {
	embedder driven.EmbeddingService
	entries  []entry
}

// Build embeds every chunk and constructs the index. Chunk metadata is
// flattened to scalars; the input documents are not modified.
func Build(ctx context.Context, chunks []domain.Document, embedder driven.EmbeddingService) (*Retriever, error) {
	if embedder == nil {
		return nil, fmt.Errorf("vector: embedder is required: %w", domain.ErrInvalidInput)
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	vecs, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("vector: failed to embed corpus: %w", err)
	}
	if len(vecs) != len(chunks) {
		return nil, fmt.Errorf("vector: got %d embeddings for %d chunks", len(vecs), len(chunks))
	}

	entries := make([]entry, len(chunks))
	for i, chunk := range chunks {
		indexed := domain.Document{
			ID:       chunk.ID,
			Content:  chunk.Content,
			Metadata: chunk.CloneMetadata(),
		}
		domain.CoerceMetadata(&indexed)
		entries[i] = entry{doc: indexed, vec: vecs[i]}
	}

	logger.Debug("vector index built: %d chunks, %d dimensions", len(entries), embedder.Dimensions())
	return &Retriever{embedder: embedder, entries: entries}, nil
}

// Retrieve returns the k chunks most similar to the query. Ties keep
// insertion order.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]domain.Document, error) {
	if k <= 0 || len(r.entries) == 0 {
		return nil, nil
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vector: failed to embed query: %w", err)
	}

	type scored struct {
		doc   domain.Document
		score float64
	}
	results := make([]scored, len(r.entries))
	for i, e := range r.entries {
		results[i] = scored{doc: e.doc, score: cosineSimilarity(queryVec, e.vec)}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if k > len(results) {
		k = len(results)
	}
	docs := make([]domain.Document, k)
	for i := range docs {
		docs[i] = results[i].doc
	}
	return docs, nil
}

// Len returns the number of indexed chunks.
func (r *Retriever) Len() int {
	return len(r.entries)
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths and zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
