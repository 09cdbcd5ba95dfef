package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: this is separate from the vector retriever, which stores and searches
// vectors. EmbeddingService generates them.
//
// Implementations include a local Ollama model (CPU inference) and the
// OpenAI embeddings API. When no implementation can be resolved, retrieval
// falls back to keyword scoring and no embeddings are generated at all.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	// Used while resolving the provider chain, before committing to the
	// vector retriever.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
