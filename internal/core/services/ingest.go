package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driving"
	"github.com/docqa-labs/docqa-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// ProviderResolver resolves the embedding backend for one ingest run.
type ProviderResolver interface {
	// Resolve returns the first usable embedding service, or (nil, tier
	// errors) when none is available.
	Resolve(ctx context.Context) (driven.EmbeddingService, error)
}

// VectorBuilder constructs a vector retriever over embedded chunks.
type VectorBuilder func(ctx context.Context, chunks []domain.Document, embedder driven.EmbeddingService) (driven.Retriever, error)

// KeywordBuilder constructs the keyword fallback retriever over the unsplit
// corpus.
type KeywordBuilder func(docs []domain.Document) driven.Retriever

// IngestService loads the corpus, runs the preparation pipeline, and builds
// the retriever. The retriever is built once and shared; a failed build is
// never cached, so the next call retries from scratch.
type IngestService struct {
	sources  []driven.Source
	pipeline driven.ProcessorPipeline
	splitter driven.Processor
	resolver ProviderResolver

	buildVector  VectorBuilder
	buildKeyword KeywordBuilder

	mu        sync.Mutex
	retriever driven.Retriever
	mode      string
}

// NewIngestService creates the ingest service.
// splitter runs only on the vector path; the keyword fallback scores whole
// documents.
func NewIngestService(
	sources []driven.Source,
	pipeline driven.ProcessorPipeline,
	splitter driven.Processor,
	resolver ProviderResolver,
	buildVector VectorBuilder,
	buildKeyword KeywordBuilder,
) *IngestService {
	return &IngestService{
		sources:      sources,
		pipeline:     pipeline,
		splitter:     splitter,
		resolver:     resolver,
		buildVector:  buildVector,
		buildKeyword: buildKeyword,
	}
}

// Retriever returns the active retriever, building it on first use.
func (s *IngestService) Retriever(ctx context.Context) (driven.Retriever, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.retriever != nil {
		return s.retriever, nil
	}
	return s.build(ctx)
}

// Rebuild discards the current retriever and builds a fresh one.
func (s *IngestService) Rebuild(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.retriever = nil
	s.mode = ""
	_, err := s.build(ctx)
	return err
}

// Mode reports which retrieval mode is active: "vector", "keyword", or ""
// before initialisation.
func (s *IngestService) Mode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// build runs the full ingest. Caller holds s.mu.
func (s *IngestService) build(ctx context.Context) (driven.Retriever, error) {
	logger.Section("Ingest")

	docs, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}

	processed, err := s.pipeline.Process(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("pipeline failed: %w", err)
	}
	logger.Debug("pipeline produced %d documents", len(processed))

	retriever, mode, vectorErr := s.buildVectorPath(ctx, processed)
	if retriever == nil {
		retriever, mode, err = s.buildKeywordPath(processed, vectorErr)
		if err != nil {
			return nil, err
		}
	}

	s.retriever = retriever
	s.mode = mode
	logger.Info("retrieval mode: %s", mode)
	return retriever, nil
}

// collect loads documents from every source. A source that fails wholesale
// is logged and skipped; ingestion fails only when nothing could be read at
// all.
func (s *IngestService) collect(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	var lastErr error
	for _, source := range s.sources {
		loaded, err := source.Documents(ctx)
		if err != nil {
			logger.Error("source %s failed: %v", source.Type(), err)
			lastErr = err
			continue
		}
		docs = append(docs, loaded...)
	}

	if len(docs) == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("no documents loaded: %w", lastErr)
		}
		return nil, fmt.Errorf("no documents loaded: %w", domain.ErrNotFound)
	}
	return docs, nil
}

// buildVectorPath resolves an embedding provider and builds the vector
// retriever. Returns (nil, "", cause) when the path is unavailable.
func (s *IngestService) buildVectorPath(ctx context.Context, processed []domain.Document) (driven.Retriever, string, error) {
	embedder, resolveErr := s.resolver.Resolve(ctx)
	if embedder == nil {
		if resolveErr != nil {
			return nil, "", fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, resolveErr)
		}
		return nil, "", domain.ErrEmbeddingUnavailable
	}

	chunks, err := s.splitter.Process(ctx, processed)
	if err != nil {
		return nil, "", fmt.Errorf("split failed: %w", err)
	}
	logger.Debug("split %d documents into %d chunks", len(processed), len(chunks))

	retriever, err := s.buildVector(ctx, chunks, embedder)
	if err != nil {
		return nil, "", fmt.Errorf("vector index build failed: %w", err)
	}
	return retriever, "vector", nil
}

// buildKeywordPath builds the keyword fallback. vectorCause records why the
// vector path was skipped; it is folded into the error when the fallback
// fails too.
func (s *IngestService) buildKeywordPath(processed []domain.Document, vectorCause error) (driven.Retriever, string, error) {
	if vectorCause != nil {
		logger.Warn("falling back to keyword retrieval: %v", vectorCause)
	}

	retriever := s.buildKeyword(processed)
	if retriever == nil {
		return nil, "", &domain.InitError{
			Cause:         vectorCause,
			FallbackCause: domain.ErrRetrieverUnavailable,
		}
	}
	return retriever, "keyword", nil
}
