package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driving"
	"github.com/docqa-labs/docqa-cli/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// DefaultTopK is the number of documents retrieved per query.
const DefaultTopK = 10

// QueryService answers questions: retrieve context, generate an answer,
// extract structured records, update the conversation.
type QueryService struct {
	ingest    driving.IngestService
	generator driven.AnswerGenerator
	topK      int
}

// QueryOption configures the query service.
type QueryOption func(*QueryService)

// WithTopK overrides the retrieval depth.
func WithTopK(k int) QueryOption {
	return func(s *QueryService) {
		if k > 0 {
			s.topK = k
		}
	}
}

// NewQueryService creates the query service.
func NewQueryService(ingest driving.IngestService, generator driven.AnswerGenerator, opts ...QueryOption) *QueryService {
	s := &QueryService{
		ingest:    ingest,
		generator: generator,
		topK:      DefaultTopK,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ask answers one query within a conversation. The exchange is appended to
// conv only when the whole operation succeeds.
func (s *QueryService) Ask(ctx context.Context, conv *driving.Conversation, query string) (*driving.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty query: %w", domain.ErrInvalidInput)
	}
	if conv == nil {
		return nil, fmt.Errorf("nil conversation: %w", domain.ErrInvalidInput)
	}

	retriever, err := s.ingest.Retriever(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := retriever.Retrieve(ctx, query, s.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}
	logger.Debug("retrieved %d documents for query", len(docs))

	records := ExtractRecords(docs, query)
	if len(records) > 0 {
		logger.Debug("extracted %d employee records", len(records))
	}

	text, err := s.generator.Generate(ctx, query, conv.History, docs)
	if err != nil {
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}

	conv.History = append(conv.History,
		driven.Turn{Role: "user", Text: query},
		driven.Turn{Role: "assistant", Text: text},
	)

	return &driving.Answer{
		Text:    text,
		Context: docs,
		Records: records,
	}, nil
}
