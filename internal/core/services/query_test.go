package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driving"
)

// fixedIngest hands out a pre-built retriever.
type fixedIngest struct {
	retriever driven.Retriever
	err       error
}

func (f *fixedIngest) Retriever(context.Context) (driven.Retriever, error) {
	return f.retriever, f.err
}

func (f *fixedIngest) Rebuild(context.Context) error { return nil }

// fixedRetriever returns a fixed document list and records the last query.
type fixedRetriever struct {
	docs      []domain.Document
	err       error
	lastQuery string
	lastK     int
}

func (f *fixedRetriever) Retrieve(_ context.Context, query string, k int) ([]domain.Document, error) {
	f.lastQuery = query
	f.lastK = k
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

// mockGenerator echoes a canned answer and records its inputs.
type mockGenerator struct {
	answer      string
	err         error
	lastHistory []driven.Turn
	lastDocs    []domain.Document
}

func (m *mockGenerator) Generate(_ context.Context, _ string, history []driven.Turn, docs []domain.Document) (string, error) {
	m.lastHistory = history
	m.lastDocs = docs
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func contextDocs() []domain.Document {
	return []domain.Document{{
		ID:       "1",
		Content:  "Rooms must be booked via the portal.",
		Metadata: map[string]any{domain.MetadataSourceKey: "rules.txt"},
	}}
}

func TestAsk(t *testing.T) {
	retriever := &fixedRetriever{docs: contextDocs()}
	generator := &mockGenerator{answer: "Book rooms via the portal."}
	svc := NewQueryService(&fixedIngest{retriever: retriever}, generator)

	conv := &driving.Conversation{}
	answer, err := svc.Ask(context.Background(), conv, "how do I book a room?")
	require.NoError(t, err)

	assert.Equal(t, "Book rooms via the portal.", answer.Text)
	assert.Equal(t, contextDocs(), answer.Context)
	assert.Equal(t, "how do I book a room?", retriever.lastQuery)
	assert.Equal(t, DefaultTopK, retriever.lastK)

	require.Len(t, conv.History, 2)
	assert.Equal(t, driven.Turn{Role: "user", Text: "how do I book a room?"}, conv.History[0])
	assert.Equal(t, driven.Turn{Role: "assistant", Text: "Book rooms via the portal."}, conv.History[1])
}

func TestAskPassesHistoryToGenerator(t *testing.T) {
	generator := &mockGenerator{answer: "second answer"}
	svc := NewQueryService(&fixedIngest{retriever: &fixedRetriever{}}, generator)

	conv := &driving.Conversation{History: []driven.Turn{
		{Role: "user", Text: "first question"},
		{Role: "assistant", Text: "first answer"},
	}}

	_, err := svc.Ask(context.Background(), conv, "follow-up")
	require.NoError(t, err)

	require.Len(t, generator.lastHistory, 2, "generator sees history before the new turn")
	assert.Equal(t, "first question", generator.lastHistory[0].Text)
	assert.Len(t, conv.History, 4)
}

func TestAskExtractsEmployeeRecords(t *testing.T) {
	roster := rosterDoc(rosterText)
	svc := NewQueryService(
		&fixedIngest{retriever: &fixedRetriever{docs: []domain.Document{roster}}},
		&mockGenerator{answer: "There are 2 sales employees."},
	)

	answer, err := svc.Ask(context.Background(), &driving.Conversation{}, "who is in sales?")
	require.NoError(t, err)

	require.Len(t, answer.Records, 2)
	assert.Equal(t, "Alice Morgan", answer.Records[0].Name)
}

func TestAskGeneratorFailureLeavesConversationClean(t *testing.T) {
	svc := NewQueryService(
		&fixedIngest{retriever: &fixedRetriever{docs: contextDocs()}},
		&mockGenerator{err: errors.New("quota exceeded")},
	)

	conv := &driving.Conversation{}
	_, err := svc.Ask(context.Background(), conv, "anything")
	require.Error(t, err)
	assert.Empty(t, conv.History)
}

func TestAskRetrievalFailure(t *testing.T) {
	svc := NewQueryService(
		&fixedIngest{retriever: &fixedRetriever{err: errors.New("index gone")}},
		&mockGenerator{answer: "unused"},
	)

	_, err := svc.Ask(context.Background(), &driving.Conversation{}, "anything")
	assert.Error(t, err)
}

func TestAskIngestFailure(t *testing.T) {
	svc := NewQueryService(
		&fixedIngest{err: errors.New("no documents")},
		&mockGenerator{answer: "unused"},
	)

	_, err := svc.Ask(context.Background(), &driving.Conversation{}, "anything")
	assert.Error(t, err)
}

func TestAskEmptyQuery(t *testing.T) {
	svc := NewQueryService(&fixedIngest{retriever: &fixedRetriever{}}, &mockGenerator{})

	_, err := svc.Ask(context.Background(), &driving.Conversation{}, "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAskNilConversation(t *testing.T) {
	svc := NewQueryService(&fixedIngest{retriever: &fixedRetriever{}}, &mockGenerator{})

	_, err := svc.Ask(context.Background(), nil, "query")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAskCustomTopK(t *testing.T) {
	retriever := &fixedRetriever{}
	svc := NewQueryService(&fixedIngest{retriever: retriever}, &mockGenerator{answer: "ok"}, WithTopK(3))

	_, err := svc.Ask(context.Background(), &driving.Conversation{}, "query")
	require.NoError(t, err)
	assert.Equal(t, 3, retriever.lastK)
}
