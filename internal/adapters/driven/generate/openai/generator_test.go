package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	var captured chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Write([]byte(`{"choices":[{"message":{"content":" Rooms are booked via the portal. "}}]}`))
	}))
	defer srv.Close()

	g, err := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	history := []driven.Turn{
		{Role: "user", Text: "earlier question"},
		{Role: "assistant", Text: "earlier answer"},
	}
	docs := []domain.Document{{
		Content:  "Rooms must be booked via the portal.",
		Metadata: map[string]any{domain.MetadataSourceKey: "rules.txt"},
	}}

	answer, err := g.Generate(context.Background(), "how do I book a room?", history, docs)
	require.NoError(t, err)
	assert.Equal(t, "Rooms are booked via the portal.", answer, "whitespace trimmed")

	require.Len(t, captured.Messages, 4)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "rules.txt")
	assert.Contains(t, captured.Messages[0].Content, "Rooms must be booked")
	assert.Equal(t, "earlier question", captured.Messages[1].Content)
	assert.Equal(t, "user", captured.Messages[3].Role)
	assert.Equal(t, "how do I book a room?", captured.Messages[3].Content)
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g, err := New(Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "q", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	g, err := New(Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "q", nil, nil)
	assert.Error(t, err)
}

func TestRenderContextEmpty(t *testing.T) {
	assert.Contains(t, renderContext(nil), "no relevant documents")
}
