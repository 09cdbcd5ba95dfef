package normalize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

func TestProcessorNFC(t *testing.T) {
	// "é" as 'e' + combining acute accent composes to a single rune.
	decomposed := "café"
	docs := []domain.Document{{ID: "1", Content: decomposed}}

	out, err := New(WithLegacyCharset(false)).Process(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "café", out[0].Content)
}

func TestProcessorLegacyCharset(t *testing.T) {
	p := New(WithLegacyCharset(true))

	docs := []domain.Document{{
		ID:      "1",
		Content: "meeting rules \U0001F600 第3会議室",
		Metadata: map[string]any{
			"source": "rules\U0001F600.txt",
			"pages":  3,
		},
	}}

	out, err := p.Process(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "meeting rules  第3会議室", out[0].Content, "emoji dropped, Japanese kept")
	assert.Equal(t, "rules.txt", out[0].Metadata["source"])
	assert.Equal(t, 3, out[0].Metadata["pages"], "non-string metadata untouched")
}

func TestProcessorIdempotent(t *testing.T) {
	p := New(WithLegacyCharset(true))
	docs := []domain.Document{{ID: "1", Content: "café \U0001F680 東京"}}

	once, err := p.Process(context.Background(), docs)
	require.NoError(t, err)
	twice, err := p.Process(context.Background(), once)
	require.NoError(t, err)

	assert.Equal(t, once[0].Content, twice[0].Content)
}

func TestProcessorDoesNotMutateInput(t *testing.T) {
	docs := []domain.Document{{
		ID:       "1",
		Content:  "text",
		Metadata: map[string]any{"source": "a.txt"},
	}}

	out, err := New(WithLegacyCharset(false)).Process(context.Background(), docs)
	require.NoError(t, err)

	out[0].Metadata["source"] = "changed"
	assert.Equal(t, "a.txt", docs[0].Metadata["source"])
}
