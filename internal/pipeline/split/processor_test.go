package split

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

func doc(source, content string) domain.Document {
	return domain.Document{
		ID:       "parent",
		Content:  content,
		Metadata: map[string]any{domain.MetadataSourceKey: source, "file_type": "text"},
	}
}

func TestProcessorSplitsLongDocument(t *testing.T) {
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = strings.Repeat("x", 20)
	}
	content := strings.Join(lines, "\n")

	p := New(WithChunkSize(100), WithOverlap(10))
	out, err := p.Process(context.Background(), []domain.Document{doc("long.txt", content)})
	require.NoError(t, err)
	require.Greater(t, len(out), 1)

	for i, chunk := range out {
		assert.LessOrEqual(t, len([]rune(chunk.Content)), 100, "chunk %d too large", i)
		assert.Equal(t, "long.txt", chunk.Source(), "chunks inherit metadata")
		assert.Equal(t, "text", chunk.Metadata["file_type"])
		assert.Equal(t, i, chunk.Metadata["chunk_index"])
		assert.NotEqual(t, "parent", chunk.ID, "chunks get fresh IDs")
	}
}

func TestProcessorPrefersSeparator(t *testing.T) {
	content := strings.Repeat("a", 80) + "\n" + strings.Repeat("b", 80)

	p := New(WithChunkSize(100), WithOverlap(0))
	out, err := p.Process(context.Background(), []domain.Document{doc("x.txt", content)})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, strings.Repeat("a", 80), out[0].Content)
	assert.Equal(t, strings.Repeat("b", 80), out[1].Content)
}

func TestProcessorShortDocumentUnsplit(t *testing.T) {
	out, err := New().Process(context.Background(), []domain.Document{doc("short.txt", "brief note")})
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "brief note", out[0].Content)
	assert.Equal(t, 0, out[0].Metadata["chunk_index"])
}

func TestProcessorNoSplitExemption(t *testing.T) {
	content := strings.Repeat("employee details\n", 200)

	out, err := New(WithChunkSize(100)).Process(context.Background(), []domain.Document{
		doc("data/roster.csv", content),
		doc("data/rules.txt", content),
	})
	require.NoError(t, err)
	require.Len(t, out, 2, "exempt sources stay whole")

	assert.Equal(t, strings.TrimSpace(content), out[0].Content)
	assert.Equal(t, 0, out[0].Metadata["chunk_index"])
}

func TestProcessorOverlap(t *testing.T) {
	// No separator in the text, so cuts land on exact window boundaries.
	content := strings.Repeat("abcdefghij", 30)

	p := New(WithChunkSize(100), WithOverlap(20), WithSeparator(""))
	out, err := p.Process(context.Background(), []domain.Document{doc("x.txt", content)})
	require.NoError(t, err)
	require.Greater(t, len(out), 1)

	first := []rune(out[0].Content)
	second := []rune(out[1].Content)
	assert.Equal(t, string(first[len(first)-20:]), string(second[:20]))
}

func TestProcessorDropsEmptyChunks(t *testing.T) {
	out, err := New().Process(context.Background(), []domain.Document{doc("x.txt", "   \n  ")})
	require.NoError(t, err)
	assert.Empty(t, out)
}
