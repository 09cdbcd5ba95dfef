package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docqa-labs/docqa-cli/internal/loaders"
)

func TestConnectorDocuments(t *testing.T) {
	t.Run("loads supported files and skips the rest", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "about.txt"), []byte("about the company"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(root, "photo.jpg"), []byte{0xFF, 0xD8}, 0o644))
		require.NoError(t, os.MkdirAll(filepath.Join(root, "policies"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "policies", "rules.txt"), []byte("meeting rules"), 0o644))

		docs, err := New(root, loaders.NewRegistry()).Documents(context.Background())
		require.NoError(t, err)
		require.Len(t, docs, 2)

		for _, doc := range docs {
			assert.NotEmpty(t, doc.Source(), "every document must carry a source")
		}
	})

	t.Run("broken file is skipped, not fatal", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "ok.txt"), []byte("fine"), 0o644))
		// Not a ZIP archive, so the DOCX loader fails on it.
		require.NoError(t, os.WriteFile(filepath.Join(root, "broken.docx"), []byte("not a zip"), 0o644))

		docs, err := New(root, loaders.NewRegistry()).Documents(context.Background())
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "fine", docs[0].Content)
	})

	t.Run("hidden directories are skipped", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "notes.txt"), []byte("internal"), 0o644))

		docs, err := New(root, loaders.NewRegistry()).Documents(context.Background())
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("missing root fails", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "absent"), loaders.NewRegistry()).Documents(context.Background())
		assert.Error(t, err)
	})
}

func TestConnectorWatch(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := New(root, loaders.NewRegistry()).Watch(ctx, 50*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "new.txt"), []byte("hello"), 0o644))

	select {
	case _, ok := <-changes:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change notification")
	}

	cancel()
	select {
	case _, ok := <-changes:
		assert.False(t, ok, "channel should close on cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("expected channel to close")
	}
}

func TestConnectorType(t *testing.T) {
	assert.Equal(t, "filesystem", New("/tmp", loaders.NewRegistry()).Type())
}
