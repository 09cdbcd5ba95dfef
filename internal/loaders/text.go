package loaders

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/google/uuid"
)

var _ driven.Loader = (*TextLoader)(nil)

// TextLoader reads plain text files into a single document.
type TextLoader struct{}

func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

func (l *TextLoader) Extensions() []string {
	return []string{".txt", ".md"}
}

func (l *TextLoader) Load(ctx context.Context, path string) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil, nil
	}

	doc := domain.Document{
		ID:      uuid.NewString(),
		Content: content,
		Metadata: map[string]any{
			domain.MetadataSourceKey: path,
			"file_type":              "text",
		},
	}
	return []domain.Document{doc}, nil
}
