package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/logger"
)

// Connector walks a local directory tree and loads every file whose
// extension has a registered loader. Unsupported extensions are skipped
// silently; a file that fails to load is logged and skipped so one broken
// document never aborts ingestion.
type Connector struct {
	rootPath string
	registry driven.LoaderRegistry
}

// New creates a filesystem connector rooted at rootPath.
func New(rootPath string, registry driven.LoaderRegistry) *Connector {
	return &Connector{
		rootPath: rootPath,
		registry: registry,
	}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "filesystem"
}

// Documents walks the root depth-first and returns every loadable document.
// Every returned document carries non-empty source metadata.
func (c *Connector) Documents(ctx context.Context) ([]domain.Document, error) {
	info, err := os.Stat(c.rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access data root %s: %w", c.rootPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data root %s is not a directory", c.rootPath)
	}

	var docs []domain.Document
	err = filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != c.rootPath {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		loader, ok := c.registry.Lookup(filepath.Ext(path))
		if !ok {
			return nil
		}

		loaded, err := loader.Load(ctx, path)
		if err != nil {
			logger.Error("failed to load %s: %v", path, err)
			return nil
		}

		for _, doc := range loaded {
			if doc.Source() == "" {
				doc.SetSource(path)
			}
			docs = append(docs, doc)
		}
		logger.Debug("loaded %s (%d documents)", path, len(loaded))
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("filesystem connector loaded %d documents from %s", len(docs), c.rootPath)
	return docs, nil
}
