package cli

import (
	"context"
	"fmt"

	"github.com/docqa-labs/docqa-cli/internal/adapters/driven/embedding"
	"github.com/docqa-labs/docqa-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/docqa-labs/docqa-cli/internal/adapters/driven/embedding/openai"
	"github.com/docqa-labs/docqa-cli/internal/adapters/driven/generate/extractive"
	openaigen "github.com/docqa-labs/docqa-cli/internal/adapters/driven/generate/openai"
	"github.com/docqa-labs/docqa-cli/internal/config"
	"github.com/docqa-labs/docqa-cli/internal/connectors/filesystem"
	"github.com/docqa-labs/docqa-cli/internal/connectors/web"
	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/core/services"
	"github.com/docqa-labs/docqa-cli/internal/loaders"
	"github.com/docqa-labs/docqa-cli/internal/logger"
	"github.com/docqa-labs/docqa-cli/internal/pipeline"
	"github.com/docqa-labs/docqa-cli/internal/retrieval/keyword"
	"github.com/docqa-labs/docqa-cli/internal/retrieval/vector"
)

// app wires the adapters to the core services for one CLI invocation.
type app struct {
	cfg    config.Config
	ingest *services.IngestService
	query  *services.QueryService
	fs     *filesystem.Connector
}

// newApp loads configuration and assembles the service graph.
func newApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	registry := loaders.NewRegistry()
	fs := filesystem.New(cfg.DataDir, registry)
	sources := []driven.Source{fs}
	if len(cfg.URLs) > 0 {
		sources = append(sources, web.New(cfg.URLs))
	}

	stages, splitter, err := buildPipeline(cfg)
	if err != nil {
		return nil, err
	}

	ingest := services.NewIngestService(
		sources,
		stages,
		splitter,
		buildResolver(cfg),
		func(ctx context.Context, chunks []domain.Document, embedder driven.EmbeddingService) (driven.Retriever, error) {
			return vector.Build(ctx, chunks, embedder)
		},
		func(docs []domain.Document) driven.Retriever {
			return keyword.New(docs)
		},
	)

	generator, err := buildGenerator(cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		ingest: ingest,
		query:  services.NewQueryService(ingest, generator, services.WithTopK(cfg.TopK)),
		fs:     fs,
	}, nil
}

// buildPipeline constructs the preparation stages and the splitter from the
// processor registry.
func buildPipeline(cfg config.Config) (*pipeline.Pipeline, driven.Processor, error) {
	registry := pipeline.NewRegistry()
	pipeline.RegisterDefaults(registry)

	stageConfigs := []struct {
		name string
		cfg  map[string]any
	}{
		{"normalize", nil},
		{"consolidate", nil},
		{"prioritize", map[string]any{"markers": cfg.Priority.Markers}},
	}

	stages := pipeline.NewPipeline()
	for _, stage := range stageConfigs {
		proc, err := registry.Build(stage.name, stage.cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build %s stage: %w", stage.name, err)
		}
		stages.Add(proc)
	}

	splitter, err := registry.Build("split", map[string]any{
		"chunk_size":       cfg.Chunk.Size,
		"chunk_overlap":    cfg.Chunk.Overlap,
		"separator":        cfg.Chunk.Separator,
		"no_split_markers": cfg.Priority.NoSplitMarkers,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build split stage: %w", err)
	}

	return stages, splitter, nil
}

// buildResolver assembles the embedding provider chain: local Ollama first,
// then the OpenAI API, then nothing (keyword fallback).
func buildResolver(cfg config.Config) *embedding.Resolver {
	return embedding.NewResolver(
		embedding.ProviderFactory{
			Name: "ollama",
			Disabled: func() bool {
				return cfg.Embedding.SkipLocal
			},
			Build: func(ctx context.Context) (driven.EmbeddingService, error) {
				svc := ollama.NewEmbeddingService(ollama.Config{
					BaseURL: cfg.Embedding.OllamaBaseURL,
					Model:   cfg.Embedding.OllamaModel,
				})
				if err := svc.Ping(ctx); err != nil {
					return nil, err
				}
				return svc, nil
			},
		},
		embedding.ProviderFactory{
			Name: "openai",
			Disabled: func() bool {
				return cfg.OpenAIAPIKey == ""
			},
			Build: func(ctx context.Context) (driven.EmbeddingService, error) {
				svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
					APIKey: cfg.OpenAIAPIKey,
					Model:  cfg.Embedding.OpenAIModel,
				})
				if err != nil {
					return nil, err
				}
				if err := svc.Ping(ctx); err != nil {
					return nil, err
				}
				return svc, nil
			},
		},
	)
}

// buildGenerator picks the answer generator: OpenAI when a key is
// configured, otherwise the extractive fallback.
func buildGenerator(cfg config.Config) (driven.AnswerGenerator, error) {
	if cfg.OpenAIAPIKey == "" {
		logger.Info("no OpenAI API key configured, using extractive answers")
		return extractive.New(), nil
	}
	return openaigen.New(openaigen.Config{
		APIKey:    cfg.OpenAIAPIKey,
		Model:     cfg.Generator.Model,
		MaxTokens: cfg.Generator.MaxTokens,
		Timeout:   cfg.GeneratorTimeout(),
	})
}
