// Package embedding resolves which embedding backend to use at ingest time.
package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/logger"
)

// ProviderFactory describes one tier of the provider chain.
type ProviderFactory struct {
	// Name identifies the tier in logs ("ollama", "openai").
	Name string

	// Disabled reports whether the tier should be skipped without being
	// counted as a failure. May be nil.
	Disabled func() bool

	// Build constructs and validates the service. Implementations should
	// Ping before returning so a dead endpoint fails the tier here rather
	// than mid-ingest.
	Build func(ctx context.Context) (driven.EmbeddingService, error)
}

// Resolver walks an ordered provider chain and returns the first usable
// embedding service. Failures are never cached: a tier that was down during
// one resolve is retried on the next, so a recovered local model is picked
// up without restarting the process.
type Resolver struct {
	factories []ProviderFactory
}

// NewResolver creates a resolver over the given tiers, most preferred first.
func NewResolver(factories ...ProviderFactory) *Resolver {
	return &Resolver{factories: factories}
}

// Resolve returns the first tier that builds successfully. When every tier
// is disabled or fails it returns (nil, joined tier errors); callers treat a
// nil service as "no embeddings available" and fall back to keyword
// retrieval.
func (r *Resolver) Resolve(ctx context.Context) (driven.EmbeddingService, error) {
	var tierErrs []error
	for _, factory := range r.factories {
		if factory.Disabled != nil && factory.Disabled() {
			logger.Debug("embedding tier %s disabled, skipping", factory.Name)
			continue
		}

		svc, err := factory.Build(ctx)
		if err != nil {
			logger.Error("embedding tier %s unavailable: %v", factory.Name, err)
			tierErrs = append(tierErrs, fmt.Errorf("%s: %w", factory.Name, err))
			continue
		}

		logger.Info("using embedding provider %s (model %s)", factory.Name, svc.ModelName())
		return svc, nil
	}
	return nil, errors.Join(tierErrs...)
}
