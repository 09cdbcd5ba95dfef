package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
)

// stubService is a minimal EmbeddingService for resolver tests.
type stubService struct {
	model string
}

func (s *stubService) Embed(context.Context, string) ([]float32, error) {
	return []float32{1}, nil
}
func (s *stubService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1}
	}
	return out, nil
}
func (s *stubService) Dimensions() int            { return 1 }
func (s *stubService) ModelName() string          { return s.model }
func (s *stubService) Ping(context.Context) error { return nil }
func (s *stubService) Close() error               { return nil }

func working(name string) ProviderFactory {
	return ProviderFactory{
		Name: name,
		Build: func(context.Context) (driven.EmbeddingService, error) {
			return &stubService{model: name}, nil
		},
	}
}

func failing(name string, err error) ProviderFactory {
	return ProviderFactory{
		Name: name,
		Build: func(context.Context) (driven.EmbeddingService, error) {
			return nil, err
		},
	}
}

func disabled(name string) ProviderFactory {
	f := working(name)
	f.Disabled = func() bool { return true }
	return f
}

func TestResolverFirstTierWins(t *testing.T) {
	r := NewResolver(working("local"), working("remote"))

	svc, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, "local", svc.ModelName())
}

func TestResolverFallsThroughFailure(t *testing.T) {
	r := NewResolver(failing("local", errors.New("connection refused")), working("remote"))

	svc, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, "remote", svc.ModelName())
}

func TestResolverSkipsDisabledTier(t *testing.T) {
	r := NewResolver(disabled("local"), working("remote"))

	svc, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "remote", svc.ModelName())
}

func TestResolverAllTiersFail(t *testing.T) {
	localErr := errors.New("connection refused")
	remoteErr := errors.New("401 unauthorized")
	r := NewResolver(failing("local", localErr), failing("remote", remoteErr))

	svc, err := r.Resolve(context.Background())
	assert.Nil(t, svc)
	require.Error(t, err)
	assert.ErrorIs(t, err, localErr)
	assert.ErrorIs(t, err, remoteErr)
}

func TestResolverAllTiersDisabled(t *testing.T) {
	r := NewResolver(disabled("local"), disabled("remote"))

	svc, err := r.Resolve(context.Background())
	assert.Nil(t, svc)
	assert.NoError(t, err)
}

func TestResolverDoesNotCacheFailure(t *testing.T) {
	attempts := 0
	flaky := ProviderFactory{
		Name: "flaky",
		Build: func(context.Context) (driven.EmbeddingService, error) {
			attempts++
			if attempts == 1 {
				return nil, errors.New("temporarily down")
			}
			return &stubService{model: "flaky"}, nil
		},
	}
	r := NewResolver(flaky)

	svc, err := r.Resolve(context.Background())
	assert.Nil(t, svc)
	assert.Error(t, err)

	svc, err = r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "flaky", svc.ModelName())
}
