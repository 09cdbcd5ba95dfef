package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
)

// appendProcessor tags every document so ordering is observable.
type appendProcessor struct {
	name string
	tag  string
	err  error
}

func (p *appendProcessor) Name() string { return p.name }

func (p *appendProcessor) Process(_ context.Context, docs []domain.Document) ([]domain.Document, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := make([]domain.Document, len(docs))
	for i, d := range docs {
		d.Content += p.tag
		out[i] = d
	}
	return out, nil
}

func TestPipelineRunsInOrder(t *testing.T) {
	p := NewPipeline(
		&appendProcessor{name: "first", tag: "-a"},
		&appendProcessor{name: "second", tag: "-b"},
	)

	out, err := p.Process(context.Background(), []domain.Document{{ID: "1", Content: "doc"}})
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "doc-a-b", out[0].Content)
}

func TestPipelineStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	p := NewPipeline(
		&appendProcessor{name: "first", tag: "-a"},
		&appendProcessor{name: "broken", err: boom},
		&appendProcessor{name: "third", tag: "-c"},
	)

	_, err := p.Process(context.Background(), []domain.Document{{ID: "1"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "broken")
}

func TestPipelineAddAndLen(t *testing.T) {
	p := NewPipeline()
	assert.Equal(t, 0, p.Len())

	p.Add(&appendProcessor{name: "only", tag: "-x"})
	assert.Equal(t, 1, p.Len())
}

func TestRegistryBuildsDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	for _, name := range []string{"normalize", "consolidate", "prioritize", "split"} {
		require.True(t, r.Has(name), "missing builder %s", name)
		proc, err := r.Build(name, nil)
		require.NoError(t, err)
		assert.Equal(t, name, proc.Name())
	}
}

func TestRegistryUnknownProcessor(t *testing.T) {
	r := NewRegistry()

	_, err := r.Build("nope", nil)
	assert.Error(t, err)
}

func TestRegistryBuildSplitWithConfig(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	proc, err := r.Build("split", map[string]any{
		"chunk_size":    int64(120),
		"chunk_overlap": int64(0),
		"separator":     " ",
	})
	require.NoError(t, err)

	var _ driven.Processor = proc
	assert.Equal(t, "split", proc.Name())
}
