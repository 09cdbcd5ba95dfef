package pipeline

import (
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/pipeline/consolidate"
	"github.com/docqa-labs/docqa-cli/internal/pipeline/normalize"
	"github.com/docqa-labs/docqa-cli/internal/pipeline/prioritize"
	"github.com/docqa-labs/docqa-cli/internal/pipeline/split"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("normalize", buildNormalize)
	r.Register("consolidate", buildConsolidate)
	r.Register("prioritize", buildPrioritize)
	r.Register("split", buildSplit)
}

// buildNormalize creates a normalize processor from generic config.
// Supported config keys:
//   - legacy_charset (bool): force the cp932 projection on or off
func buildNormalize(cfg map[string]any) (driven.Processor, error) {
	var opts []normalize.Option
	if v, ok := cfg["legacy_charset"].(bool); ok {
		opts = append(opts, normalize.WithLegacyCharset(v))
	}
	return normalize.New(opts...), nil
}

func buildConsolidate(_ map[string]any) (driven.Processor, error) {
	return consolidate.New(), nil
}

// buildPrioritize creates a prioritize processor from generic config.
// Supported config keys:
//   - markers ([]string): priority source substrings, most important first
func buildPrioritize(cfg map[string]any) (driven.Processor, error) {
	var opts []prioritize.Option
	if markers := getStringSliceFromConfig(cfg, "markers"); markers != nil {
		opts = append(opts, prioritize.WithMarkers(markers))
	}
	return prioritize.New(opts...), nil
}

// buildSplit creates a split processor from generic config.
// Supported config keys:
//   - chunk_size (int): runes per chunk (default: 500)
//   - chunk_overlap (int): overlapping runes between chunks (default: 50)
//   - separator (string): preferred cut point (default: "\n")
//   - no_split_markers ([]string): sources exempt from splitting
func buildSplit(cfg map[string]any) (driven.Processor, error) {
	var opts []split.Option
	if size := getIntFromConfig(cfg, "chunk_size"); size > 0 {
		opts = append(opts, split.WithChunkSize(size))
	}
	if _, ok := cfg["chunk_overlap"]; ok {
		opts = append(opts, split.WithOverlap(getIntFromConfig(cfg, "chunk_overlap")))
	}
	if sep, ok := cfg["separator"].(string); ok {
		opts = append(opts, split.WithSeparator(sep))
	}
	if markers := getStringSliceFromConfig(cfg, "no_split_markers"); markers != nil {
		opts = append(opts, split.WithNoSplitMarkers(markers))
	}
	return split.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// getStringSliceFromConfig extracts a string slice from generic config.
// Handles []string and the []any produced by TOML/JSON parsing.
func getStringSliceFromConfig(cfg map[string]any, key string) []string {
	val, ok := cfg[key]
	if !ok {
		return nil
	}

	switch v := val.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
