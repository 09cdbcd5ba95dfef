// Package config loads the docqa configuration: defaults, then an optional
// TOML file, then environment variables. A .env file next to the working
// directory is honoured so API keys stay out of shell history.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/docqa-labs/docqa-cli/internal/logger"
)

// Environment variable names.
const (
	EnvOpenAIAPIKey        = "OPENAI_API_KEY"
	EnvDataDir             = "DOCQA_DATA_DIR"
	EnvSkipLocalEmbeddings = "DOCQA_SKIP_LOCAL_EMBEDDINGS"
	EnvOllamaBaseURL       = "OLLAMA_BASE_URL"
)

// Config is the full application configuration.
type Config struct {
	// DataDir is the document corpus root.
	DataDir string `toml:"data_dir"`

	// URLs lists intranet pages to index alongside the directory.
	URLs []string `toml:"urls"`

	// TopK is the number of documents retrieved per query.
	TopK int `toml:"top_k"`

	Chunk     ChunkConfig     `toml:"chunk"`
	Priority  PriorityConfig  `toml:"priority"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Generator GeneratorConfig `toml:"generator"`

	// OpenAIAPIKey comes from the environment only, never from the file.
	OpenAIAPIKey string `toml:"-"`
}

// ChunkConfig tunes the split stage.
type ChunkConfig struct {
	Size      int    `toml:"size"`
	Overlap   int    `toml:"overlap"`
	Separator string `toml:"separator"`
}

// PriorityConfig tunes document ordering and split exemptions.
type PriorityConfig struct {
	// Markers are priority source substrings, most important first.
	Markers []string `toml:"markers"`

	// NoSplitMarkers name sources that must stay whole.
	NoSplitMarkers []string `toml:"no_split_markers"`
}

// EmbeddingConfig tunes the provider chain.
type EmbeddingConfig struct {
	// SkipLocal disables the local Ollama tier.
	SkipLocal bool `toml:"skip_local"`

	// OllamaBaseURL overrides the local Ollama endpoint.
	OllamaBaseURL string `toml:"ollama_base_url"`

	// OllamaModel overrides the local embedding model.
	OllamaModel string `toml:"ollama_model"`

	// OpenAIModel overrides the remote embedding model.
	OpenAIModel string `toml:"openai_model"`
}

// GeneratorConfig tunes answer generation.
type GeneratorConfig struct {
	// Model is the chat model for answers.
	Model string `toml:"model"`

	// MaxTokens caps the answer length. Zero means no explicit cap.
	MaxTokens int `toml:"max_tokens"`

	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir: "data",
		TopK:    10,
		Chunk: ChunkConfig{
			Size:      500,
			Overlap:   50,
			Separator: "\n",
		},
		Priority: PriorityConfig{
			Markers:        []string{"roster.csv", "rules.txt", "about-service", "about-company"},
			NoSplitMarkers: []string{"roster.csv", "rules.txt"},
		},
		Generator: GeneratorConfig{
			TimeoutSeconds: 120,
		},
	}
}

// Load builds the configuration: defaults, then the TOML file at path (if
// it exists), then environment variables. A missing file is not an error;
// a malformed one is.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env: %v", err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			logger.Debug("no config file at %s, using defaults", path)
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GeneratorTimeout returns the generator timeout as a duration.
func (c Config) GeneratorTimeout() time.Duration {
	return time.Duration(c.Generator.TimeoutSeconds) * time.Second
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvOpenAIAPIKey); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvOllamaBaseURL); v != "" {
		cfg.Embedding.OllamaBaseURL = v
	}
	if v := os.Getenv(EnvSkipLocalEmbeddings); v != "" {
		if skip, err := strconv.ParseBool(v); err == nil {
			cfg.Embedding.SkipLocal = skip
		} else {
			logger.Warn("ignoring %s=%q: not a boolean", EnvSkipLocalEmbeddings, v)
		}
	}
}

func (c Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.Chunk.Size <= 0 {
		return fmt.Errorf("chunk.size must be positive, got %d", c.Chunk.Size)
	}
	if c.Chunk.Overlap < 0 || c.Chunk.Overlap >= c.Chunk.Size {
		return fmt.Errorf("chunk.overlap must be in [0, chunk.size), got %d", c.Chunk.Overlap)
	}
	return nil
}
