package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	MaxChars int `yaml:"max_chars"`
	MinChars int `yaml:"min_chars"`
}

// RetrievalConfig configures per-question retrieval.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// GeneratorConfig configures the question/answer generation pipeline.
type GeneratorConfig struct {
	ModelVariant string `yaml:"model_variant"`
	// QuestionRounds bounds how many generation rounds may be spent
	// collecting unique questions.
	QuestionRounds int `yaml:"question_rounds"`
	// QuestionContextChars caps the rendered corpus excerpt handed to the
	// question generator.
	QuestionContextChars int `yaml:"question_context_chars"`
	// PauseMillis is the rate-limiting sleep between consecutive
	// completion-service calls.
	PauseMillis int `yaml:"pause_millis"`
}

// Pipeline is the root pipeline configuration structure.
type Pipeline struct {
	Chunker   ChunkerConfig   `yaml:"chunker"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Generator GeneratorConfig `yaml:"generator"`
}

// LoadPipeline reads a pipeline config from path. A missing file yields the
// defaults; a malformed file is an error.
func LoadPipeline(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultPipeline(), nil
		}
		return nil, err
	}
	var cfg Pipeline
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyPipelineDefaults(&cfg)
	return &cfg, nil
}

// SavePipeline writes the config to the given path, creating directories as
// needed.
func SavePipeline(path string, cfg *Pipeline) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultPipeline returns the built-in pipeline parameters.
func DefaultPipeline() *Pipeline {
	cfg := &Pipeline{}
	applyPipelineDefaults(cfg)
	return cfg
}

func applyPipelineDefaults(cfg *Pipeline) {
	if cfg.Chunker.MaxChars == 0 {
		cfg.Chunker.MaxChars = 900
	}
	if cfg.Chunker.MinChars == 0 {
		cfg.Chunker.MinChars = 120
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 5
	}
	if cfg.Generator.ModelVariant == "" {
		cfg.Generator.ModelVariant = "gpt-4o-mini"
	}
	if cfg.Generator.QuestionRounds == 0 {
		cfg.Generator.QuestionRounds = 6
	}
	if cfg.Generator.QuestionContextChars == 0 {
		cfg.Generator.QuestionContextChars = 12000
	}
	if cfg.Generator.PauseMillis == 0 {
		cfg.Generator.PauseMillis = 1100
	}
}
