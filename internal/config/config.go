// Package config loads service credentials from the environment and
// pipeline parameters from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Env holds the process configuration read from environment variables
// (typically via a .env file). Host, APIKey and ProjectID configure the
// chat completion service; the path variables are defaults the CLIs use
// when no explicit arguments are given.
type Env struct {
	Host          string `env:"HOST"`
	APIKey        string `env:"API_KEY"`
	ProjectID     int    `env:"PROJECT_ID"`
	DocsDir       string `env:"DOCS_DIR"`
	QuestionsPath string `env:"QUESTIONS_PATH"`
	OutputPath    string `env:"OUTPUT_PATH"`
	// RequestTimeout is the per-request timeout in seconds.
	RequestTimeout int `env:"REQUEST_TIMEOUT" envDefault:"60"`
	MaxRetries     int `env:"MAX_RETRIES" envDefault:"3"`
}

// LoadEnv reads .env if present, parses the environment, and normalizes the
// credential fields: HOST gains a trailing slash, API_KEY gains a Bearer
// prefix. Missing credentials are reported immediately rather than
// substituted with defaults.
func LoadEnv() (*Env, error) {
	_ = godotenv.Load()
	cfg := &Env{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Env) validate() error {
	if c.Host == "" {
		return errors.New("HOST is not set (check your .env file)")
	}
	if !strings.HasPrefix(c.Host, "http") {
		return errors.New("HOST must be a URL starting with https://")
	}
	if !strings.HasSuffix(c.Host, "/") {
		c.Host += "/"
	}
	if c.APIKey == "" {
		return errors.New("API_KEY is not set (check your .env file)")
	}
	if !strings.HasPrefix(c.APIKey, "Bearer ") {
		c.APIKey = "Bearer " + strings.TrimSpace(c.APIKey)
	}
	if c.ProjectID == 0 {
		return errors.New("PROJECT_ID is not set (check your .env file)")
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 60
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	return nil
}
