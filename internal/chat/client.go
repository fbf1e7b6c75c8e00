// Package chat is a client for the chat completion service. The service
// answers with a newline-delimited JSON event stream; the final response
// text is the message of the last fully-replacing event.
package chat

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Mamo1031/rag-evaluator/internal/config"
)

const zeroChatID = "00000000-0000-0000-0000-000000000000"

// Client talks to the chat completion endpoint.
type Client struct {
	host         string
	apiKey       string
	projectID    int
	modelVariant string
	httpc        *http.Client
}

// NewClient builds a client from env credentials. modelVariant selects the
// backing model; empty uses the service default.
func NewClient(cfg *config.Env, modelVariant string) *Client {
	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if modelVariant == "" {
		modelVariant = "gpt-4o-mini"
	}
	return &Client{
		host:         cfg.Host,
		apiKey:       cfg.APIKey,
		projectID:    cfg.ProjectID,
		modelVariant: modelVariant,
		httpc:        &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Action          string   `json:"action"`
	ProjectID       int      `json:"projectId"`
	ChatID          string   `json:"chat_id"`
	DataSourceItems []string `json:"data_source_items"`
	ModelVariant    string   `json:"model_variant"`
	Template        string   `json:"template"`
	UserInput       string   `json:"user_input"`
}

type chatEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Complete sends one prompt and resolves the streamed event sequence to its
// final text. Blank and malformed stream lines are skipped; among
// replace_message events the most recent one wins. An empty final message is
// returned as "" without error.
func (c *Client) Complete(ctx context.Context, userInput, template string) (string, error) {
	payload := chatRequest{
		Action:          "new",
		ProjectID:       c.projectID,
		ChatID:          zeroChatID,
		DataSourceItems: []string{},
		ModelVariant:    c.modelVariant,
		Template:        template,
		UserInput:       userInput,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	url := c.host + "api/chat/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()
	// Redirects were already followed by the client; only 4xx/5xx are
	// failures.
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat request failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	final, err := extractFinalMessage(resp.Body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(final), nil
}

// extractFinalMessage scans an NDJSON stream and keeps the message of the
// last replace_message event.
func extractFinalMessage(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	final := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var event chatEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			continue
		}
		if event.Type == "replace_message" {
			final = event.Message
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading chat stream: %w", err)
	}
	return final, nil
}
