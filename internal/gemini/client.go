// Package gemini provides the Gemini-backed text surfaces: a chat completion
// shim for tier 2/3 web sessions and the landing spec generator.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/docentlabs/docent/internal/config"
	"google.golang.org/genai"
)

// ErrNotConfigured indicates the Gemini API key is missing. Detected before
// any network call is made.
var ErrNotConfigured = errors.New("gemini API key not configured")

// ChatMessage is one turn of a chat-style conversation.
type ChatMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// Client wraps the Gemini SDK for the service's text generation needs.
type Client struct {
	apiKey       string
	defaultModel string
	logger       *slog.Logger
}

// NewClient creates a Gemini client from configuration. The client is always
// constructed; a missing API key surfaces as ErrNotConfigured on first use.
func NewClient(cfg config.GeminiConfig, logger *slog.Logger) *Client {
	return &Client{
		apiKey:       cfg.APIKey,
		defaultModel: cfg.Model,
		logger:       logger.With("system", "gemini"),
	}
}

// DefaultModel returns the configured model name.
func (c *Client) DefaultModel() string {
	return c.defaultModel
}

// Chat maps chat-style messages onto Gemini contents and returns the model's
// reply text. Assistant turns become model-role contents; everything else is
// treated as user input.
func (c *Client) Chat(ctx context.Context, messages []ChatMessage, model string, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}
	if model == "" {
		model = c.defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: c.apiKey})
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}

	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := genai.RoleUser
		if m.Role == "assistant" {
			role = genai.RoleModel
		}

		var text string
		if err := json.Unmarshal(m.Content, &text); err != nil {
			// Non-string content is passed through as raw JSON.
			text = string(m.Content)
		}
		contents = append(contents, genai.NewContentFromText(text, role))
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(temperature)),
	}

	resp, err := client.Models.GenerateContent(ctx, model, contents, genConfig)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return resp.Text(), nil
}

// generateJSON asks Gemini for a strictly-JSON response to a single prompt.
func (c *Client) generateJSON(ctx context.Context, model, prompt string, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: c.apiKey})
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(temperature)),
		ResponseMIMEType: "application/json",
	}

	resp, err := client.Models.GenerateContent(ctx, model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		genConfig)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return resp.Text(), nil
}
