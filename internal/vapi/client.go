package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/docentlabs/docent/internal/agents"
	"github.com/docentlabs/docent/internal/config"
)

// Client talks to the Vapi assistant API.
type Client struct {
	apiKey  string
	baseURL string
	opts    AssistantOptions
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a Vapi client from configuration. The client is always
// constructed; a missing API key surfaces as ErrVendorNotConfigured on
// first use.
func NewClient(cfg config.VapiConfig, gemini config.GeminiConfig, webhooks config.WebhookConfig, logger *slog.Logger) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		opts: AssistantOptions{
			Model:        gemini.Model,
			BaseURL:      webhooks.BaseURL,
			ToolSecret:   webhooks.ToolSecret,
			ServerSecret: cfg.ServerSecret,
		},
		http:   &http.Client{Timeout: 20 * time.Second},
		logger: logger.With("vendor", "vapi"),
	}
}

// Sync pushes the agent configuration and capabilities to Vapi. Agents
// without a stored assistant id are created; agents with one are updated in
// place. Exactly one vendor call is made either way.
func (c *Client) Sync(ctx context.Context, agent *agents.Agent, caps *agents.Capabilities) (string, error) {
	if c.apiKey == "" {
		return "", agents.ErrVendorNotConfigured
	}

	payload := BuildAssistant(agent, caps, c.opts)

	url := c.baseURL + "/assistant"
	method := http.MethodPost
	if agent.VapiAssistantID != nil && *agent.VapiAssistantID != "" {
		url = c.baseURL + "/assistant/" + *agent.VapiAssistantID
		method = http.MethodPatch
	}

	body, err := c.do(ctx, method, url, payload)
	if err != nil {
		return "", err
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode assistant response: %w", err)
	}

	assistantID := resp.ID
	if assistantID == "" {
		if agent.VapiAssistantID == nil || *agent.VapiAssistantID == "" {
			return "", fmt.Errorf("assistant response missing id")
		}
		assistantID = *agent.VapiAssistantID
	}

	c.logger.Info("assistant synced", "agent_id", agent.ID, "assistant_id", assistantID, "method", method)
	return assistantID, nil
}

func (c *Client) do(ctx context.Context, method, url string, payload any) ([]byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call vapi: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &agents.SyncError{Vendor: "vapi", Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
