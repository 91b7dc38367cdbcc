package elevenlabs

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

// Client talks to the ElevenLabs Conversational AI API.
type Client struct {
	apiKey         string
	baseURL        string
	defaultVoiceID string
	http           *http.Client
	logger         *slog.Logger
}

// NewClient creates an ElevenLabs client from configuration. The client is
// always constructed; a missing API key surfaces as ErrVendorNotConfigured
// on first use.
func NewClient(cfg config.ElevenLabsConfig, logger *slog.Logger) *Client {
	return &Client{
		apiKey:         cfg.APIKey,
		baseURL:        cfg.BaseURL,
		defaultVoiceID: cfg.DefaultVoiceID,
		http:           &http.Client{Timeout: 20 * time.Second},
		logger:         logger.With("vendor", "elevenlabs"),
	}
}

// Sync pushes the agent configuration to ElevenLabs. Agents without a stored
// vendor id are created; agents with one are updated in place. Exactly one
// vendor call is made either way.
func (c *Client) Sync(ctx context.Context, agent *agents.Agent) (string, error) {
	if c.apiKey == "" {
		return "", agents.ErrVendorNotConfigured
	}

	payload := BuildAgentPayload(agent, c.defaultVoiceID)

	if agent.ElevenLabsID != nil && *agent.ElevenLabsID != "" {
		if err := c.update(ctx, *agent.ElevenLabsID, payload); err != nil {
			return "", err
		}
		c.logger.Info("agent updated", "agent_id", agent.ID, "vendor_id", *agent.ElevenLabsID)
		return *agent.ElevenLabsID, nil
	}

	vendorID, err := c.create(ctx, payload)
	if err != nil {
		return "", err
	}
	c.logger.Info("agent created", "agent_id", agent.ID, "vendor_id", vendorID)
	return vendorID, nil
}

// Recreate deletes the currently bound vendor agent and creates a fresh one
// from the agent's present configuration. The delete is best effort: a
// failure is logged and creation proceeds regardless.
func (c *Client) Recreate(ctx context.Context, agent *agents.Agent) (string, error) {
	if c.apiKey == "" {
		return "", agents.ErrVendorNotConfigured
	}

	if agent.ElevenLabsID != nil && *agent.ElevenLabsID != "" {
		if err := c.delete(ctx, *agent.ElevenLabsID); err != nil {
			c.logger.Warn("delete before recreate failed, continuing", "vendor_id", *agent.ElevenLabsID, "error", err)
		}
	}

	vendorID, err := c.create(ctx, BuildAgentPayload(agent, c.defaultVoiceID))
	if err != nil {
		return "", err
	}
	c.logger.Info("agent recreated", "agent_id", agent.ID, "vendor_id", vendorID)
	return vendorID, nil
}

func (c *Client) create(ctx context.Context, payload AgentPayload) (string, error) {
	body, err := c.do(ctx, http.MethodPost, c.baseURL+"/convai/agents/create", payload)
	if err != nil {
		return "", err
	}

	var resp struct {
		AgentID string `json:"agent_id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode create response: %w", err)
	}
	if resp.AgentID == "" {
		return "", fmt.Errorf("create response missing agent_id")
	}
	return resp.AgentID, nil
}

func (c *Client) update(ctx context.Context, vendorID string, payload AgentPayload) error {
	_, err := c.do(ctx, http.MethodPatch, c.baseURL+"/convai/agents/"+vendorID, payload)
	return err
}

func (c *Client) delete(ctx context.Context, vendorID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/convai/agents/"+vendorID, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &agents.SyncError{Vendor: "elevenlabs", Status: resp.StatusCode, Body: string(body)}
	}
	return nil
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
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call elevenlabs: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &agents.SyncError{Vendor: "elevenlabs", Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
