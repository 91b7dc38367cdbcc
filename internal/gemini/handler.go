package gemini

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/docentlabs/docent/pkg/handlers"
	"github.com/docentlabs/docent/pkg/routes"
)

type Handler struct {
	client *Client
	logger *slog.Logger
}

func NewHandler(client *Client, logger *slog.Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/api",
		Description: "Gemini text generation surfaces",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/chat/gemini", Handler: h.Chat},
			{Method: "POST", Pattern: "/landing/generate", Handler: h.GenerateLanding},
		},
	}
}

// Chat relays chat-style messages to Gemini and returns the reply text.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Messages    []ChatMessage `json:"messages"`
		Model       string        `json:"model"`
		Temperature *float64      `json:"temperature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if len(body.Messages) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("messages array is required"))
		return
	}

	temperature := 1.0
	if body.Temperature != nil {
		temperature = *body.Temperature
	}

	message, err := h.client.Chat(r.Context(), body.Messages, body.Model, temperature)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": message,
	})
}

// GenerateLanding produces a normalized landing spec from an owner prompt.
func (h *Handler) GenerateLanding(w http.ResponseWriter, r *http.Request) {
	var req LandingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	spec, err := h.client.GenerateLanding(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"spec":    json.RawMessage(spec),
	})
}
