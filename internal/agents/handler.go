package agents

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/docentlabs/docent/pkg/handlers"
	"github.com/docentlabs/docent/pkg/pagination"
	"github.com/docentlabs/docent/pkg/routes"
	"github.com/google/uuid"
)

// Handler exposes agent management and vendor sync endpoints.
type Handler struct {
	sys        System
	eleven     ElevenLabsSyncer
	vapi       VapiSyncer
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(sys System, eleven ElevenLabsSyncer, vapi VapiSyncer, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		eleven:     eleven,
		vapi:       vapi,
		logger:     logger,
		pagination: pagination,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/api/agents",
		Description: "Exhibit agent management and vendor synchronization",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/{id}/capabilities", Handler: h.FindCapabilities},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
			{Method: "POST", Pattern: "/publish", Handler: h.Publish},
			{Method: "POST", Pattern: "/sync/elevenlabs", Handler: h.SyncElevenLabs},
			{Method: "POST", Pattern: "/sync/vapi", Handler: h.SyncVapi},
			{Method: "POST", Pattern: "/recreate-elevenlabs", Handler: h.RecreateElevenLabs},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) FindCapabilities(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Capabilities(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	agent, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	agent = h.backgroundVapiSync(r.Context(), agent)

	handlers.RespondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"agent":   agent,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	agent, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	agent = h.backgroundVapiSync(r.Context(), agent)

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"agent":   agent,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Publish transitions an agent to published status. The first publish
// requires billing confirmation: without it, the request short-circuits
// before any vendor call and reports requiresBilling. Confirmed publishes
// sync to ElevenLabs first; a vendor failure aborts the publish.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AgentID          uuid.UUID `json:"agentId"`
		BillingConfirmed bool      `json:"billingConfirmed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if body.AgentID == uuid.Nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("agentId is required"))
		return
	}

	agent, err := h.sys.Find(r.Context(), body.AgentID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if agent.FirstPublishedAt == nil && !body.BillingConfirmed {
		handlers.RespondJSON(w, http.StatusOK, map[string]any{
			"success":         true,
			"requiresBilling": true,
			"agent":           agent,
		})
		return
	}

	vendorID, err := h.eleven.Sync(r.Context(), agent)
	if err != nil {
		handlers.RespondError(w, h.logger, syncStatus(err), err)
		return
	}

	if agent.ElevenLabsID == nil || *agent.ElevenLabsID != vendorID {
		if err := h.sys.SetElevenLabsID(r.Context(), agent.ID, &vendorID); err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
	}

	published, err := h.sys.Publish(r.Context(), agent.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	published.VenueName = agent.VenueName

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"requiresBilling": false,
		"agent":           published,
	})
}

// SyncElevenLabs explicitly pushes an agent to ElevenLabs. Vendor failures
// are fatal here, unlike the save-triggered background sync.
func (h *Handler) SyncElevenLabs(w http.ResponseWriter, r *http.Request) {
	agent, ok := h.resolveSyncTarget(w, r)
	if !ok {
		return
	}

	vendorID, err := h.eleven.Sync(r.Context(), agent)
	if err != nil {
		handlers.RespondError(w, h.logger, syncStatus(err), err)
		return
	}

	if agent.ElevenLabsID == nil || *agent.ElevenLabsID != vendorID {
		if err := h.sys.SetElevenLabsID(r.Context(), agent.ID, &vendorID); err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
		agent.ElevenLabsID = &vendorID
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"elevenLabsAgentId": vendorID,
		"agent":             agent,
	})
}

// SyncVapi explicitly pushes an agent and its capabilities to Vapi.
func (h *Handler) SyncVapi(w http.ResponseWriter, r *http.Request) {
	agent, ok := h.resolveSyncTarget(w, r)
	if !ok {
		return
	}

	caps, err := h.sys.Capabilities(r.Context(), agent.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	assistantID, err := h.vapi.Sync(r.Context(), agent, caps)
	if err != nil {
		handlers.RespondError(w, h.logger, syncStatus(err), err)
		return
	}

	if agent.VapiAssistantID == nil || *agent.VapiAssistantID != assistantID {
		if err := h.sys.SetVapiAssistantID(r.Context(), agent.ID, &assistantID); err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
		agent.VapiAssistantID = &assistantID
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"vapiAssistantId": assistantID,
		"agent":           agent,
	})
}

// RecreateElevenLabs deletes the bound ElevenLabs agent and creates a fresh
// one from the current configuration, rebinding the stored vendor id.
func (h *Handler) RecreateElevenLabs(w http.ResponseWriter, r *http.Request) {
	agent, ok := h.resolveSyncTarget(w, r)
	if !ok {
		return
	}

	vendorID, err := h.eleven.Recreate(r.Context(), agent)
	if err != nil {
		handlers.RespondError(w, h.logger, syncStatus(err), err)
		return
	}

	if err := h.sys.SetElevenLabsID(r.Context(), agent.ID, &vendorID); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"elevenLabsAgentId": vendorID,
		"message":           "Agent recreated successfully with new system prompt",
	})
}

// resolveSyncTarget decodes the {"agentId": ...} body shared by the sync
// endpoints and loads the referenced agent.
func (h *Handler) resolveSyncTarget(w http.ResponseWriter, r *http.Request) (*Agent, bool) {
	var body struct {
		AgentID uuid.UUID `json:"agentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return nil, false
	}
	if body.AgentID == uuid.Nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("agentId is required"))
		return nil, false
	}

	agent, err := h.sys.Find(r.Context(), body.AgentID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return nil, false
	}
	return agent, true
}

// backgroundVapiSync keeps the Vapi assistant in step with agent saves.
// Failures never fail the save; they are logged and the agent is returned
// unchanged.
func (h *Handler) backgroundVapiSync(ctx context.Context, agent *Agent) *Agent {
	caps, err := h.sys.Capabilities(ctx, agent.ID)
	if err != nil {
		h.logger.Warn("vapi sync skipped", "agent_id", agent.ID, "error", err)
		return agent
	}

	assistantID, err := h.vapi.Sync(ctx, agent, caps)
	if err != nil {
		if errors.Is(err, ErrVendorNotConfigured) {
			h.logger.Debug("vapi not configured, skipping assistant sync", "agent_id", agent.ID)
		} else {
			h.logger.Warn("vapi sync failed", "agent_id", agent.ID, "error", err)
		}
		return agent
	}

	if agent.VapiAssistantID == nil || *agent.VapiAssistantID != assistantID {
		if err := h.sys.SetVapiAssistantID(ctx, agent.ID, &assistantID); err != nil {
			h.logger.Warn("vapi binding update failed", "agent_id", agent.ID, "error", err)
			return agent
		}
		agent.VapiAssistantID = &assistantID
	}
	return agent
}

// syncStatus maps vendor sync errors to response codes. Vendor rejections
// pass the vendor's own status through; a missing API key is a server
// configuration problem.
func syncStatus(err error) int {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Status
	}
	return http.StatusInternalServerError
}
