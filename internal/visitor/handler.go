// Package visitor exposes the public read surface consumed by the visitor
// landing page. Only published agents are visible here.
package visitor

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/docentlabs/docent/internal/agents"
	"github.com/docentlabs/docent/internal/organizations"
	"github.com/docentlabs/docent/internal/venues"
	"github.com/docentlabs/docent/pkg/handlers"
	"github.com/docentlabs/docent/pkg/routes"
	"github.com/google/uuid"
)

type Handler struct {
	agents agents.System
	venues venues.System
	orgs   organizations.System
	logger *slog.Logger
}

func NewHandler(agentSys agents.System, venueSys venues.System, orgSys organizations.System, logger *slog.Logger) *Handler {
	return &Handler{
		agents: agentSys,
		venues: venueSys,
		orgs:   orgSys,
		logger: logger,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/api/visitor",
		Description: "Public visitor-facing agent lookup",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/agent", Handler: h.Agent},
		},
	}
}

// VenueView is the venue detail embedded in a visitor agent response.
type VenueView struct {
	ID                 uuid.UUID `json:"id"`
	DisplayName        string    `json:"display_name"`
	Kind               string    `json:"kind"`
	BackgroundImageKey *string   `json:"background_image_key"`
}

// OrganizationView is the organization detail embedded in a visitor agent
// response.
type OrganizationView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// AgentView is the public projection of a published agent.
type AgentView struct {
	ID                 uuid.UUID         `json:"id"`
	Name               string            `json:"name"`
	Slug               string            `json:"slug"`
	Bio                string            `json:"bio"`
	Tier               int               `json:"tier"`
	Venue              *VenueView        `json:"venue"`
	Organization       *OrganizationView `json:"organization"`
	SupportedLanguages []string          `json:"supportedLanguages"`
	Voice              string            `json:"voice"`
	Persona            string            `json:"persona"`
	WelcomeMessage     string            `json:"firstMessage"`
	LandingSpec        json.RawMessage   `json:"landing_spec,omitempty"`
}

// Agent looks up a published agent by its public slug. Unknown slugs return
// 404; existing but unpublished agents return 403 with the current status.
func (h *Handler) Agent(w http.ResponseWriter, r *http.Request) {
	publicID := r.URL.Query().Get("publicId")
	if publicID == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("publicId is required"))
		return
	}

	agent, err := h.agents.FindBySlug(r.Context(), publicID)
	if err != nil {
		if errors.Is(err, agents.ErrNotFound) {
			handlers.RespondError(w, h.logger, http.StatusNotFound,
				fmt.Errorf("agent not found with slug: %s", publicID))
			return
		}
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	if agent.Status != agents.StatusPublished {
		handlers.RespondError(w, h.logger, http.StatusForbidden,
			fmt.Errorf("this agent is not published yet. Current status: %s", agent.Status))
		return
	}

	view := AgentView{
		ID:                 agent.ID,
		Name:               agent.Name,
		Slug:               agent.Slug,
		Bio:                agent.Bio,
		Tier:               agent.Tier,
		SupportedLanguages: supportedLanguages(agent.Tier),
		Voice:              agent.Voice,
		Persona:            agent.Persona,
		WelcomeMessage:     agent.WelcomeMessage,
		LandingSpec:        agent.LandingSpec,
	}

	if venue, err := h.venues.Find(r.Context(), agent.VenueID); err == nil {
		view.Venue = &VenueView{
			ID:                 venue.ID,
			DisplayName:        venue.DisplayName,
			Kind:               venue.Kind,
			BackgroundImageKey: venue.BackgroundImageKey,
		}
	} else {
		h.logger.Warn("visitor venue lookup failed", "venue_id", agent.VenueID, "error", err)
	}

	if org, err := h.orgs.Find(r.Context(), agent.OrganizationID); err == nil {
		view.Organization = &OrganizationView{ID: org.ID, Name: org.Name}
	} else {
		h.logger.Warn("visitor organization lookup failed", "organization_id", agent.OrganizationID, "error", err)
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"agent":   view,
	})
}

// supportedLanguages derives the language list from tier. Tier 1 agents are
// English-only; realtime tiers carry the full set.
func supportedLanguages(tier int) []string {
	if tier >= 2 {
		return []string{"English", "Spanish", "French", "German", "Italian", "Portuguese"}
	}
	return []string{"English"}
}
