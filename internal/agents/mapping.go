package agents

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/docentlabs/docent/pkg/query"
	"github.com/docentlabs/docent/pkg/repository"
	"github.com/google/uuid"
)

var projection = query.
	NewProjectionMap("public", "agents", "a").
	Project("id", "ID").
	Project("organization_id", "OrganizationID").
	Project("venue_id", "VenueID").
	Project("name", "Name").
	Project("slug", "Slug").
	Project("tier", "Tier").
	Project("bio", "Bio").
	Project("persona", "Persona").
	Project("do_nots", "DoNots").
	Project("important_facts", "ImportantFacts").
	Project("welcome_message", "WelcomeMessage").
	Project("end_script", "EndScript").
	Project("voice", "Voice").
	Project("voice_label", "VoiceLabel").
	Project("voice_settings", "VoiceSettings").
	Project("voice_platform", "VoicePlatform").
	Project("status", "Status").
	Project("first_published_at", "FirstPublishedAt").
	Project("elevenlabs_agent_id", "ElevenLabsID").
	Project("vapi_assistant_id", "VapiAssistantID").
	Project("landing_spec", "LandingSpec").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

// agentColumns is the column list used by raw queries that RETURNING or
// join against the agents table.
const agentColumns = `a.id, a.organization_id, a.venue_id, a.name, a.slug, a.tier,
	a.bio, a.persona, a.do_nots, a.important_facts, a.welcome_message, a.end_script,
	a.voice, a.voice_label, a.voice_settings, a.voice_platform, a.status,
	a.first_published_at, a.elevenlabs_agent_id, a.vapi_assistant_id, a.landing_spec,
	a.created_at, a.updated_at`

func scanAgent(s repository.Scanner) (Agent, error) {
	var (
		a        Agent
		facts    []byte
		settings []byte
		landing  []byte
	)

	err := s.Scan(
		&a.ID, &a.OrganizationID, &a.VenueID, &a.Name, &a.Slug, &a.Tier,
		&a.Bio, &a.Persona, &a.DoNots, &facts, &a.WelcomeMessage, &a.EndScript,
		&a.Voice, &a.VoiceLabel, &settings, &a.VoicePlatform, &a.Status,
		&a.FirstPublishedAt, &a.ElevenLabsID, &a.VapiAssistantID, &landing,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return a, err
	}

	if len(facts) > 0 {
		if err := json.Unmarshal(facts, &a.ImportantFacts); err != nil {
			return a, err
		}
	}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &a.VoiceSettings); err != nil {
			return a, err
		}
	}
	if len(landing) > 0 {
		a.LandingSpec = json.RawMessage(landing)
	}

	return a, nil
}

// scanAgentWithVenue scans an agent row joined against the venues table.
func scanAgentWithVenue(s repository.Scanner) (Agent, error) {
	var (
		a        Agent
		facts    []byte
		settings []byte
		landing  []byte
	)

	err := s.Scan(
		&a.ID, &a.OrganizationID, &a.VenueID, &a.Name, &a.Slug, &a.Tier,
		&a.Bio, &a.Persona, &a.DoNots, &facts, &a.WelcomeMessage, &a.EndScript,
		&a.Voice, &a.VoiceLabel, &settings, &a.VoicePlatform, &a.Status,
		&a.FirstPublishedAt, &a.ElevenLabsID, &a.VapiAssistantID, &landing,
		&a.CreatedAt, &a.UpdatedAt, &a.VenueName,
	)
	if err != nil {
		return a, err
	}

	if len(facts) > 0 {
		if err := json.Unmarshal(facts, &a.ImportantFacts); err != nil {
			return a, err
		}
	}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &a.VoiceSettings); err != nil {
			return a, err
		}
	}
	if len(landing) > 0 {
		a.LandingSpec = json.RawMessage(landing)
	}

	return a, nil
}

func scanCapabilities(s repository.Scanner) (Capabilities, error) {
	var (
		c        Capabilities
		manifest []byte
	)
	err := s.Scan(
		&c.AgentID, &c.CanSendEmail, &c.CanSendSMS,
		&c.CanTakeOrders, &c.CanPostSocial, &manifest,
	)
	if len(manifest) > 0 {
		c.FunctionManifest = json.RawMessage(manifest)
	}
	return c, err
}

// Filters narrows agent listings.
type Filters struct {
	OrganizationID *uuid.UUID
	VenueID        *uuid.UUID
	Status         *string
	Tier           *int
}

// FiltersFromQuery parses filters from URL query values. Malformed values
// are ignored rather than rejected.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if v := values.Get("organization_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.OrganizationID = &id
		}
	}
	if v := values.Get("venue_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.VenueID = &id
		}
	}
	if v := values.Get("status"); v != "" {
		f.Status = &v
	}
	if v := values.Get("tier"); v != "" {
		if tier, err := strconv.Atoi(v); err == nil {
			f.Tier = &tier
		}
	}
	return f
}

// Apply adds the filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.OrganizationID != nil {
		b.WhereEquals("OrganizationID", *f.OrganizationID)
	}
	if f.VenueID != nil {
		b.WhereEquals("VenueID", *f.VenueID)
	}
	if f.Status != nil {
		b.WhereEquals("Status", *f.Status)
	}
	if f.Tier != nil {
		b.WhereEquals("Tier", *f.Tier)
	}
	return b
}
