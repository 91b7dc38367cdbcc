package agents_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/docentlabs/docent/internal/agents"
	"github.com/docentlabs/docent/pkg/pagination"
	"github.com/google/uuid"
)

type fakeSystem struct {
	agents       map[uuid.UUID]*agents.Agent
	caps         map[uuid.UUID]*agents.Capabilities
	published    []uuid.UUID
	elevenBound  map[uuid.UUID]*string
	vapiBound    map[uuid.UUID]*string
	capsErr      error
	publishErr   error
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{
		agents:      map[uuid.UUID]*agents.Agent{},
		caps:        map[uuid.UUID]*agents.Capabilities{},
		elevenBound: map[uuid.UUID]*string{},
		vapiBound:   map[uuid.UUID]*string{},
	}
}

func (f *fakeSystem) add(agent *agents.Agent) {
	f.agents[agent.ID] = agent
}

func (f *fakeSystem) List(ctx context.Context, page pagination.PageRequest, filters agents.Filters) (*pagination.PageResult[agents.Agent], error) {
	var data []agents.Agent
	for _, a := range f.agents {
		data = append(data, *a)
	}
	result := pagination.NewPageResult(data, len(data), 1, 20)
	return &result, nil
}

func (f *fakeSystem) Find(ctx context.Context, id uuid.UUID) (*agents.Agent, error) {
	agent, ok := f.agents[id]
	if !ok {
		return nil, agents.ErrNotFound
	}
	copied := *agent
	return &copied, nil
}

func (f *fakeSystem) FindBySlug(ctx context.Context, slug string) (*agents.Agent, error) {
	for _, a := range f.agents {
		if a.Slug == slug {
			copied := *a
			return &copied, nil
		}
	}
	return nil, agents.ErrNotFound
}

func (f *fakeSystem) Create(ctx context.Context, cmd agents.CreateCommand) (*agents.Agent, error) {
	agent := &agents.Agent{
		ID:             uuid.New(),
		OrganizationID: cmd.OrganizationID,
		VenueID:        cmd.VenueID,
		Name:           cmd.Name,
		Slug:           cmd.Slug,
		Tier:           cmd.Tier,
		Status:         agents.StatusDraft,
	}
	f.agents[agent.ID] = agent
	return agent, nil
}

func (f *fakeSystem) Update(ctx context.Context, id uuid.UUID, cmd agents.UpdateCommand) (*agents.Agent, error) {
	agent, ok := f.agents[id]
	if !ok {
		return nil, agents.ErrNotFound
	}
	agent.Name = cmd.Name
	return agent, nil
}

func (f *fakeSystem) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.agents[id]; !ok {
		return agents.ErrNotFound
	}
	delete(f.agents, id)
	return nil
}

func (f *fakeSystem) Capabilities(ctx context.Context, agentID uuid.UUID) (*agents.Capabilities, error) {
	if f.capsErr != nil {
		return nil, f.capsErr
	}
	if caps, ok := f.caps[agentID]; ok {
		return caps, nil
	}
	return &agents.Capabilities{AgentID: agentID}, nil
}

func (f *fakeSystem) SetElevenLabsID(ctx context.Context, agentID uuid.UUID, vendorID *string) error {
	f.elevenBound[agentID] = vendorID
	if agent, ok := f.agents[agentID]; ok {
		agent.ElevenLabsID = vendorID
	}
	return nil
}

func (f *fakeSystem) SetVapiAssistantID(ctx context.Context, agentID uuid.UUID, vendorID *string) error {
	f.vapiBound[agentID] = vendorID
	if agent, ok := f.agents[agentID]; ok {
		agent.VapiAssistantID = vendorID
	}
	return nil
}

func (f *fakeSystem) Publish(ctx context.Context, id uuid.UUID) (*agents.Agent, error) {
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	agent, ok := f.agents[id]
	if !ok {
		return nil, agents.ErrNotFound
	}
	f.published = append(f.published, id)
	agent.Status = agents.StatusPublished
	if agent.FirstPublishedAt == nil {
		now := time.Now()
		agent.FirstPublishedAt = &now
	}
	copied := *agent
	return &copied, nil
}

type fakeElevenSyncer struct {
	syncCalls     int
	recreateCalls int
	vendorID      string
	err           error
}

func (f *fakeElevenSyncer) Sync(ctx context.Context, agent *agents.Agent) (string, error) {
	f.syncCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.vendorID, nil
}

func (f *fakeElevenSyncer) Recreate(ctx context.Context, agent *agents.Agent) (string, error) {
	f.recreateCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.vendorID, nil
}

type fakeVapiSyncer struct {
	syncCalls   int
	assistantID string
	err         error
}

func (f *fakeVapiSyncer) Sync(ctx context.Context, agent *agents.Agent, caps *agents.Capabilities) (string, error) {
	f.syncCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.assistantID, nil
}

func newTestHandler(sys *fakeSystem, eleven *fakeElevenSyncer, vapi *fakeVapiSyncer) *agents.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return agents.NewHandler(sys, eleven, vapi, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

func TestPublish_FirstPublishRequiresBilling(t *testing.T) {
	sys := newFakeSystem()
	agent := &agents.Agent{ID: uuid.New(), Name: "Rex", Status: agents.StatusDraft}
	sys.add(agent)

	eleven := &fakeElevenSyncer{vendorID: "el-123"}
	h := newTestHandler(sys, eleven, &fakeVapiSyncer{})

	req := httptest.NewRequest(http.MethodPost, "/api/agents/publish",
		strings.NewReader(`{"agentId": "`+agent.ID.String()+`"}`))
	rec := httptest.NewRecorder()

	h.Publish(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["requiresBilling"] != true {
		t.Errorf("requiresBilling = %v, want true", body["requiresBilling"])
	}
	if eleven.syncCalls != 0 {
		t.Errorf("vendor sync calls = %d, want 0 before billing confirmation", eleven.syncCalls)
	}
	if len(sys.published) != 0 {
		t.Error("agent published without billing confirmation")
	}
}

func TestPublish_BillingConfirmed(t *testing.T) {
	sys := newFakeSystem()
	agent := &agents.Agent{ID: uuid.New(), Name: "Rex", Status: agents.StatusDraft}
	sys.add(agent)

	eleven := &fakeElevenSyncer{vendorID: "el-123"}
	h := newTestHandler(sys, eleven, &fakeVapiSyncer{})

	req := httptest.NewRequest(http.MethodPost, "/api/agents/publish",
		strings.NewReader(`{"agentId": "`+agent.ID.String()+`", "billingConfirmed": true}`))
	rec := httptest.NewRecorder()

	h.Publish(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["requiresBilling"] != false {
		t.Errorf("requiresBilling = %v, want false", body["requiresBilling"])
	}
	if eleven.syncCalls != 1 {
		t.Errorf("vendor sync calls = %d, want 1", eleven.syncCalls)
	}
	if len(sys.published) != 1 {
		t.Fatalf("published agents = %d, want 1", len(sys.published))
	}
	if bound := sys.elevenBound[agent.ID]; bound == nil || *bound != "el-123" {
		t.Errorf("elevenlabs binding = %v, want el-123", bound)
	}
}

func TestPublish_RepublishSkipsBillingGate(t *testing.T) {
	sys := newFakeSystem()
	first := time.Now().Add(-24 * time.Hour)
	bound := "el-existing"
	agent := &agents.Agent{
		ID:               uuid.New(),
		Name:             "Rex",
		Status:           agents.StatusPublished,
		FirstPublishedAt: &first,
		ElevenLabsID:     &bound,
	}
	sys.add(agent)

	eleven := &fakeElevenSyncer{vendorID: "el-existing"}
	h := newTestHandler(sys, eleven, &fakeVapiSyncer{})

	req := httptest.NewRequest(http.MethodPost, "/api/agents/publish",
		strings.NewReader(`{"agentId": "`+agent.ID.String()+`"}`))
	rec := httptest.NewRecorder()

	h.Publish(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["requiresBilling"] != false {
		t.Errorf("requiresBilling = %v, want false on republish", body["requiresBilling"])
	}
	if eleven.syncCalls != 1 {
		t.Errorf("vendor sync calls = %d, want 1", eleven.syncCalls)
	}
}

func TestPublish_VendorFailureAborts(t *testing.T) {
	sys := newFakeSystem()
	agent := &agents.Agent{ID: uuid.New(), Name: "Rex"}
	sys.add(agent)

	eleven := &fakeElevenSyncer{err: &agents.SyncError{Vendor: "elevenlabs", Status: 422, Body: "bad voice"}}
	h := newTestHandler(sys, eleven, &fakeVapiSyncer{})

	req := httptest.NewRequest(http.MethodPost, "/api/agents/publish",
		strings.NewReader(`{"agentId": "`+agent.ID.String()+`", "billingConfirmed": true}`))
	rec := httptest.NewRecorder()

	h.Publish(rec, req)

	if rec.Code != 422 {
		t.Errorf("status = %d, want vendor status 422", rec.Code)
	}
	if len(sys.published) != 0 {
		t.Error("agent published despite vendor failure")
	}
}

func TestPublish_NotFound(t *testing.T) {
	h := newTestHandler(newFakeSystem(), &fakeElevenSyncer{}, &fakeVapiSyncer{})

	id := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/agents/publish",
		strings.NewReader(`{"agentId": "`+id.String()+`"}`))
	rec := httptest.NewRecorder()

	h.Publish(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSyncElevenLabs_UpdatesBinding(t *testing.T) {
	sys := newFakeSystem()
	agent := &agents.Agent{ID: uuid.New(), Name: "Rex"}
	sys.add(agent)

	eleven := &fakeElevenSyncer{vendorID: "el-456"}
	h := newTestHandler(sys, eleven, &fakeVapiSyncer{})

	req := httptest.NewRequest(http.MethodPost, "/api/agents/sync/elevenlabs",
		strings.NewReader(`{"agentId": "`+agent.ID.String()+`"}`))
	rec := httptest.NewRecorder()

	h.SyncElevenLabs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["elevenLabsAgentId"] != "el-456" {
		t.Errorf("elevenLabsAgentId = %v, want el-456", body["elevenLabsAgentId"])
	}
	if bound := sys.elevenBound[agent.ID]; bound == nil || *bound != "el-456" {
		t.Errorf("binding = %v, want el-456", bound)
	}
}

func TestSyncVapi_UpdatesBinding(t *testing.T) {
	sys := newFakeSystem()
	agent := &agents.Agent{ID: uuid.New(), Name: "Rex", Tier: 3}
	sys.add(agent)
	sys.caps[agent.ID] = &agents.Capabilities{AgentID: agent.ID, CanSendEmail: true}

	vapiSyncer := &fakeVapiSyncer{assistantID: "asst-789"}
	h := newTestHandler(sys, &fakeElevenSyncer{}, vapiSyncer)

	req := httptest.NewRequest(http.MethodPost, "/api/agents/sync/vapi",
		strings.NewReader(`{"agentId": "`+agent.ID.String()+`"}`))
	rec := httptest.NewRecorder()

	h.SyncVapi(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["vapiAssistantId"] != "asst-789" {
		t.Errorf("vapiAssistantId = %v, want asst-789", body["vapiAssistantId"])
	}
	if bound := sys.vapiBound[agent.ID]; bound == nil || *bound != "asst-789" {
		t.Errorf("binding = %v, want asst-789", bound)
	}
}

func TestSync_MissingAgentID(t *testing.T) {
	h := newTestHandler(newFakeSystem(), &fakeElevenSyncer{}, &fakeVapiSyncer{})

	req := httptest.NewRequest(http.MethodPost, "/api/agents/sync/elevenlabs", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.SyncElevenLabs(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRecreateElevenLabs(t *testing.T) {
	sys := newFakeSystem()
	bound := "el-old"
	agent := &agents.Agent{ID: uuid.New(), Name: "Rex", ElevenLabsID: &bound}
	sys.add(agent)

	eleven := &fakeElevenSyncer{vendorID: "el-new"}
	h := newTestHandler(sys, eleven, &fakeVapiSyncer{})

	req := httptest.NewRequest(http.MethodPost, "/api/agents/recreate-elevenlabs",
		strings.NewReader(`{"agentId": "`+agent.ID.String()+`"}`))
	rec := httptest.NewRecorder()

	h.RecreateElevenLabs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if eleven.recreateCalls != 1 {
		t.Errorf("recreate calls = %d, want 1", eleven.recreateCalls)
	}
	if bound := sys.elevenBound[agent.ID]; bound == nil || *bound != "el-new" {
		t.Errorf("binding = %v, want el-new", bound)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Agent recreated successfully with new system prompt" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestCreate_VapiFailureDoesNotFailSave(t *testing.T) {
	sys := newFakeSystem()
	vapiSyncer := &fakeVapiSyncer{err: agents.ErrVendorNotConfigured}
	h := newTestHandler(sys, &fakeElevenSyncer{}, vapiSyncer)

	cmd := map[string]any{
		"organization_id": uuid.New(),
		"venue_id":        uuid.New(),
		"name":            "Rex",
		"slug":            "rex-the-t-rex",
		"tier":            2,
	}
	payload, _ := json.Marshal(cmd)

	req := httptest.NewRequest(http.MethodPost, "/api/agents", strings.NewReader(string(payload)))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if vapiSyncer.syncCalls != 1 {
		t.Errorf("vapi sync calls = %d, want 1", vapiSyncer.syncCalls)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v, want true despite vendor failure", body["success"])
	}
}

func TestUpdate_SyncsVapiBinding(t *testing.T) {
	sys := newFakeSystem()
	agent := &agents.Agent{ID: uuid.New(), Name: "Rex", Tier: 2}
	sys.add(agent)

	vapiSyncer := &fakeVapiSyncer{assistantID: "asst-1"}
	h := newTestHandler(sys, &fakeElevenSyncer{}, vapiSyncer)

	req := httptest.NewRequest(http.MethodPut, "/api/agents/"+agent.ID.String(),
		strings.NewReader(`{"name": "Rex Renamed"}`))
	req.SetPathValue("id", agent.ID.String())
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if bound := sys.vapiBound[agent.ID]; bound == nil || *bound != "asst-1" {
		t.Errorf("binding = %v, want asst-1", bound)
	}
}
