package agents

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/docentlabs/docent/pkg/pagination"
	"github.com/docentlabs/docent/pkg/query"
	"github.com/docentlabs/docent/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates the agents System backed by PostgreSQL.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "agents"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Slug")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count agents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAgent)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Agent, error) {
	q := fmt.Sprintf(`
		SELECT %s, COALESCE(v.display_name, '')
		FROM agents a
		LEFT JOIN venues v ON v.id = a.venue_id
		WHERE a.id = $1`, agentColumns)

	agent, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanAgentWithVenue)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &agent, nil
}

func (r *repo) FindBySlug(ctx context.Context, slug string) (*Agent, error) {
	q := fmt.Sprintf(`
		SELECT %s, COALESCE(v.display_name, '')
		FROM agents a
		LEFT JOIN venues v ON v.id = a.venue_id
		WHERE a.slug = $1`, agentColumns)

	agent, err := repository.QueryOne(ctx, r.db, q, []any{slug}, scanAgentWithVenue)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &agent, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Agent, error) {
	facts, settings, err := marshalAgentJSON(cmd.ImportantFacts, cmd.VoiceSettings)
	if err != nil {
		return nil, err
	}
	if err := validateManifest(cmd.Capabilities); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		INSERT INTO agents AS a (
			organization_id, venue_id, name, slug, tier, bio, persona, do_nots,
			important_facts, welcome_message, end_script, voice, voice_label,
			voice_settings, voice_platform, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, 'draft')
		RETURNING %s`, agentColumns)

	agent, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Agent, error) {
		agent, err := repository.QueryOne(ctx, tx, q, []any{
			cmd.OrganizationID, cmd.VenueID, cmd.Name, cmd.Slug, cmd.Tier,
			cmd.Bio, cmd.Persona, cmd.DoNots, facts, cmd.WelcomeMessage,
			cmd.EndScript, cmd.Voice, cmd.VoiceLabel, settings, cmd.VoicePlatform,
		}, scanAgent)
		if err != nil {
			return agent, err
		}
		if cmd.Capabilities != nil {
			if err := upsertCapabilities(ctx, tx, agent.ID, *cmd.Capabilities); err != nil {
				return agent, err
			}
		}
		return agent, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent created", "id", agent.ID, "slug", agent.Slug, "tier", agent.Tier)
	return &agent, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Agent, error) {
	facts, settings, err := marshalAgentJSON(cmd.ImportantFacts, cmd.VoiceSettings)
	if err != nil {
		return nil, err
	}
	if err := validateManifest(cmd.Capabilities); err != nil {
		return nil, err
	}
	if len(cmd.LandingSpec) > 0 && !json.Valid(cmd.LandingSpec) {
		return nil, ErrInvalidManifest
	}

	q := fmt.Sprintf(`
		UPDATE agents a
		SET name = $2, tier = $3, bio = $4, persona = $5, do_nots = $6,
			important_facts = $7, welcome_message = $8, end_script = $9,
			voice = $10, voice_label = $11, voice_settings = $12,
			voice_platform = $13,
			landing_spec = COALESCE($14, landing_spec),
			updated_at = NOW()
		WHERE a.id = $1
		RETURNING %s`, agentColumns)

	var landing any
	if len(cmd.LandingSpec) > 0 {
		landing = []byte(cmd.LandingSpec)
	}

	agent, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Agent, error) {
		agent, err := repository.QueryOne(ctx, tx, q, []any{
			id, cmd.Name, cmd.Tier, cmd.Bio, cmd.Persona, cmd.DoNots,
			facts, cmd.WelcomeMessage, cmd.EndScript, cmd.Voice,
			cmd.VoiceLabel, settings, cmd.VoicePlatform, landing,
		}, scanAgent)
		if err != nil {
			return agent, err
		}
		if cmd.Capabilities != nil {
			if err := upsertCapabilities(ctx, tx, agent.ID, *cmd.Capabilities); err != nil {
				return agent, err
			}
		}
		return agent, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent updated", "id", agent.ID, "slug", agent.Slug)
	return &agent, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM agents WHERE id = $1`

	if err := repository.ExecExpectOne(ctx, r.db, q, id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent deleted", "id", id)
	return nil
}

func (r *repo) Capabilities(ctx context.Context, agentID uuid.UUID) (*Capabilities, error) {
	q := `
		SELECT agent_id, can_send_email, can_send_sms, can_take_orders,
			can_post_social, function_manifest
		FROM agent_capabilities
		WHERE agent_id = $1`

	caps, err := repository.QueryOne(ctx, r.db, q, []any{agentID}, scanCapabilities)
	if err != nil {
		mapped := repository.MapError(err, ErrNotFound, ErrDuplicate)
		if mapped == ErrNotFound {
			// No row means no capabilities granted.
			return &Capabilities{AgentID: agentID}, nil
		}
		return nil, mapped
	}
	return &caps, nil
}

func (r *repo) SetElevenLabsID(ctx context.Context, agentID uuid.UUID, vendorID *string) error {
	q := `UPDATE agents SET elevenlabs_agent_id = $2, updated_at = NOW() WHERE id = $1`

	if err := repository.ExecExpectOne(ctx, r.db, q, agentID, vendorID); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("elevenlabs binding set", "agent_id", agentID, "bound", vendorID != nil)
	return nil
}

func (r *repo) SetVapiAssistantID(ctx context.Context, agentID uuid.UUID, vendorID *string) error {
	q := `UPDATE agents SET vapi_assistant_id = $2, updated_at = NOW() WHERE id = $1`

	if err := repository.ExecExpectOne(ctx, r.db, q, agentID, vendorID); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("vapi binding set", "agent_id", agentID, "bound", vendorID != nil)
	return nil
}

func (r *repo) Publish(ctx context.Context, id uuid.UUID) (*Agent, error) {
	q := fmt.Sprintf(`
		UPDATE agents a
		SET status = 'published',
			first_published_at = COALESCE(first_published_at, NOW()),
			updated_at = NOW()
		WHERE a.id = $1
		RETURNING %s`, agentColumns)

	agent, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Agent, error) {
		return repository.QueryOne(ctx, tx, q, []any{id}, scanAgent)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent published", "id", agent.ID, "first_published_at", agent.FirstPublishedAt)
	return &agent, nil
}

func upsertCapabilities(ctx context.Context, tx *sql.Tx, agentID uuid.UUID, cmd CapabilitiesCommand) error {
	q := `
		INSERT INTO agent_capabilities (
			agent_id, can_send_email, can_send_sms, can_take_orders,
			can_post_social, function_manifest
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (agent_id)
		DO UPDATE SET can_send_email = $2, can_send_sms = $3,
			can_take_orders = $4, can_post_social = $5, function_manifest = $6`

	var manifest any
	if len(cmd.FunctionManifest) > 0 {
		manifest = []byte(cmd.FunctionManifest)
	}

	if _, err := tx.ExecContext(ctx, q,
		agentID, cmd.CanSendEmail, cmd.CanSendSMS,
		cmd.CanTakeOrders, cmd.CanPostSocial, manifest,
	); err != nil {
		return fmt.Errorf("upsert capabilities: %w", err)
	}
	return nil
}

func validateManifest(cmd *CapabilitiesCommand) error {
	if cmd == nil || len(cmd.FunctionManifest) == 0 {
		return nil
	}
	if !json.Valid(cmd.FunctionManifest) {
		return ErrInvalidManifest
	}
	return nil
}

func marshalAgentJSON(facts []string, settings VoiceSettings) ([]byte, []byte, error) {
	if facts == nil {
		facts = []string{}
	}
	factsJSON, err := json.Marshal(facts)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal important facts: %w", err)
	}
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal voice settings: %w", err)
	}
	return factsJSON, settingsJSON, nil
}
