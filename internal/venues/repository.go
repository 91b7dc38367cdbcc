package venues

import (
	"context"
	"database/sql"
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

// New creates the venues System backed by PostgreSQL.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "venues"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Venue], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "DisplayName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count venues: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanVenue)
	if err != nil {
		return nil, fmt.Errorf("query venues: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Venue, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("ID", id)

	venue, err := repository.QueryOne(ctx, r.db, q, args, scanVenue)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &venue, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Venue, error) {
	q := `
		INSERT INTO venues (organization_id, display_name, kind)
		VALUES ($1, $2, $3)
		RETURNING id, organization_id, display_name, kind, background_image_key,
			created_at, updated_at`

	venue, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Venue, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			cmd.OrganizationID, cmd.DisplayName, cmd.Kind,
		}, scanVenue)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("venue created", "id", venue.ID, "display_name", venue.DisplayName)
	return &venue, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Venue, error) {
	q := `
		UPDATE venues
		SET display_name = $2, kind = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, organization_id, display_name, kind, background_image_key,
			created_at, updated_at`

	venue, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Venue, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, cmd.DisplayName, cmd.Kind}, scanVenue)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("venue updated", "id", venue.ID, "display_name", venue.DisplayName)
	return &venue, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM venues WHERE id = $1`

	if err := repository.ExecExpectOne(ctx, r.db, q, id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("venue deleted", "id", id)
	return nil
}

func (r *repo) SetBackgroundImageKey(ctx context.Context, id uuid.UUID, key *string) error {
	q := `UPDATE venues SET background_image_key = $2, updated_at = NOW() WHERE id = $1`

	if err := repository.ExecExpectOne(ctx, r.db, q, id, key); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("venue background image set", "id", id, "bound", key != nil)
	return nil
}
