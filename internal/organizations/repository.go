package organizations

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

// New creates the organizations System backed by PostgreSQL.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "organizations"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Organization], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name")

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count organizations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanOrganization)
	if err != nil {
		return nil, fmt.Errorf("query organizations: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Organization, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("ID", id)

	org, err := repository.QueryOne(ctx, r.db, q, args, scanOrganization)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &org, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Organization, error) {
	q := `
		INSERT INTO organizations (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at`

	org, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Organization, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Name}, scanOrganization)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("organization created", "id", org.ID, "name", org.Name)
	return &org, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Organization, error) {
	q := `
		UPDATE organizations
		SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, created_at, updated_at`

	org, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Organization, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, cmd.Name}, scanOrganization)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("organization updated", "id", org.ID, "name", org.Name)
	return &org, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM organizations WHERE id = $1`

	if err := repository.ExecExpectOne(ctx, r.db, q, id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("organization deleted", "id", id)
	return nil
}
