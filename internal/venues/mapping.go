package venues

import (
	"net/url"

	"github.com/docentlabs/docent/pkg/query"
	"github.com/docentlabs/docent/pkg/repository"
	"github.com/google/uuid"
)

var projection = query.
	NewProjectionMap("public", "venues", "v").
	Project("id", "ID").
	Project("organization_id", "OrganizationID").
	Project("display_name", "DisplayName").
	Project("kind", "Kind").
	Project("background_image_key", "BackgroundImageKey").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "DisplayName"}

func scanVenue(s repository.Scanner) (Venue, error) {
	var v Venue
	err := s.Scan(
		&v.ID, &v.OrganizationID, &v.DisplayName, &v.Kind,
		&v.BackgroundImageKey, &v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

// Filters narrows venue listings.
type Filters struct {
	OrganizationID *uuid.UUID
	Kind           *string
}

// FiltersFromQuery parses filters from URL query values.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if v := values.Get("organization_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.OrganizationID = &id
		}
	}
	if v := values.Get("kind"); v != "" {
		f.Kind = &v
	}
	return f
}

// Apply adds the filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.OrganizationID != nil {
		b.WhereEquals("OrganizationID", *f.OrganizationID)
	}
	if f.Kind != nil {
		b.WhereEquals("Kind", *f.Kind)
	}
	return b
}
