package organizations

import (
	"github.com/docentlabs/docent/pkg/query"
	"github.com/docentlabs/docent/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "organizations", "o").
	Project("id", "ID").
	Project("name", "Name").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Name"}

func scanOrganization(s repository.Scanner) (Organization, error) {
	var o Organization
	err := s.Scan(&o.ID, &o.Name, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}
