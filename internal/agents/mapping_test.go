package agents_test

import (
	"net/url"
	"testing"

	"github.com/docentlabs/docent/internal/agents"
	"github.com/google/uuid"
)

func TestFiltersFromQuery(t *testing.T) {
	orgID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	venueID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	tests := []struct {
		name       string
		query      string
		wantOrg    *uuid.UUID
		wantVenue  *uuid.UUID
		wantStatus string
		wantTier   int
	}{
		{"empty query", "", nil, nil, "", 0},
		{
			"organization filter",
			"organization_id=11111111-1111-1111-1111-111111111111",
			&orgID, nil, "", 0,
		},
		{
			"all filters",
			"organization_id=11111111-1111-1111-1111-111111111111&venue_id=22222222-2222-2222-2222-222222222222&status=published&tier=3",
			&orgID, &venueID, "published", 3,
		},
		{"malformed organization ignored", "organization_id=nope", nil, nil, "", 0},
		{"malformed tier ignored", "tier=gold", nil, nil, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}

			f := agents.FiltersFromQuery(values)

			if (f.OrganizationID == nil) != (tt.wantOrg == nil) {
				t.Errorf("OrganizationID = %v, want %v", f.OrganizationID, tt.wantOrg)
			} else if tt.wantOrg != nil && *f.OrganizationID != *tt.wantOrg {
				t.Errorf("OrganizationID = %v, want %v", *f.OrganizationID, *tt.wantOrg)
			}

			if (f.VenueID == nil) != (tt.wantVenue == nil) {
				t.Errorf("VenueID = %v, want %v", f.VenueID, tt.wantVenue)
			}

			if tt.wantStatus == "" {
				if f.Status != nil {
					t.Errorf("Status = %v, want nil", *f.Status)
				}
			} else if f.Status == nil || *f.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %q", f.Status, tt.wantStatus)
			}

			if tt.wantTier == 0 {
				if f.Tier != nil {
					t.Errorf("Tier = %v, want nil", *f.Tier)
				}
			} else if f.Tier == nil || *f.Tier != tt.wantTier {
				t.Errorf("Tier = %v, want %d", f.Tier, tt.wantTier)
			}
		})
	}
}
