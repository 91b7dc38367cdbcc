package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

func init() {
	registerSeeder(&ExhibitSeeder{})
}

// ExhibitSeeder populates a demo organization, venue, and exhibit agents
// across all three tiers.
type ExhibitSeeder struct{}

func (s *ExhibitSeeder) Name() string {
	return "exhibits"
}

func (s *ExhibitSeeder) Description() string {
	return "Seeds a demo organization, venue, and exhibit agents"
}

func (s *ExhibitSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	var orgID uuid.UUID
	err := tx.QueryRowContext(ctx, `
		INSERT INTO organizations (name)
		VALUES ('Natural History Museum')
		ON CONFLICT (name) DO UPDATE SET updated_at = NOW()
		RETURNING id`).Scan(&orgID)
	if err != nil {
		return fmt.Errorf("seed organization: %w", err)
	}

	var venueID uuid.UUID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO venues (organization_id, display_name, kind)
		VALUES ($1, 'Dinosaur Hall', 'exhibit_hall')
		RETURNING id`, orgID).Scan(&venueID)
	if err != nil {
		return fmt.Errorf("seed venue: %w", err)
	}

	agents := []struct {
		name  string
		slug  string
		tier  int
		bio   string
		facts string
	}{
		{
			name:  "Rex the T-Rex",
			slug:  "rex-the-t-rex",
			tier:  3,
			bio:   "A 67-million-year-old Tyrannosaurus rex skeleton discovered in Montana.",
			facts: `["I am over 40 feet long", "My bite force was over 12,000 pounds", "I lived during the Late Cretaceous period"]`,
		},
		{
			name:  "Terra the Triceratops",
			slug:  "terra-the-triceratops",
			tier:  2,
			bio:   "A Triceratops with one of the most complete frills ever found.",
			facts: `["My frill could grow over 7 feet wide", "I was an herbivore"]`,
		},
		{
			name:  "Sue the Stegosaurus",
			slug:  "sue-the-stegosaurus",
			tier:  1,
			bio:   "A Stegosaurus known for her seventeen back plates.",
			facts: `["My brain was the size of a walnut", "My tail spikes are called a thagomizer"]`,
		},
	}

	for _, a := range agents {
		var agentID uuid.UUID
		err := tx.QueryRowContext(ctx, `
			INSERT INTO agents (
				organization_id, venue_id, name, slug, tier, bio,
				persona, important_facts, welcome_message, end_script
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (slug) DO UPDATE SET updated_at = NOW()
			RETURNING id`,
			orgID, venueID, a.name, a.slug, a.tier, a.bio,
			"You are enthusiastic about prehistoric life and love sharing what you know.",
			a.facts,
			fmt.Sprintf("Hello! I'm %s. Ask me anything about my time!", a.name),
			"Thanks for visiting! Come see me again soon!",
		).Scan(&agentID)
		if err != nil {
			return fmt.Errorf("seed agent %s: %w", a.slug, err)
		}

		if a.tier == 3 {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO agent_capabilities (agent_id, can_send_email, can_send_sms)
				VALUES ($1, true, true)
				ON CONFLICT (agent_id) DO NOTHING`, agentID); err != nil {
				return fmt.Errorf("seed capabilities %s: %w", a.slug, err)
			}
		}
	}

	return nil
}
