package cataloginfra

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresCatalogSource implements catalog.Source over the jobs table
type PostgresCatalogSource struct {
	db *sqlx.DB
}

// NewPostgresCatalogSource creates a new PostgreSQL catalog source
func NewPostgresCatalogSource(db *sqlx.DB) *PostgresCatalogSource {
	return &PostgresCatalogSource{
		db: db,
	}
}

// JobSkills returns every distinct skill listed by any job
func (s *PostgresCatalogSource) JobSkills(ctx context.Context) ([]string, error) {
	var skills []string
	query := `SELECT DISTINCT jsonb_array_elements_text(skills) FROM jobs`
	if err := s.db.SelectContext(ctx, &skills, query); err != nil {
		return nil, fmt.Errorf("failed to list job skills: %w", err)
	}
	return skills, nil
}

// JobLocations returns distinct non-empty job locations in ascending order
func (s *PostgresCatalogSource) JobLocations(ctx context.Context) ([]string, error) {
	var locations []string
	query := `SELECT DISTINCT location FROM jobs WHERE location <> '' ORDER BY location ASC`
	if err := s.db.SelectContext(ctx, &locations, query); err != nil {
		return nil, fmt.Errorf("failed to list job locations: %w", err)
	}
	return locations, nil
}
