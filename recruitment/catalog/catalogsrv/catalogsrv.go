package catalogsrv

import (
	"context"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/aarifhsn/nexthire-backend/recruitment/catalog"
)

// CatalogService builds the skill and location pick lists
type CatalogService struct {
	source catalog.Source
}

// NewCatalogService creates a new instance of the catalog service
func NewCatalogService(source catalog.Source) *CatalogService {
	return &CatalogService{
		source: source,
	}
}

// Skills returns the static skills merged with every job skill
func (s *CatalogService) Skills(ctx context.Context) ([]string, error) {
	jobSkills, err := s.source.JobSkills(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load skills", errx.TypeInternal)
	}
	return catalog.MergeSkills(catalog.StaticSkills, jobSkills), nil
}

// Locations returns the distinct job locations
func (s *CatalogService) Locations(ctx context.Context) ([]string, error) {
	locations, err := s.source.JobLocations(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load locations", errx.TypeInternal)
	}
	if locations == nil {
		locations = []string{}
	}
	return locations, nil
}
