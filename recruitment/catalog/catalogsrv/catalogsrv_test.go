package catalogsrv

import (
	"context"
	"errors"
	"testing"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/aarifhsn/nexthire-backend/recruitment/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	skills    []string
	locations []string
	err       error
}

func (s stubSource) JobSkills(ctx context.Context) ([]string, error)    { return s.skills, s.err }
func (s stubSource) JobLocations(ctx context.Context) ([]string, error) { return s.locations, s.err }

func TestSkillsMergesStaticList(t *testing.T) {
	svc := NewCatalogService(stubSource{skills: []string{"Go", "Elixir", "Zig"}})

	skills, err := svc.Skills(context.Background())
	require.NoError(t, err)
	assert.Len(t, skills, len(catalog.StaticSkills)+2)
	assert.IsIncreasing(t, skills)
	assert.Contains(t, skills, "Elixir")
}

func TestLocationsNeverNil(t *testing.T) {
	svc := NewCatalogService(stubSource{})

	locations, err := svc.Locations(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, locations)
	assert.Empty(t, locations)
}

func TestSourceErrorsAreInternal(t *testing.T) {
	svc := NewCatalogService(stubSource{err: errors.New("db down")})

	_, err := svc.Skills(context.Background())
	assert.True(t, errx.IsType(err, errx.TypeInternal))

	_, err = svc.Locations(context.Background())
	assert.True(t, errx.IsType(err, errx.TypeInternal))
}
