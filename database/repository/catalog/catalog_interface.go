package catalogRepo

import (
	"context"

	"leasely/models"
)

// CatalogRepository is the read-only port onto the centre/space catalog.
// The search core never mutates catalog data.
type CatalogRepository interface {
	// ListCentresByName returns centres whose name, suburb or city contains
	// the phrase (case-insensitive), optionally restricted to a state code.
	// An empty phrase with a state returns all centres in that state.
	ListCentresByName(ctx context.Context, phrase, state string) ([]models.Centre, error)

	// ListCentresByIDs resolves centres for a set of ids.
	ListCentresByIDs(ctx context.Context, ids []string) ([]models.Centre, error)

	// AllCentres returns the full centre gazetteer, used by the suggestion
	// and autocomplete index.
	AllCentres(ctx context.Context) ([]models.Centre, error)

	// ListSpacesByCentre returns a centre's spaces of the given asset type.
	ListSpacesByCentre(ctx context.Context, centreID string, asset models.AssetType) ([]models.Space, error)

	// SearchSpacesByText returns spaces whose description or identifier
	// matches the free text, optionally restricted by approved category and
	// state.
	SearchSpacesByText(ctx context.Context, text, categoryID, state string) ([]models.Space, error)

	// ApprovedCategoryIDs returns the category policy for a space.
	ApprovedCategoryIDs(ctx context.Context, spaceID string) (models.CategoryPolicy, error)
}
