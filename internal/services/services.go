// package services defines interface Catalog for music metadata lookups over HTTP
package services

import (
	"context"

	"github.com/desertthunder/muse/internal/models"
)

// Catalog defines lookups against an external music catalog.
type Catalog interface {
	// SearchArtistWorks finds the first artist matching artistName and returns its works.
	// No matching artist yields an empty slice and a nil error.
	SearchArtistWorks(ctx context.Context, artistName string) ([]models.CatalogWork, error)

	// WorkRelations fetches the credited contributors of a work.
	// A non-success response is returned as a [models.WorkInfo] with Error set.
	WorkRelations(ctx context.Context, workID string) (*models.WorkInfo, error)

	// FirstRecordingID returns the id of the first recording of a work, or "" when there is none.
	FirstRecordingID(ctx context.Context, workID string) (string, error)

	// Name returns the name of the catalog (e.g., "MusicBrainz")
	Name() string
}
