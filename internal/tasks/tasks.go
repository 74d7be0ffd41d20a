// package tasks implements the catalog lookup workflow that attaches music metadata to a note.
//
// The core abstraction is LookupEngine, which moves a [models.WorkflowSelection] from idle to results to enriched.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/muse/internal/models"
	"github.com/desertthunder/muse/internal/services"
	"github.com/desertthunder/muse/internal/shared"
)

// Lookup defines the catalog workflow transitions.
type Lookup interface {
	// Search runs an artist search and returns a fresh selection in the results state.
	Search(ctx context.Context, artist string, progress chan<- ProgressUpdate) models.WorkflowSelection

	// SelectWork enriches sel with the relations and first recording of workID.
	SelectWork(ctx context.Context, sel models.WorkflowSelection, workID, artist string, progress chan<- ProgressUpdate) models.WorkflowSelection
}

// LookupEngine implements [Lookup] on top of a [services.Catalog].
//
// Catalog failures never surface as errors. They are logged and degrade to empty results.
type LookupEngine struct {
	catalog services.Catalog
	logger  *log.Logger
	now     func() time.Time
}

// NewLookupEngine creates a LookupEngine for catalog.
func NewLookupEngine(catalog services.Catalog, logger *log.Logger) *LookupEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &LookupEngine{
		catalog: catalog,
		logger:  shared.WithLogger(logger, "component", "lookup"),
		now:     time.Now,
	}
}

// WithClock replaces the engine's time source.
func (e *LookupEngine) WithClock(now func() time.Time) *LookupEngine {
	e.now = now
	return e
}

// sendProgress sends a progress update through the channel without blocking.
func (e *LookupEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Search replaces any previous selection with the works of the first artist matching artist.
func (e *LookupEngine) Search(ctx context.Context, artist string, progress chan<- ProgressUpdate) models.WorkflowSelection {
	sel := models.WorkflowSelection{
		State:          models.WorkflowResults,
		SelectedArtist: artist,
		TitleWorkPairs: []models.CatalogWork{},
		UpdatedAt:      e.now(),
	}

	e.sendProgress(progress, searchArtistUpdate(artist))

	works, err := e.catalog.SearchArtistWorks(ctx, artist)
	if err != nil {
		e.logger.Warn("artist search failed, showing no results", "artist", artist, "error", err)
		e.sendProgress(progress, worksFoundUpdate(0))
		return sel
	}

	sel.TitleWorkPairs = works
	e.sendProgress(progress, worksFoundUpdate(len(works)))
	return sel
}

// SelectWork fetches relations and the first recording for workID.
//
// The pick list of sel is kept so the editor can still show it.
func (e *LookupEngine) SelectWork(ctx context.Context, sel models.WorkflowSelection, workID, artist string, progress chan<- ProgressUpdate) models.WorkflowSelection {
	next := models.WorkflowSelection{
		State:          models.WorkflowEnriched,
		SelectedArtist: artist,
		SelectedWorkID: workID,
		TitleWorkPairs: sel.TitleWorkPairs,
	}

	e.sendProgress(progress, fetchRelationsUpdate(workID))

	info, err := e.catalog.WorkRelations(ctx, workID)
	switch {
	case err != nil:
		e.logger.Warn("work relations lookup failed", "work_id", workID, "error", err)
		info = &models.WorkInfo{Relations: []models.CatalogRelation{}, Error: err.Error()}
	case info == nil:
		info = &models.WorkInfo{Relations: []models.CatalogRelation{}}
	case info.Relations == nil:
		info.Relations = []models.CatalogRelation{}
	}
	next.WorkInfo = info

	e.sendProgress(progress, fetchRecordingUpdate(workID))

	recordingID, err := e.catalog.FirstRecordingID(ctx, workID)
	if err != nil {
		e.logger.Warn("recording lookup failed, treating as absent", "work_id", workID, "error", err)
		recordingID = ""
	}
	next.RecordingID = recordingID
	next.UpdatedAt = e.now()

	e.sendProgress(progress, enrichedUpdate(len(info.Relations), recordingID))
	return next
}
