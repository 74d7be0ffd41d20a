package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a catalog lookup.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number
	Total   int    // Total steps in this operation
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	SearchArtist Phase = iota
	BrowseWorks
	FetchRelations
	FetchRecording
	Enriched
)

func (p Phase) String() string {
	switch p {
	case SearchArtist:
		return "search_artist"
	case BrowseWorks:
		return "browse_works"
	case FetchRelations:
		return "fetch_relations"
	case FetchRecording:
		return "fetch_recording"
	case Enriched:
		return "enriched"
	default:
		return ""
	}
}

func searchArtistUpdate(artist string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchArtist,
		Step:    1,
		Total:   2,
		Message: fmt.Sprintf("Searching catalog for %q...", artist),
	}
}

func worksFoundUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BrowseWorks,
		Step:    2,
		Total:   2,
		Message: fmt.Sprintf("Found %d works", count),
		Data:    count,
	}
}

func fetchRelationsUpdate(workID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRelations,
		Step:    1,
		Total:   3,
		Message: fmt.Sprintf("Fetching relations for work %s...", workID),
	}
}

func fetchRecordingUpdate(workID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRecording,
		Step:    2,
		Total:   3,
		Message: fmt.Sprintf("Fetching first recording of work %s...", workID),
	}
}

func enrichedUpdate(relations int, recordingID string) ProgressUpdate {
	msg := fmt.Sprintf("Found %d relations", relations)
	if recordingID != "" {
		msg += fmt.Sprintf(" and recording %s", recordingID)
	}
	return ProgressUpdate{
		Phase:   Enriched,
		Step:    3,
		Total:   3,
		Message: msg,
		Data:    relations,
	}
}
