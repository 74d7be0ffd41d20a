package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// WorkflowState tags where a catalog lookup currently stands.
type WorkflowState int

const (
	WorkflowIdle     WorkflowState = iota // nothing searched yet, or the selection expired
	WorkflowResults                       // an artist search produced a pick list
	WorkflowEnriched                      // a work was picked and its relations fetched
)

var workflowStateNames = map[WorkflowState]string{
	WorkflowIdle:     "idle",
	WorkflowResults:  "results",
	WorkflowEnriched: "enriched",
}

func (s WorkflowState) String() string {
	if name, ok := workflowStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("WorkflowState(%d)", int(s))
}

// MarshalJSON encodes the state by name so stored sessions stay readable.
func (s WorkflowState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a state name. Unknown names decode as [WorkflowIdle].
func (s *WorkflowState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*s = WorkflowIdle
	for state, n := range workflowStateNames {
		if n == name {
			*s = state
		}
	}
	return nil
}

// WorkflowSelection is the in-progress catalog selection kept in a user's session.
//
// It is overwritten wholesale by each search and is only ever read to render display panels.
// It never changes a note's stored content.
type WorkflowSelection struct {
	State          WorkflowState `json:"state"`
	SelectedArtist string        `json:"selected_artist,omitempty"`
	SelectedWorkID string        `json:"selected_work_id,omitempty"`
	WorkInfo       *WorkInfo     `json:"work_info,omitempty"`
	RecordingID    string        `json:"recording_id,omitempty"`
	TitleWorkPairs []CatalogWork `json:"title_work_pairs,omitempty"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Expired reports whether the selection is older than ttl. A non-positive ttl never expires.
func (w WorkflowSelection) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 || w.State == WorkflowIdle {
		return false
	}
	return now.Sub(w.UpdatedAt) > ttl
}

// Current returns the selection, or an idle one if it has expired.
func (w WorkflowSelection) Current(now time.Time, ttl time.Duration) WorkflowSelection {
	if w.Expired(now, ttl) {
		return WorkflowSelection{}
	}
	return w
}

// HasResults reports whether a pick list should be shown.
func (w WorkflowSelection) HasResults() bool {
	return w.State == WorkflowResults || w.State == WorkflowEnriched
}

// Enriched reports whether work details are available.
func (w WorkflowSelection) Enriched() bool {
	return w.State == WorkflowEnriched
}
