// package models defines the data model for the muse notes service
package models

import (
	"strings"
	"time"

	"github.com/desertthunder/muse/internal/shared"
)

// User is a registered account. The password is only ever held as a bcrypt hash.
type User struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Note is a text note owned by one user.
type Note struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate rejects notes whose content is empty or whitespace-only.
func (n *Note) Validate() error {
	return ValidateContent(n.Content)
}

// ValidateContent rejects empty or whitespace-only note content.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return shared.ErrEmptyContent
	}
	return nil
}

// Catalog sentinels used when the web service omits a field.
const (
	NoName         = "No Name"
	NoSortName     = "No Sort Name"
	UnknownRelType = "Unknown"
)

// CatalogWork is one work returned by an artist search.
type CatalogWork struct {
	Title  string `json:"title"`
	WorkID string `json:"work_id"`
}

// CatalogRelation is a credited contributor attached to a work.
type CatalogRelation struct {
	RelationType string `json:"relation_type"`
	Name         string `json:"name"`
	SortName     string `json:"sort_name"`
}

// WorkInfo holds the relations of a work. A failed lookup is recorded in Error instead of being raised.
type WorkInfo struct {
	Relations []CatalogRelation `json:"relations"`
	Error     string            `json:"error,omitempty"`
}

// Failed reports whether the lookup produced an error record.
func (w *WorkInfo) Failed() bool {
	return w != nil && w.Error != ""
}
