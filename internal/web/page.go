package web

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/muse/internal/shared"
)

const (
	addPageToken    = "add_text"
	editTokenPrefix = "edit_text/"
)

// Page identifies the note editor that started a catalog lookup.
//
// It round-trips through forms as an opaque token: "add_text" or "edit_text/<id>".
type Page struct {
	NoteID int64 // Zero for the add editor
}

// ParsePage decodes a page token.
func ParsePage(token string) (Page, error) {
	if token == addPageToken {
		return Page{}, nil
	}

	raw, ok := strings.CutPrefix(token, editTokenPrefix)
	if !ok {
		return Page{}, fmt.Errorf("%w: %q", shared.ErrInvalidPage, token)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return Page{}, fmt.Errorf("%w: %q", shared.ErrInvalidPage, token)
	}
	return Page{NoteID: id}, nil
}

// EditPage returns the page for the editor of note id.
func EditPage(id int64) Page {
	return Page{NoteID: id}
}

// IsEdit reports whether p names the edit editor.
func (p Page) IsEdit() bool {
	return p.NoteID > 0
}

// Token encodes p for a form field.
func (p Page) Token() string {
	if p.IsEdit() {
		return editTokenPrefix + strconv.FormatInt(p.NoteID, 10)
	}
	return addPageToken
}

// Path returns the editor URL for p.
func (p Page) Path() string {
	return "/" + p.Token()
}

// redirectPath returns the editor URL for token, or "/" when the token is malformed.
func redirectPath(token string) string {
	p, err := ParsePage(token)
	if err != nil {
		return "/"
	}
	return p.Path()
}
