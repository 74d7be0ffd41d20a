package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/muse/internal/models"
)

var (
	_ list.Item = noteItem{}
)

// noteItem wraps [models.Note] to implement [list.Item].
type noteItem struct {
	note *models.Note
}

func (i noteItem) FilterValue() string { return i.note.Content }

// Title is the first non-blank line of the note.
func (i noteItem) Title() string {
	for line := range strings.Lines(i.note.Content) {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return fmt.Sprintf("Note %d", i.note.ID)
}

func (i noteItem) Description() string {
	desc := fmt.Sprintf("#%d", i.note.ID)
	if !i.note.UpdatedAt.IsZero() {
		desc = fmt.Sprintf("%s • updated %s", desc, i.note.UpdatedAt.Local().Format("Jan 02, 2006 15:04"))
	}
	return desc
}
