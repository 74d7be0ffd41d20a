package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/desertthunder/muse/internal/models"
	"github.com/desertthunder/muse/internal/session"
	"github.com/desertthunder/muse/internal/shared"
)

const emptyContentMessage = "Content cannot be empty."

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	data := PageData{Title: "Notes", Username: s.Data.Username}

	if s.Authenticated() {
		notes, err := a.notes.ListForUser(r.Context(), s.Data.Username)
		if err != nil {
			a.logger.Error("failed to list notes", "user", s.Data.Username, "error", err)
			notes = []*models.Note{}
		}
		data.Notes = notes
	}

	a.render(w, "index.html", data)
}

func (a *App) handleAddForm(w http.ResponseWriter, r *http.Request) {
	a.renderEditor(w, r, Page{}, "", "")
}

func (a *App) handleAdd(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	content := r.FormValue("content")

	_, err := a.notes.Create(r.Context(), s.Data.Username, content)
	switch {
	case errors.Is(err, shared.ErrEmptyContent):
		a.renderEditor(w, r, Page{}, content, emptyContentMessage)
		return
	case err != nil:
		a.logger.Error("failed to create note", "user", s.Data.Username, "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) handleEditForm(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id, ok := a.noteID(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	note, err := a.notes.Get(r.Context(), id, s.Data.Username)
	if err != nil {
		a.logNoteMiss(id, s.Data.Username, err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	a.renderEditor(w, r, EditPage(note.ID), note.Content, "")
}

func (a *App) handleEdit(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id, ok := a.noteID(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	content := r.FormValue("content")

	rows, err := a.notes.Update(r.Context(), id, s.Data.Username, content)
	switch {
	case errors.Is(err, shared.ErrEmptyContent):
		a.renderEditor(w, r, EditPage(id), content, emptyContentMessage)
		return
	case err != nil:
		a.logger.Error("failed to update note", "id", id, "user", s.Data.Username, "error", err)
	case rows == 0:
		a.logger.Debug("update matched no owned note", "id", id, "user", s.Data.Username)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) handleDelete(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if id, ok := a.noteID(r); ok {
		rows, err := a.notes.Delete(r.Context(), id, s.Data.Username)
		switch {
		case err != nil:
			a.logger.Error("failed to delete note", "id", id, "user", s.Data.Username, "error", err)
		case rows == 0:
			a.logger.Debug("delete matched no owned note", "id", id, "user", s.Data.Username)
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderEditor shows the add or edit editor for p together with the session's catalog selection.
func (a *App) renderEditor(w http.ResponseWriter, r *http.Request, p Page, content, errMsg string) {
	s := session.FromContext(r.Context())

	wf := a.workflow(s)
	title := "Add note"
	if p.IsEdit() {
		title = "Edit note"
	}

	a.render(w, "editor.html", PageData{
		Title:    title,
		Username: s.Data.Username,
		Error:    errMsg,
		Editor: &EditorData{
			Page:         p,
			Action:       p.Path(),
			Content:      content,
			Workflow:     wf,
			RecordingURL: a.recordingURL(wf.RecordingID),
		},
	})
}

// noteID reads the {id} path segment.
func (a *App) noteID(r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		a.logger.Debug("ignoring malformed note id", "id", raw, "path", r.URL.Path)
		return 0, false
	}
	return id, true
}

func (a *App) logNoteMiss(id int64, username string, err error) {
	if errors.Is(err, shared.ErrNoteNotFound) {
		a.logger.Debug("note not found for user", "id", id, "user", username)
		return
	}
	a.logger.Error("failed to load note", "id", id, "user", username, "error", err)
}
