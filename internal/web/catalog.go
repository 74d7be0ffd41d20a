package web

import (
	"net/http"
	"strings"

	"github.com/desertthunder/muse/internal/session"
)

// handleSearchArtist starts a new lookup and re-renders the editor named by the page token.
func (a *App) handleSearchArtist(w http.ResponseWriter, r *http.Request) {
	token := r.FormValue("page")
	p, err := ParsePage(token)
	if err != nil {
		a.logger.Warn("malformed page token", "page", token)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s := session.FromContext(r.Context())
	artist := strings.TrimSpace(r.FormValue("artist"))

	s.Data.Workflow = a.lookup.Search(r.Context(), artist, nil)
	a.saveSession(w, r, s)

	if !p.IsEdit() {
		a.renderEditor(w, r, p, "", "")
		return
	}

	note, err := a.notes.Get(r.Context(), p.NoteID, s.Data.Username)
	if err != nil {
		a.logNoteMiss(p.NoteID, s.Data.Username, err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	a.renderEditor(w, r, p, note.Content, "")
}

// handleWorkInfo enriches the session's selection with the chosen work and returns to its editor.
func (a *App) handleWorkInfo(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	workID := strings.TrimSpace(r.FormValue("work_id"))
	artist := strings.TrimSpace(r.FormValue("artist"))
	token := r.FormValue("page")

	if workID == "" {
		a.logger.Warn("work selection without id", "page", token)
		http.Redirect(w, r, redirectPath(token), http.StatusSeeOther)
		return
	}

	s.Data.Workflow = a.lookup.SelectWork(r.Context(), a.workflow(s), workID, artist, nil)
	a.saveSession(w, r, s)

	target := redirectPath(token)
	if target == "/" {
		a.logger.Warn("malformed page token", "page", token)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
