package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/desertthunder/muse/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

type views map[string]*template.Template

var pageTemplates = []string{
	"index.html",
	"editor.html",
	"login.html",
	"signin.html",
	"reset.html",
}

// PageData is the data handed to every page template.
type PageData struct {
	Title    string
	Username string
	Error    string
	Notes    []*models.Note
	Editor   *EditorData
}

// EditorData drives the add and edit editors.
type EditorData struct {
	Page         Page
	Action       string
	Content      string
	Workflow     models.WorkflowSelection
	RecordingURL string
}

func templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 02, 2006 15:04")
		},
		"truncate": func(s string, maxLen int) string {
			r := []rune(s)
			if len(r) <= maxLen {
				return s
			}
			if maxLen <= 3 {
				return string(r[:maxLen])
			}
			return string(r[:maxLen-3]) + "..."
		},
		"orUntitled": func(s string) string {
			if s == "" {
				return "(untitled)"
			}
			return s
		},
	}
}

// parseTemplates gives each page its own instance of the layout so content blocks don't collide.
func parseTemplates() (views, error) {
	out := make(views, len(pageTemplates))
	for _, page := range pageTemplates {
		tmpl, err := template.New("").Funcs(templateFuncMap()).ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		out[page] = tmpl
	}
	return out, nil
}

// render executes the layout of page with data.
func (a *App) render(w http.ResponseWriter, page string, data PageData) {
	tmpl, ok := a.views[page]
	if !ok {
		a.logger.Error("template not found", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		a.logger.Error("template error", "page", page, "error", err)
	}
}
