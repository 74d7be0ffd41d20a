// Package web serves the notes application and its catalog lookup workflow as server-rendered HTML.
//
// # Routes
//
//	GET       /                      → note listing, or the anonymous landing page
//	GET|POST  /add_text              → add editor (login required)
//	GET|POST  /edit_text/{id}        → edit editor, owner-filtered (login required)
//	POST      /delete_text/{id}      → owner-filtered delete, then back to /
//	POST      /search_artist         → catalog search, re-renders the editor named by page
//	POST      /get_work_info         → enrich the selection, redirect to the editor named by page
//	GET|POST  /login, /signin, /reset_password
//	GET       /logout
//	GET       /healthz
//
// # Session State
//
// The logged-in username and the catalog [models.WorkflowSelection] live in the session
// (internal/session). Editors read the selection to show display-only panels. It never changes a
// note's stored content.
//
// # Failure Handling
//
// Handlers never show raw errors. Missing or foreign notes and malformed page tokens redirect to /,
// form problems re-render the form with a message, and catalog failures show empty results. Each of
// these is logged.
package web

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/muse/internal/models"
	"github.com/desertthunder/muse/internal/server"
	"github.com/desertthunder/muse/internal/session"
	"github.com/desertthunder/muse/internal/shared"
	"github.com/desertthunder/muse/internal/tasks"
)

// NoteStore is the note persistence used by the handlers.
type NoteStore interface {
	ListForUser(ctx context.Context, username string) ([]*models.Note, error)
	Get(ctx context.Context, id int64, username string) (*models.Note, error)
	Create(ctx context.Context, username, content string) (*models.Note, error)
	Update(ctx context.Context, id int64, username, content string) (int64, error)
	Delete(ctx context.Context, id int64, username string) (int64, error)
}

// AccountStore is the credential store used by the auth handlers.
type AccountStore interface {
	Exists(ctx context.Context, username string) (bool, error)
	Verify(ctx context.Context, username, password string) (bool, error)
	Create(ctx context.Context, username, password string) error
	UpdatePassword(ctx context.Context, username, newPassword string) error
}

// Options holds the collaborators of an [App].
type Options struct {
	Notes       NoteStore
	Accounts    AccountStore
	Lookup      tasks.Lookup
	Sessions    *session.Manager
	Logger      *log.Logger
	WorkflowTTL time.Duration    // Zero keeps a selection for the life of the session
	Now         func() time.Time // Defaults to time.Now
	CatalogSite string           // Root of recording links, defaults to [shared.DefaultCatalogSiteURL]
}

// App holds the handlers of the web interface.
type App struct {
	notes       NoteStore
	accounts    AccountStore
	lookup      tasks.Lookup
	sessions    *session.Manager
	logger      *log.Logger
	workflowTTL time.Duration
	now         func() time.Time
	catalogSite string
	views       views
}

// NewApp parses the embedded templates and returns an App.
func NewApp(opts Options) (*App, error) {
	views, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	site := strings.TrimRight(opts.CatalogSite, "/")
	if site == "" {
		site = shared.DefaultCatalogSiteURL
	}

	return &App{
		notes:       opts.Notes,
		accounts:    opts.Accounts,
		lookup:      opts.Lookup,
		sessions:    opts.Sessions,
		logger:      shared.WithLogger(logger, "component", "web"),
		workflowTTL: opts.WorkflowTTL,
		now:         now,
		catalogSite: site,
		views:       views,
	}, nil
}

// Handler returns the routed handler with logging, recovery and session middleware applied.
func (a *App) Handler() http.Handler {
	r := server.NewBasicRouter()
	r.Use(server.Recoverer(a.logger), server.RequestLogger(a.logger), a.sessions.Middleware())

	r.HandleFunc(http.MethodGet, "/{$}", a.handleIndex)

	r.HandleFunc(http.MethodGet, "/add_text", a.requireLogin(a.handleAddForm))
	r.HandleFunc(http.MethodPost, "/add_text", a.requireLogin(a.handleAdd))
	r.HandleFunc(http.MethodGet, "/edit_text/{id}", a.requireLogin(a.handleEditForm))
	r.HandleFunc(http.MethodPost, "/edit_text/{id}", a.requireLogin(a.handleEdit))
	r.HandleFunc(http.MethodPost, "/delete_text/{id}", a.handleDelete)

	r.HandleFunc(http.MethodPost, "/search_artist", a.requireLogin(a.handleSearchArtist))
	r.HandleFunc(http.MethodPost, "/get_work_info", a.requireLogin(a.handleWorkInfo))

	r.HandleFunc(http.MethodGet, "/login", a.handleLoginForm)
	r.HandleFunc(http.MethodPost, "/login", a.handleLogin)
	r.HandleFunc(http.MethodGet, "/signin", a.handleSigninForm)
	r.HandleFunc(http.MethodPost, "/signin", a.handleSignin)
	r.HandleFunc(http.MethodGet, "/reset_password", a.handleResetForm)
	r.HandleFunc(http.MethodPost, "/reset_password", a.handleReset)
	r.HandleFunc(http.MethodGet, "/logout", a.handleLogout)

	r.Handler(server.HealthHandler{})
	return r
}

// requireLogin redirects anonymous requests to /login.
func (a *App) requireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !session.FromContext(r.Context()).Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// saveSession persists s, logging instead of failing the request.
func (a *App) saveSession(w http.ResponseWriter, r *http.Request, s *session.Session) {
	if err := a.sessions.Save(r.Context(), w, s); err != nil {
		a.logger.Error("failed to save session", "error", err)
	}
}

// recordingURL links a recording id to its page on the catalog site.
func (a *App) recordingURL(id string) string {
	if id == "" {
		return ""
	}
	return a.catalogSite + "/recording/" + url.PathEscape(id)
}

// workflow returns the unexpired selection of s.
func (a *App) workflow(s *session.Session) models.WorkflowSelection {
	return s.Data.Workflow.Current(a.now(), a.workflowTTL)
}
