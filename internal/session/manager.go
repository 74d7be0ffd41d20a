package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/muse/internal/models"
	"github.com/desertthunder/muse/internal/shared"
)

type contextKey struct{}

// Data is the payload stored for a session.
type Data struct {
	Username string                   `json:"username,omitempty"`
	Workflow models.WorkflowSelection `json:"workflow"`
}

// Session is a loaded session. A zero ID means it has not been saved yet.
type Session struct {
	ID   string
	Data Data
}

// Authenticated reports whether a user is logged in.
func (s *Session) Authenticated() bool {
	return s != nil && s.Data.Username != ""
}

// Manager binds sessions in a [Store] to a browser cookie.
type Manager struct {
	store  Store
	name   string
	ttl    time.Duration
	secure bool
	logger *log.Logger
}

// NewManager creates a Manager for cfg.CookieName using store.
func NewManager(store Store, cfg shared.SessionConfig, logger *log.Logger) *Manager {
	name := cfg.CookieName
	if name == "" {
		name = "muse_session"
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{
		store:  store,
		name:   name,
		ttl:    cfg.TTL(),
		secure: cfg.Secure,
		logger: shared.WithLogger(logger, "component", "session"),
	}
}

// Load returns the session named by the request cookie.
//
// A missing cookie, an unknown id or an unreadable payload all yield a fresh empty session.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	c, err := r.Cookie(m.name)
	if err != nil || !shared.IsID(c.Value) {
		return &Session{}, nil
	}

	raw, err := m.store.Get(r.Context(), c.Value)
	if errors.Is(err, ErrNotFound) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	s := &Session{ID: c.Value}
	if err := json.Unmarshal(raw, &s.Data); err != nil {
		m.logger.Warn("discarding unreadable session", "error", err)
		return &Session{}, nil
	}
	return s, nil
}

// Save writes s to the store and sets the cookie, assigning an id on first save.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if s.ID == "" {
		s.ID = shared.GenerateID()
	}

	raw, err := json.Marshal(s.Data)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := m.store.Set(ctx, s.ID, raw, m.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	cookie := m.cookie(s.ID)
	if m.ttl > 0 {
		cookie.MaxAge = int(m.ttl / time.Second)
	}
	http.SetCookie(w, cookie)
	return nil
}

// Destroy removes s from the store and expires the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if s.ID != "" {
		if err := m.store.Delete(ctx, s.ID); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}

	cookie := m.cookie("")
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)

	*s = Session{}
	return nil
}

// Renew drops the stored copy of s and clears its id so the next [Manager.Save] issues a new one.
//
// Handlers call it on login.
func (m *Manager) Renew(ctx context.Context, s *Session) error {
	if s.ID == "" {
		return nil
	}
	if err := m.store.Delete(ctx, s.ID); err != nil {
		return fmt.Errorf("failed to renew session: %w", err)
	}
	s.ID = ""
	return nil
}

func (m *Manager) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Middleware loads the session for every request and stores it in the request context.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := m.Load(r)
			if err != nil {
				m.logger.Error("session store unavailable", "error", err)
				s = &Session{}
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by [Manager.Middleware], or an empty one.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(contextKey{}).(*Session); ok && s != nil {
		return s
	}
	return &Session{}
}
