package web

import (
	"net/http"
	"strings"

	"github.com/desertthunder/muse/internal/session"
)

const (
	invalidCredentialsMessage = "Invalid username or password."
	usernameTakenMessage      = "Username already exists."
	unknownUsernameMessage    = "Username does not exist."
	missingFieldsMessage      = "Username and password are required."
	unavailableMessage        = "Something went wrong. Please try again."
)

type credentials struct {
	username string
	password string
}

func readCredentials(r *http.Request) (credentials, bool) {
	c := credentials{
		username: strings.TrimSpace(r.FormValue("username")),
		password: r.FormValue("password"),
	}
	return c, c.username != "" && c.password != ""
}

func (a *App) renderAuth(w http.ResponseWriter, r *http.Request, page, title, errMsg string) {
	a.render(w, page, PageData{
		Title:    title,
		Username: session.FromContext(r.Context()).Data.Username,
		Error:    errMsg,
	})
}

// login stores username in the session under a fresh id and returns to the listing.
func (a *App) login(w http.ResponseWriter, r *http.Request, username string) {
	s := session.FromContext(r.Context())
	if err := a.sessions.Renew(r.Context(), s); err != nil {
		a.logger.Warn("failed to drop previous session", "error", err)
	}
	s.Data.Username = username
	a.saveSession(w, r, s)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	a.renderAuth(w, r, "login.html", "Log in", "")
}

func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	c, ok := readCredentials(r)
	if !ok {
		a.renderAuth(w, r, "login.html", "Log in", invalidCredentialsMessage)
		return
	}

	valid, err := a.accounts.Verify(r.Context(), c.username, c.password)
	if err != nil {
		a.logger.Error("failed to verify credentials", "user", c.username, "error", err)
		a.renderAuth(w, r, "login.html", "Log in", unavailableMessage)
		return
	}
	if !valid {
		a.logger.Info("rejected login", "user", c.username)
		a.renderAuth(w, r, "login.html", "Log in", invalidCredentialsMessage)
		return
	}

	a.login(w, r, c.username)
}

func (a *App) handleSigninForm(w http.ResponseWriter, r *http.Request) {
	a.renderAuth(w, r, "signin.html", "Sign up", "")
}

func (a *App) handleSignin(w http.ResponseWriter, r *http.Request) {
	c, ok := readCredentials(r)
	if !ok {
		a.renderAuth(w, r, "signin.html", "Sign up", missingFieldsMessage)
		return
	}

	exists, err := a.accounts.Exists(r.Context(), c.username)
	if err != nil {
		a.logger.Error("failed to check username", "user", c.username, "error", err)
		a.renderAuth(w, r, "signin.html", "Sign up", unavailableMessage)
		return
	}
	if exists {
		a.renderAuth(w, r, "signin.html", "Sign up", usernameTakenMessage)
		return
	}

	if err := a.accounts.Create(r.Context(), c.username, c.password); err != nil {
		a.logger.Error("failed to create account", "user", c.username, "error", err)
		a.renderAuth(w, r, "signin.html", "Sign up", unavailableMessage)
		return
	}

	a.logger.Info("account created", "user", c.username)
	a.login(w, r, c.username)
}

func (a *App) handleResetForm(w http.ResponseWriter, r *http.Request) {
	a.renderAuth(w, r, "reset.html", "Reset password", "")
}

func (a *App) handleReset(w http.ResponseWriter, r *http.Request) {
	c, ok := readCredentials(r)
	if !ok {
		a.renderAuth(w, r, "reset.html", "Reset password", missingFieldsMessage)
		return
	}

	exists, err := a.accounts.Exists(r.Context(), c.username)
	if err != nil {
		a.logger.Error("failed to check username", "user", c.username, "error", err)
		a.renderAuth(w, r, "reset.html", "Reset password", unavailableMessage)
		return
	}
	if !exists {
		a.renderAuth(w, r, "reset.html", "Reset password", unknownUsernameMessage)
		return
	}

	if err := a.accounts.UpdatePassword(r.Context(), c.username, c.password); err != nil {
		a.logger.Error("failed to update password", "user", c.username, "error", err)
		a.renderAuth(w, r, "reset.html", "Reset password", unavailableMessage)
		return
	}

	a.logger.Info("password reset", "user", c.username)
	a.login(w, r, c.username)
}

func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if err := a.sessions.Destroy(r.Context(), w, s); err != nil {
		a.logger.Error("failed to destroy session", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
