package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/muse/internal/repositories"
	"github.com/desertthunder/muse/internal/session"
	"github.com/desertthunder/muse/internal/shared"
	"github.com/desertthunder/muse/internal/tasks"
	"github.com/desertthunder/muse/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs migrations and serves the web interface until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}

	db, closeDB, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer closeDB()

	store, err := session.NewStore(config.Session)
	if err != nil {
		return fmt.Errorf("failed to create session store: %w", err)
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	handler, err := r.webHandler(config, db, store)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(
		web.NewServerConfig(config.Server, cmd.Bool("open")),
		handler,
		shared.WithLogger(r.logger, "component", "server"),
	)
	return server.Start(ctx)
}

// webHandler wires repositories, sessions and the catalog lookup into the web app.
func (r *Runner) webHandler(config *shared.Config, db *sql.DB, store session.Store) (http.Handler, error) {
	sessions := session.NewManager(store, config.Session, shared.WithLogger(r.logger, "component", "session"))
	lookup := tasks.NewLookupEngine(r.catalogService(config), shared.WithLogger(r.logger, "component", "lookup"))

	r.logger.Info("session backend ready", "backend", config.Session.Backend)

	app, err := web.NewApp(web.Options{
		Notes:       repositories.NewNoteRepository(db),
		Accounts:    repositories.NewUserRepository(db, config.Auth.BcryptCost),
		Lookup:      lookup,
		Sessions:    sessions,
		Logger:      r.logger,
		WorkflowTTL: config.Session.WorkflowTTL(),
		CatalogSite: config.Catalog.SiteURL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build web app: %w", err)
	}
	return app.Handler(), nil
}
