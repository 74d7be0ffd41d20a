package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/muse/internal/formatter"
	"github.com/desertthunder/muse/internal/repositories"
	"github.com/urfave/cli/v3"
)

// NotesList prints a user's notes in id order.
func (r *Runner) NotesList(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("user")

	repo, done, err := r.noteRepository(cmd)
	if err != nil {
		return err
	}
	defer done()

	notes, err := repo.ListForUser(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(notes, true)
	}

	r.writePlainHeader(fmt.Sprintf("Notes for %s (%d)", username, len(notes)))
	if len(notes) == 0 {
		return r.writePlain("No notes yet.\n")
	}
	for _, n := range notes {
		firstLine, _, _ := strings.Cut(n.Content, "\n")
		if err := r.writePlain("%4d  %s  %s\n", n.ID, n.UpdatedAt.Local().Format("2006-01-02 15:04"), firstLine); err != nil {
			return err
		}
	}
	return nil
}

// NotesExport writes a user's notes to a file in the chosen format.
func (r *Runner) NotesExport(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("user")

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	repo, done, err := r.noteRepository(cmd)
	if err != nil {
		return err
	}
	defer done()

	notes, err := repo.ListForUser(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	export := formatter.NewNotesExport(username, notes, time.Now())
	path, err := formatter.WriteExport(export, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("notes exported", "username", username, "format", format, "path", path, "count", len(notes))
	return r.writePlain("✓ Exported %d notes to %s\n", len(notes), path)
}

func (r *Runner) noteRepository(cmd *cli.Command) (*repositories.NoteRepository, func(), error) {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	db, done, err := r.openDatabase(config)
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewNoteRepository(db), done, nil
}
