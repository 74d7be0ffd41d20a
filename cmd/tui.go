package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/muse/internal/shared"
	"github.com/desertthunder/muse/internal/ui"
	"github.com/urfave/cli/v3"
)

// NotesBrowse launches the interactive terminal note browser.
func (r *Runner) NotesBrowse(ctx context.Context, cmd *cli.Command) error {
	repo, done, err := r.noteRepository(cmd)
	if err != nil {
		return err
	}
	defer done()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/muse-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, repo, cmd.String("user"), fileLogger)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
