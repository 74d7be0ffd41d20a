package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/desertthunder/muse/internal/models"
	"github.com/desertthunder/muse/internal/shared"
	"github.com/desertthunder/muse/internal/tasks"
	"github.com/urfave/cli/v3"
)

// CatalogSearch lists the works of the first artist matching the argument and prints the selection as JSON.
func (r *Runner) CatalogSearch(ctx context.Context, cmd *cli.Command) error {
	artist := strings.TrimSpace(cmd.StringArg("artist"))
	if artist == "" {
		return fmt.Errorf("%w: artist", shared.ErrMissingArgument)
	}

	engine, err := r.lookupEngine(cmd)
	if err != nil {
		return err
	}

	var sel models.WorkflowSelection
	r.withProgress(func(progress chan<- tasks.ProgressUpdate) {
		sel = engine.Search(ctx, artist, progress)
	})

	return r.writeJSON(sel, cmd.Bool("pretty"))
}

// CatalogWork fetches the relations and first recording of a work and prints the selection as JSON.
func (r *Runner) CatalogWork(ctx context.Context, cmd *cli.Command) error {
	workID := strings.TrimSpace(cmd.StringArg("work-id"))
	if workID == "" {
		return fmt.Errorf("%w: work-id", shared.ErrMissingArgument)
	}

	engine, err := r.lookupEngine(cmd)
	if err != nil {
		return err
	}

	var sel models.WorkflowSelection
	r.withProgress(func(progress chan<- tasks.ProgressUpdate) {
		sel = engine.SelectWork(ctx, models.WorkflowSelection{}, workID, cmd.String("artist"), progress)
	})

	return r.writeJSON(sel, cmd.Bool("pretty"))
}

func (r *Runner) lookupEngine(cmd *cli.Command) (*tasks.LookupEngine, error) {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return tasks.NewLookupEngine(r.catalogService(config), shared.WithLogger(r.logger, "component", "lookup")), nil
}

// withProgress runs fn with a progress channel whose updates are logged, returning once all are drained.
func (r *Runner) withProgress(fn func(progress chan<- tasks.ProgressUpdate)) {
	progress := make(chan tasks.ProgressUpdate, 8)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase, "step", fmt.Sprintf("%d/%d", update.Step, update.Total))
		}
	}()

	fn(progress)
	close(progress)
	wg.Wait()
}
