package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/muse/internal/repositories"
	"github.com/desertthunder/muse/internal/shared"
	"github.com/urfave/cli/v3"
)

// UsersCreate registers a new account.
func (r *Runner) UsersCreate(ctx context.Context, cmd *cli.Command) error {
	username, password, err := accountArgs(cmd)
	if err != nil {
		return err
	}

	repo, done, err := r.userRepository(cmd)
	if err != nil {
		return err
	}
	defer done()

	if err := repo.Create(ctx, username, password); err != nil {
		return fmt.Errorf("failed to create user %s: %w", username, err)
	}

	r.logger.Info("user created", "username", username)
	return r.writePlain("✓ Created user %s\n", username)
}

// UsersReset replaces the password of an existing account.
func (r *Runner) UsersReset(ctx context.Context, cmd *cli.Command) error {
	username, password, err := accountArgs(cmd)
	if err != nil {
		return err
	}

	repo, done, err := r.userRepository(cmd)
	if err != nil {
		return err
	}
	defer done()

	if err := repo.UpdatePassword(ctx, username, password); err != nil {
		return fmt.Errorf("failed to reset password for %s: %w", username, err)
	}

	r.logger.Info("password reset", "username", username)
	return r.writePlain("✓ Password updated for %s\n", username)
}

func (r *Runner) userRepository(cmd *cli.Command) (*repositories.UserRepository, func(), error) {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	db, done, err := r.openDatabase(config)
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewUserRepository(db, config.Auth.BcryptCost), done, nil
}

func accountArgs(cmd *cli.Command) (string, string, error) {
	username := strings.TrimSpace(cmd.StringArg("username"))
	if username == "" {
		return "", "", fmt.Errorf("%w: username", shared.ErrMissingArgument)
	}
	return username, cmd.String("password"), nil
}
