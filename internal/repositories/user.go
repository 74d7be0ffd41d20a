package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/muse/internal/models"
	"github.com/desertthunder/muse/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the account store. Passwords are hashed with bcrypt before they reach the database.
type UserRepository struct {
	db   *sql.DB
	cost int
}

// NewUserRepository creates a new [UserRepository]. A cost outside bcrypt's range falls back to [bcrypt.DefaultCost].
func NewUserRepository(db *sql.DB, cost int) *UserRepository {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &UserRepository{db: db, cost: cost}
}

// Exists reports whether username is registered.
func (r *UserRepository) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query user: %w", err)
	}
	return exists, nil
}

// Get retrieves a user by username.
func (r *UserRepository) Get(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx,
		"SELECT username, password_hash, created_at FROM users WHERE username = ?", username,
	).Scan(&user.Username, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrUserNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// Verify reports whether password matches the stored hash for username. Unknown users never verify.
func (r *UserRepository) Verify(ctx context.Context, username, password string) (bool, error) {
	user, err := r.Get(ctx, username)
	if errors.Is(err, shared.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("failed to compare password: %w", err)
	}
}

// Create registers a new account.
func (r *UserRepository) Create(ctx context.Context, username, password string) error {
	if err := validateCredentials(username, password); err != nil {
		return err
	}

	hash, err := r.hash(password)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		username, hash, time.Now().UTC(),
	)
	if isConstraintViolation(err) {
		return fmt.Errorf("%w: %s", shared.ErrUserExists, username)
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// UpdatePassword replaces the password for an existing account.
func (r *UserRepository) UpdatePassword(ctx context.Context, username, newPassword string) error {
	if err := validateCredentials(username, newPassword); err != nil {
		return err
	}

	hash, err := r.hash(newPassword)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, "UPDATE users SET password_hash = ? WHERE username = ?", hash, username)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrUserNotFound, username)
	}
	return nil
}

func (r *UserRepository) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func validateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", shared.ErrInvalidInput)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", shared.ErrInvalidInput)
	}
	return nil
}
