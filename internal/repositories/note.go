package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/muse/internal/models"
	"github.com/desertthunder/muse/internal/shared"
)

// NoteRepository persists [models.Note] rows in the texts table.
type NoteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new [NoteRepository] with the given database connection
func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// ListForUser returns the notes owned by username, ordered by id ascending.
func (r *NoteRepository) ListForUser(ctx context.Context, username string) ([]*models.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, content, created_at, updated_at
		FROM texts
		WHERE username = ?
		ORDER BY id ASC
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.Username, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return notes, nil
}

// Get returns note id if username owns it. Missing and foreign notes both report [shared.ErrNoteNotFound].
func (r *NoteRepository) Get(ctx context.Context, id int64, username string) (*models.Note, error) {
	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, content, created_at, updated_at
		FROM texts
		WHERE id = ? AND username = ?
	`, id, username).Scan(&note.ID, &note.Username, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", shared.ErrNoteNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}
	return note, nil
}

// Create inserts a note for username. Blank content is rejected before any write.
func (r *NoteRepository) Create(ctx context.Context, username, content string) (*models.Note, error) {
	now := time.Now().UTC()
	note := &models.Note{Username: username, Content: content, CreatedAt: now, UpdatedAt: now}
	if err := note.Validate(); err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO texts (username, content, created_at, updated_at) VALUES (?, ?, ?, ?)",
		username, content, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get note id: %w", err)
	}
	note.ID = id

	return note, nil
}

// Update replaces the content of note id when username owns it.
//
// A note that doesn't exist or belongs to someone else matches zero rows; that is reported through the count, not as an error.
func (r *NoteRepository) Update(ctx context.Context, id int64, username, content string) (int64, error) {
	if err := models.ValidateContent(content); err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE texts SET content = ?, updated_at = ? WHERE id = ? AND username = ?",
		content, time.Now().UTC(), id, username,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update note: %w", err)
	}
	return rowsAffected(result)
}

// Delete removes note id when username owns it, with the same zero-row semantics as [NoteRepository.Update].
func (r *NoteRepository) Delete(ctx context.Context, id int64, username string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM texts WHERE id = ? AND username = ?", id, username)
	if err != nil {
		return 0, fmt.Errorf("failed to delete note: %w", err)
	}
	return rowsAffected(result)
}
