package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/vibecheck/internal/models"
	"github.com/desertthunder/vibecheck/internal/shared"
)

// JournalRepository persists [models.JournalEntry] rows in journal_entries.
type JournalRepository struct {
	db *sql.DB
}

// NewJournalRepository creates a new [JournalRepository].
func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Get returns the entry for (userID, date) or [shared.ErrNotFound].
func (r *JournalRepository) Get(ctx context.Context, userID, date string) (*models.JournalEntry, error) {
	query := `
		SELECT id, user_id, entry_date, content, created_at, updated_at
		FROM journal_entries
		WHERE user_id = ? AND entry_date = ?
	`

	var e models.JournalEntry
	err := r.db.QueryRowContext(ctx, query, userID, date).
		Scan(&e.ID, &e.UserID, &e.EntryDate, &e.Content, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("journal entry %s: %w", date, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entry: %w", err)
	}

	return &e, nil
}

// Upsert writes content for (userID, date), replacing any existing entry for that day.
func (r *JournalRepository) Upsert(ctx context.Context, userID, date, content string) error {
	now := time.Now().UTC()

	query := `
		INSERT INTO journal_entries (user_id, entry_date, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, entry_date) DO UPDATE SET
			content = excluded.content,
			updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, userID, date, content, now, now); err != nil {
		return fmt.Errorf("failed to save journal entry: %w", err)
	}

	return nil
}

// ListByUser returns a user's entries, newest first.
func (r *JournalRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.JournalEntry, error) {
	if limit <= 0 {
		limit = 30
	}

	query := `
		SELECT id, user_id, entry_date, content, created_at, updated_at
		FROM journal_entries
		WHERE user_id = ?
		ORDER BY entry_date DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.EntryDate, &e.Content, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entries: %w", err)
	}

	return entries, nil
}
