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

// QuoteRepository persists generated quotes.
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new [QuoteRepository].
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Insert stores a quote row and sets its ID.
func (r *QuoteRepository) Insert(ctx context.Context, row *models.QuoteRow) error {
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	query := "INSERT INTO quotes (user_id, mood, text, author, date, created_at) VALUES (?, ?, ?, ?, ?, ?)"
	result, err := r.db.ExecContext(ctx, query, row.UserID, string(row.Mood), row.Text, row.Author, row.Date, row.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read quote id: %w", err)
	}
	row.ID = id

	return nil
}

// GetByUserDate returns the first quote stored for (userID, date) or [shared.ErrNotFound].
func (r *QuoteRepository) GetByUserDate(ctx context.Context, userID, date string) (*models.QuoteRow, error) {
	query := `
		SELECT id, user_id, mood, text, author, date, created_at
		FROM quotes
		WHERE user_id = ? AND date = ?
		ORDER BY id
		LIMIT 1
	`

	var (
		q    models.QuoteRow
		mood string
	)
	err := r.db.QueryRowContext(ctx, query, userID, date).
		Scan(&q.ID, &q.UserID, &mood, &q.Text, &q.Author, &q.Date, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("quote for %s: %w", date, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query quote: %w", err)
	}
	q.Mood = models.MoodKey(mood)

	return &q, nil
}
