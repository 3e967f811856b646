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

// GenerationStatus is the lifecycle of a per-day generation claim.
type GenerationStatus string

const (
	GenerationRunning GenerationStatus = "generating"
	GenerationDone    GenerationStatus = "done"
)

// Generation is a claim on generating content for one user and day.
type Generation struct {
	UserID    string
	Date      string
	Mood      models.MoodKey
	Status    GenerationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GenerationRepository stores generation claims keyed by (user_id, date).
type GenerationRepository struct {
	db *sql.DB
}

// NewGenerationRepository creates a new [GenerationRepository].
func NewGenerationRepository(db *sql.DB) *GenerationRepository {
	return &GenerationRepository{db: db}
}

// Claim records that generation for (userID, date) has started.
//
// Returns [shared.ErrAlreadyExists] when the day was claimed before.
func (r *GenerationRepository) Claim(ctx context.Context, userID, date string, mood models.MoodKey) error {
	now := time.Now().UTC()

	query := `
		INSERT INTO generations (user_id, date, mood, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, userID, date, string(mood), string(GenerationRunning), now, now)
	if isUniqueViolation(err) {
		return fmt.Errorf("generation for %s: %w", date, shared.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to claim generation: %w", err)
	}

	return nil
}

// Complete marks the claim for (userID, date) as done.
func (r *GenerationRepository) Complete(ctx context.Context, userID, date string) error {
	query := "UPDATE generations SET status = ?, updated_at = ? WHERE user_id = ? AND date = ?"
	if _, err := r.db.ExecContext(ctx, query, string(GenerationDone), time.Now().UTC(), userID, date); err != nil {
		return fmt.Errorf("failed to complete generation: %w", err)
	}
	return nil
}

// Touch refreshes updated_at on a running claim for (userID, date).
func (r *GenerationRepository) Touch(ctx context.Context, userID, date string) error {
	query := "UPDATE generations SET updated_at = ? WHERE user_id = ? AND date = ? AND status = ?"
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), userID, date, string(GenerationRunning)); err != nil {
		return fmt.Errorf("failed to touch generation: %w", err)
	}
	return nil
}

// Get returns the claim for (userID, date) or [shared.ErrNotFound].
func (r *GenerationRepository) Get(ctx context.Context, userID, date string) (*Generation, error) {
	query := `
		SELECT user_id, date, mood, status, created_at, updated_at
		FROM generations
		WHERE user_id = ? AND date = ?
	`

	var (
		g            Generation
		mood, status string
	)
	err := r.db.QueryRowContext(ctx, query, userID, date).
		Scan(&g.UserID, &g.Date, &mood, &status, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("generation for %s: %w", date, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query generation: %w", err)
	}
	g.Mood = models.MoodKey(mood)
	g.Status = GenerationStatus(status)

	return &g, nil
}

// Release removes the claim for (userID, date) so the day can be generated again.
func (r *GenerationRepository) Release(ctx context.Context, userID, date string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM generations WHERE user_id = ? AND date = ?", userID, date); err != nil {
		return fmt.Errorf("failed to release generation: %w", err)
	}
	return nil
}
