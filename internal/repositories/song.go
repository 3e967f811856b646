package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/vibecheck/internal/models"
)

// SongRepository persists generated tracks, one row per track.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new [SongRepository].
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Insert stores a single song row and sets its ID.
//
// Rows of one playlist are inserted independently, without a surrounding transaction.
func (r *SongRepository) Insert(ctx context.Context, row *models.SongRow) error {
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO songs (user_id, mood, position, track_id, title, artist, cover_url, external_url, preview_url, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		row.UserID, string(row.Mood), row.Position, row.TrackID, row.Title, row.Artist,
		row.CoverURL, row.ExternalURL, row.PreviewURL, row.Date, row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert song %q: %w", row.Title, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read song id: %w", err)
	}
	row.ID = id

	return nil
}

// ListByUserDate returns the songs stored for (userID, date) in playlist order.
func (r *SongRepository) ListByUserDate(ctx context.Context, userID, date string) ([]models.SongRow, error) {
	query := `
		SELECT id, user_id, mood, position, track_id, title, artist, cover_url, external_url, preview_url, date, created_at
		FROM songs
		WHERE user_id = ? AND date = ?
		ORDER BY position, id
	`

	rows, err := r.db.QueryContext(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []models.SongRow
	for rows.Next() {
		var (
			s    models.SongRow
			mood string
		)
		if err := rows.Scan(
			&s.ID, &s.UserID, &mood, &s.Position, &s.TrackID, &s.Title, &s.Artist,
			&s.CoverURL, &s.ExternalURL, &s.PreviewURL, &s.Date, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		s.Mood = models.MoodKey(mood)
		songs = append(songs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating songs: %w", err)
	}

	return songs, nil
}
