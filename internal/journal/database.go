package journal

import (
	"context"

	"github.com/desertthunder/vibecheck/internal/repositories"
)

// DatabaseStore keeps entries in the journal_entries table.
type DatabaseStore struct {
	repo *repositories.JournalRepository
}

// NewDatabaseStore wraps repo as a [Store].
func NewDatabaseStore(repo *repositories.JournalRepository) *DatabaseStore {
	return &DatabaseStore{repo: repo}
}

func (s *DatabaseStore) Get(ctx context.Context, userID, date string) (string, error) {
	entry, err := s.repo.Get(ctx, userID, date)
	if err != nil {
		return "", err
	}
	return entry.Content, nil
}

func (s *DatabaseStore) Put(ctx context.Context, userID, date, content string) error {
	return s.repo.Upsert(ctx, userID, date, content)
}
