// Package journal loads and saves the free-text entry a user keeps for each day.
//
// The [Adapter] hides store failures from callers that render pages: a failed or empty
// read is an empty entry, and failed writes are logged. Two [Store] backends exist, the
// journal_entries table ([DatabaseStore]) and an on-disk key-value store ([LocalStore]).
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vibecheck/internal/shared"
)

// Store is a journal backend keyed by (user, date).
type Store interface {
	// Get returns the entry text or an error wrapping [shared.ErrNotFound].
	Get(ctx context.Context, userID, date string) (string, error)
	// Put replaces the entry text for the day.
	Put(ctx context.Context, userID, date, content string) error
}

// Adapter applies the journal read and write policy on top of a [Store].
type Adapter struct {
	store  Store
	logger *log.Logger
}

// NewAdapter creates an [Adapter] over store.
func NewAdapter(store Store, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{store: store, logger: logger}
}

// Load returns the entry for (userID, date), or "" when there is none or the read fails.
func (a *Adapter) Load(ctx context.Context, userID, date string) string {
	text, err := a.store.Get(ctx, userID, date)
	switch {
	case err == nil:
		return text
	case errors.Is(err, shared.ErrNotFound):
		return ""
	default:
		a.logger.Error("failed to load journal entry", "user", userID, "date", date, "error", err)
		return ""
	}
}

// Save trims text and stores it as the entry for (userID, date). The last save of a day wins.
//
// Failures are logged and returned.
func (a *Adapter) Save(ctx context.Context, userID, date, text string) error {
	if _, err := shared.ParseDate(date); err != nil {
		return err
	}

	if err := a.store.Put(ctx, userID, date, strings.TrimSpace(text)); err != nil {
		a.logger.Error("failed to save journal entry", "user", userID, "date", date, "error", err)
		return fmt.Errorf("failed to save journal entry: %w", err)
	}

	a.logger.Debug("journal entry saved", "user", userID, "date", date)
	return nil
}
