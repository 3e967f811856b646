// Package content produces the playlist and quote shown for a mood.
//
// A [Source] answers two questions for a mood: which tracks, and which quote. Two sources exist:
//   - [Fetcher] prompts a generative [services.Provider] and parses its free-text answer
//   - [StaticSource] serves the canned [Lookup] table
//
// Provider output is untrusted. [ParseTracks] and [ParseQuote] locate the first JSON array or
// object in the text and return a [Result] that is either parsed or unparseable, never a panic.
// Sources degrade to an empty playlist or a nil quote instead of returning errors.
package content

import (
	"context"

	"github.com/desertthunder/vibecheck/internal/models"
)

// Source supplies content for a mood. Implementations never fail: missing content is empty.
type Source interface {
	FetchPlaylist(ctx context.Context, mood models.MoodKey) []models.Track
	FetchQuote(ctx context.Context, mood models.MoodKey) *models.Quote
}
