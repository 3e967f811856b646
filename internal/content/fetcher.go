package content

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vibecheck/internal/models"
	"github.com/desertthunder/vibecheck/internal/services"
)

// DefaultPlaylistSize is the number of tracks requested when none is configured.
const DefaultPlaylistSize = 15

// Fetcher builds prompts, calls a [services.Provider] and parses what comes back.
type Fetcher struct {
	provider services.Provider
	size     int
	logger   *log.Logger
}

// NewFetcher creates a [Fetcher] that asks for size tracks per playlist.
func NewFetcher(provider services.Provider, size int, logger *log.Logger) *Fetcher {
	if size <= 0 {
		size = DefaultPlaylistSize
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Fetcher{provider: provider, size: size, logger: logger.With("provider", provider.Name())}
}

// PlaylistPrompt asks for n tracks as a bare JSON array.
func PlaylistPrompt(mood models.MoodKey, n int) string {
	return fmt.Sprintf(`Create a playlist of %d real songs for someone who is feeling %s.
Respond with only a JSON array and no commentary. Each element must be an object with the string fields
"id" (unique within the list), "title", "artist", "cover" (an album art image URL), "link" (a URL where the
song can be played) and, when available, "preview" (a URL to a short audio sample).`, n, mood)
}

// QuotePrompt asks for one quote as a bare JSON object.
func QuotePrompt(mood models.MoodKey) string {
	return fmt.Sprintf(`Give me a short motivational quote about feeling %s.
Respond with only a JSON object of the form {"quote": "...", "author": "..."} and no commentary.`, mood)
}

// FetchPlaylist returns up to the configured number of valid tracks for mood.
//
// Provider failures and unparseable answers are logged and yield an empty slice.
func (f *Fetcher) FetchPlaylist(ctx context.Context, mood models.MoodKey) []models.Track {
	text, err := f.provider.Generate(ctx, PlaylistPrompt(mood, f.size))
	if err != nil {
		f.logger.Warn("playlist generation failed", "mood", mood, "error", err)
		return []models.Track{}
	}

	res := ParseTracks(text)
	if !res.Parsed {
		f.logger.Warn("playlist response unparseable", "mood", mood, "reason", res.Reason)
		return []models.Track{}
	}

	tracks := res.Value
	if len(tracks) > f.size {
		tracks = tracks[:f.size]
	}

	f.logger.Debug("playlist generated", "mood", mood, "tracks", len(tracks))
	return tracks
}

// FetchQuote returns a quote for mood, or nil when none could be produced.
func (f *Fetcher) FetchQuote(ctx context.Context, mood models.MoodKey) *models.Quote {
	text, err := f.provider.Generate(ctx, QuotePrompt(mood))
	if err != nil {
		f.logger.Warn("quote generation failed", "mood", mood, "error", err)
		return nil
	}

	res := ParseQuote(text)
	if !res.Parsed {
		f.logger.Warn("quote response unparseable", "mood", mood, "reason", res.Reason)
		return nil
	}

	return &res.Value
}
