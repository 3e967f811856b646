package content

import (
	"context"
	"fmt"

	"github.com/desertthunder/vibecheck/internal/models"
)

// FallbackQuote is served when nothing better is known for a mood.
var FallbackQuote = models.Quote{Text: "Believe in yourself, even when times are tough.", Author: "Fallback"}

type cannedEntry struct {
	playlist models.Playlist
	quote    models.Quote
}

func cannedTrack(n int, title, artist string) models.Track {
	return models.Track{
		ID:      fmt.Sprintf("%d", n),
		Title:   title,
		Artist:  artist,
		Cover:   fmt.Sprintf("https://picsum.photos/200/200?random=%d", n),
		Link:    "#",
		Preview: fmt.Sprintf("https://www.soundhelix.com/examples/mp3/SoundHelix-Song-%d.mp3", n),
	}
}

var fallbackTable = map[models.MoodKey]cannedEntry{
	models.MoodHappy: {
		playlist: models.Playlist{Name: "Happy Vibes", Tracks: []models.Track{
			cannedTrack(1, "Happy Song 1", "Artist A"),
			cannedTrack(2, "Happy Song 2", "Artist B"),
		}},
		quote: models.Quote{Text: "Joy is not in things; it is in us.", Author: "Richard Wagner"},
	},
	models.MoodSad: {
		playlist: models.Playlist{Name: "Sad Vibes", Tracks: []models.Track{
			cannedTrack(3, "Sad Song 1", "Artist C"),
		}},
		quote: models.Quote{Text: "Tears are words the heart can't express.", Author: "Unknown"},
	},
	models.MoodRelaxed: {
		playlist: models.Playlist{Name: "Relaxed Vibes", Tracks: []models.Track{
			cannedTrack(4, "Chill Song 1", "Artist D"),
		}},
		quote: models.Quote{Text: "Within you, there is a stillness and a sanctuary.", Author: "Hermann Hesse"},
	},
	models.MoodEnergetic: {
		playlist: models.Playlist{Name: "Energetic Vibes", Tracks: []models.Track{
			cannedTrack(5, "Energetic Song 1", "Artist E"),
		}},
		quote: models.Quote{Text: "Energy and persistence conquer all things.", Author: "Benjamin Franklin"},
	},
	models.MoodFocus: {
		playlist: models.Playlist{Name: "Focus Beats", Tracks: []models.Track{
			cannedTrack(6, "Focus Song 1", "Artist F"),
		}},
		quote: models.Quote{Text: "Focus is the art of knowing what to ignore.", Author: "James Clear"},
	},
	models.MoodAnxious: {
		playlist: models.Playlist{Name: "Calm Anxiety", Tracks: []models.Track{
			cannedTrack(7, "Calm Song 1", "Artist G"),
		}},
		quote: models.Quote{Text: "Feelings are just visitors, let them come and go.", Author: "Mooji"},
	},
	models.MoodRomantic: {
		playlist: models.Playlist{Name: "Romantic Vibes", Tracks: []models.Track{
			cannedTrack(8, "Love Song 1", "Artist H"),
		}},
		quote: models.Quote{Text: "Love is the whole thing. We are only pieces.", Author: "Rumi"},
	},
	models.MoodChill: {
		playlist: models.Playlist{Name: "Chill Vibes", Tracks: []models.Track{
			cannedTrack(9, "Chill Song 2", "Artist I"),
		}},
		quote: models.Quote{Text: "Slow down and everything you are chasing will come around.", Author: "John De Paola"},
	},
}

// Lookup returns the canned playlist and quote for mood.
//
// Every catalog mood has an entry. Anything else gets an empty playlist and [FallbackQuote].
// The returned playlist owns a fresh copy of its tracks.
func Lookup(mood models.MoodKey) (models.Playlist, models.Quote) {
	entry, ok := fallbackTable[mood]
	if !ok {
		return models.Playlist{Name: models.PlaylistName(mood)}, FallbackQuote
	}

	tracks := make([]models.Track, len(entry.playlist.Tracks))
	copy(tracks, entry.playlist.Tracks)
	return models.Playlist{Name: entry.playlist.Name, Tracks: tracks}, entry.quote
}

// StaticSource serves the canned table through the [Source] interface.
type StaticSource struct{}

// NewStaticSource returns a [StaticSource].
func NewStaticSource() *StaticSource { return &StaticSource{} }

func (StaticSource) FetchPlaylist(_ context.Context, mood models.MoodKey) []models.Track {
	playlist, _ := Lookup(mood)
	return playlist.Tracks
}

func (StaticSource) FetchQuote(_ context.Context, mood models.MoodKey) *models.Quote {
	_, quote := Lookup(mood)
	return &quote
}
