package models

import (
	"fmt"
	"time"
)

// Track is a single song recommendation.
type Track struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Cover   string `json:"cover"`
	Link    string `json:"link"`
	Preview string `json:"preview,omitempty"`
}

// Playlist is an ordered list of tracks for one mood.
type Playlist struct {
	Name   string  `json:"name"`
	Tracks []Track `json:"tracks"`
}

// Quote is a short quotation with attribution.
type Quote struct {
	Text   string `json:"quote"`
	Author string `json:"author"`
}

// PlaylistName is the name given to generated playlists, e.g. "happy Playlist".
func PlaylistName(mood MoodKey) string {
	return fmt.Sprintf("%s Playlist", mood)
}

// SongRow is the persisted form of a [Track] in the songs table.
type SongRow struct {
	ID          int64
	UserID      string
	Mood        MoodKey
	Position    int
	TrackID     string
	Title       string
	Artist      string
	CoverURL    string
	ExternalURL string
	PreviewURL  string
	Date        string
	CreatedAt   time.Time
}

// NewSongRow tags a track with its owner, mood, date and position.
func NewSongRow(userID string, mood MoodKey, date string, position int, t Track) SongRow {
	return SongRow{
		UserID:      userID,
		Mood:        mood,
		Position:    position,
		TrackID:     t.ID,
		Title:       t.Title,
		Artist:      t.Artist,
		CoverURL:    t.Cover,
		ExternalURL: t.Link,
		PreviewURL:  t.Preview,
		Date:        date,
	}
}

// Track converts the row back to a [Track].
func (r SongRow) Track() Track {
	id := r.TrackID
	if id == "" {
		id = fmt.Sprintf("%d", r.ID)
	}
	return Track{
		ID:      id,
		Title:   r.Title,
		Artist:  r.Artist,
		Cover:   r.CoverURL,
		Link:    r.ExternalURL,
		Preview: r.PreviewURL,
	}
}

// QuoteRow is the persisted form of a [Quote] in the quotes table.
type QuoteRow struct {
	ID        int64
	UserID    string
	Mood      MoodKey
	Text      string
	Author    string
	Date      string
	CreatedAt time.Time
}

// Quote converts the row back to a [Quote].
func (r QuoteRow) Quote() Quote {
	return Quote{Text: r.Text, Author: r.Author}
}

// DayRecord aggregates one user's content for a calendar day.
type DayRecord struct {
	UserID   string    `json:"user_id,omitempty"`
	Date     string    `json:"date"`
	Mood     MoodKey   `json:"mood,omitempty"`
	Playlist *Playlist `json:"playlist,omitempty"`
	Quote    *Quote    `json:"quote,omitempty"`
	Journal  string    `json:"journal,omitempty"`
}

// HasContent reports whether a playlist or quote is present.
func (d *DayRecord) HasContent() bool {
	return d != nil && ((d.Playlist != nil && len(d.Playlist.Tracks) > 0) || d.Quote != nil)
}
