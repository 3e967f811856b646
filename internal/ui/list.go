package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/vibecheck/internal/models"
)

var (
	_ list.Item = moodItem{}
	_ list.Item = trackItem{}
)

// moodItem wraps [models.Mood] to implement [list.Item].
type moodItem struct {
	mood models.Mood
}

func (i moodItem) FilterValue() string { return i.mood.Label }
func (i moodItem) Title() string       { return i.mood.Label }
func (i moodItem) Description() string { return string(i.mood.Key) }

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Title }
func (i trackItem) Title() string       { return i.track.Title }
func (i trackItem) Description() string {
	desc := i.track.Artist
	if i.track.Link != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Link)
	}
	return desc
}

func moodItems() []list.Item {
	moods := models.Moods()
	items := make([]list.Item, len(moods))
	for i, m := range moods {
		items[i] = moodItem{mood: m}
	}
	return items
}

func trackItems(tracks []models.Track) []list.Item {
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{track: t}
	}
	return items
}
