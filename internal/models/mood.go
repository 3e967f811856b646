package models

import (
	"fmt"
	"strings"
)

// MoodKey identifies one of the fixed moods that drive content selection.
type MoodKey string

const (
	MoodHappy     MoodKey = "happy"
	MoodSad       MoodKey = "sad"
	MoodRelaxed   MoodKey = "relaxed"
	MoodEnergetic MoodKey = "energetic"
	MoodFocus     MoodKey = "focus"
	MoodAnxious   MoodKey = "anxious"
	MoodRomantic  MoodKey = "romantic"
	MoodChill     MoodKey = "chill"
)

// ErrUnknownMood is returned by [ParseMood] for input outside the catalog.
var ErrUnknownMood = fmt.Errorf("unknown mood")

// Mood is the display metadata for a [MoodKey].
type Mood struct {
	Key   MoodKey `json:"key"`
	Label string  `json:"label"`
	Icon  string  `json:"icon"`
}

var catalog = []Mood{
	{Key: MoodHappy, Label: "Happy", Icon: "happy-face.png"},
	{Key: MoodSad, Label: "Sad", Icon: "sad-face.png"},
	{Key: MoodRelaxed, Label: "Relaxed", Icon: "calm.png"},
	{Key: MoodEnergetic, Label: "Energetic", Icon: "energetic.png"},
	{Key: MoodFocus, Label: "Focus", Icon: "focus.png"},
	{Key: MoodAnxious, Label: "Anxious", Icon: "fainted.png"},
	{Key: MoodRomantic, Label: "Romantic", Icon: "love.png"},
	{Key: MoodChill, Label: "Chill", Icon: "chill.png"},
}

// Moods returns the catalog in display order. The returned slice is a copy.
func Moods() []Mood {
	out := make([]Mood, len(catalog))
	copy(out, catalog)
	return out
}

// ParseMood converts user input into a [MoodKey].
func ParseMood(s string) (MoodKey, error) {
	key := MoodKey(strings.ToLower(strings.TrimSpace(s)))
	if !key.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMood, s)
	}
	return key, nil
}

// Valid reports whether k is part of the catalog.
func (k MoodKey) Valid() bool {
	_, ok := k.lookup()
	return ok
}

// Label returns the human readable label, or the raw key when unknown.
func (k MoodKey) Label() string {
	if m, ok := k.lookup(); ok {
		return m.Label
	}
	return string(k)
}

// Icon returns the icon asset name, empty when unknown.
func (k MoodKey) Icon() string {
	m, _ := k.lookup()
	return m.Icon
}

func (k MoodKey) String() string {
	return string(k)
}

func (k MoodKey) lookup() (Mood, bool) {
	for _, m := range catalog {
		if m.Key == k {
			return m, true
		}
	}
	return Mood{}, false
}
