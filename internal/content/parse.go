package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/vibecheck/internal/models"
)

// Result is the outcome of parsing provider text: either Parsed with a Value, or unparseable with a Reason.
type Result[T any] struct {
	Value  T
	Parsed bool
	Reason string
}

func parsed[T any](v T) Result[T] {
	return Result[T]{Value: v, Parsed: true}
}

func unparseable[T any](format string, args ...any) Result[T] {
	return Result[T]{Reason: fmt.Sprintf(format, args...)}
}

var errNoJSON = errors.New("no JSON value")

// decodeFirst decodes the first JSON value in text that starts at open into v.
// Anything after the value is ignored. Returns the error of the first failed attempt.
func decodeFirst(text string, open byte, v any) error {
	var first error
	for i := 0; i < len(text); i++ {
		j := strings.IndexByte(text[i:], open)
		if j < 0 {
			break
		}
		i += j

		err := json.NewDecoder(strings.NewReader(text[i:])).Decode(v)
		if err == nil {
			return nil
		}
		if first == nil {
			first = err
		}
	}
	if first == nil {
		return errNoJSON
	}
	return first
}

// rawTrack mirrors the JSON a provider is asked for. Pointers tell missing fields apart from empty ones.
type rawTrack struct {
	ID      *json.RawMessage `json:"id"`
	Title   *string          `json:"title"`
	Artist  *string          `json:"artist"`
	Cover   *string          `json:"cover"`
	Link    *string          `json:"link"`
	Preview *string          `json:"preview"`
}

// ParseTracks extracts the first JSON array from text and keeps the records that carry
// id, title, artist, cover and link. Duplicate ids keep their first occurrence.
//
// A missing or malformed array is Unparseable. A parsed array may still yield zero tracks.
func ParseTracks(text string) Result[[]models.Track] {
	var records []json.RawMessage
	if err := decodeFirst(stripFences(text), '[', &records); errors.Is(err, errNoJSON) {
		return unparseable[[]models.Track]("no JSON array in response")
	} else if err != nil {
		return unparseable[[]models.Track]("invalid JSON array: %v", err)
	}

	tracks := make([]models.Track, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		var rt rawTrack
		if err := json.Unmarshal(rec, &rt); err != nil {
			continue
		}

		t, ok := rt.track()
		if !ok || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		tracks = append(tracks, t)
	}

	return parsed(tracks)
}

func (rt rawTrack) track() (models.Track, bool) {
	if rt.ID == nil || rt.Title == nil || rt.Artist == nil || rt.Cover == nil || rt.Link == nil {
		return models.Track{}, false
	}

	id := idString(*rt.ID)
	title := strings.TrimSpace(*rt.Title)
	artist := strings.TrimSpace(*rt.Artist)
	if id == "" || title == "" || artist == "" {
		return models.Track{}, false
	}

	t := models.Track{
		ID:     id,
		Title:  title,
		Artist: artist,
		Cover:  strings.TrimSpace(*rt.Cover),
		Link:   strings.TrimSpace(*rt.Link),
	}
	if rt.Preview != nil {
		t.Preview = strings.TrimSpace(*rt.Preview)
	}
	return t, true
}

// idString accepts ids given as JSON strings or numbers.
func idString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// ParseQuote extracts the first JSON object from text and reads its quote and author fields.
func ParseQuote(text string) Result[models.Quote] {
	var q struct {
		Quote  string `json:"quote"`
		Author string `json:"author"`
	}
	if err := decodeFirst(stripFences(text), '{', &q); errors.Is(err, errNoJSON) {
		return unparseable[models.Quote]("no JSON object in response")
	} else if err != nil {
		return unparseable[models.Quote]("invalid JSON object: %v", err)
	}

	q.Quote = strings.TrimSpace(q.Quote)
	q.Author = strings.TrimSpace(q.Author)
	if q.Quote == "" || q.Author == "" {
		return unparseable[models.Quote]("quote or author missing")
	}

	return parsed(models.Quote{Text: q.Quote, Author: q.Author})
}

// stripFences removes a surrounding markdown code fence such as ```json ... ```.
func stripFences(s string) string {
	raw := strings.TrimSpace(s)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	rest := strings.TrimPrefix(raw, "```")
	if i := strings.Index(rest, "\n"); i >= 0 {
		rest = rest[i+1:]
	}
	if j := strings.LastIndex(rest, "```"); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}
