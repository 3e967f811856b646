package content

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/vibecheck/internal/models"
	"github.com/desertthunder/vibecheck/internal/shared"
	tu "github.com/desertthunder/vibecheck/internal/testing"
)

func TestLookup(t *testing.T) {
	for _, m := range models.Moods() {
		t.Run(string(m.Key), func(t *testing.T) {
			playlist, quote := Lookup(m.Key)
			if playlist.Name == "" || len(playlist.Tracks) == 0 {
				t.Errorf("expected non-empty playlist for %s", m.Key)
			}
			if quote.Text == "" || quote.Author == "" {
				t.Errorf("expected quote for %s", m.Key)
			}
			for _, tr := range playlist.Tracks {
				if tr.ID == "" || tr.Title == "" || tr.Artist == "" || tr.Cover == "" || tr.Link == "" {
					t.Errorf("canned track missing fields: %+v", tr)
				}
			}
		})
	}

	t.Run("unknown mood", func(t *testing.T) {
		playlist, quote := Lookup("angry")
		if len(playlist.Tracks) != 0 || playlist.Name != "angry Playlist" {
			t.Errorf("unexpected playlist %+v", playlist)
		}
		if quote != FallbackQuote {
			t.Errorf("expected fallback quote, got %+v", quote)
		}
	})

	t.Run("returns copies", func(t *testing.T) {
		playlist, _ := Lookup(models.MoodHappy)
		playlist.Tracks[0].Title = "changed"
		again, _ := Lookup(models.MoodHappy)
		if again.Tracks[0].Title != "Happy Song 1" {
			t.Error("Lookup should not expose the table")
		}
	})
}

func TestStaticSource(t *testing.T) {
	src := NewStaticSource()
	tracks := src.FetchPlaylist(context.Background(), models.MoodHappy)
	if len(tracks) != 2 {
		t.Errorf("expected 2 happy tracks, got %d", len(tracks))
	}
	q := src.FetchQuote(context.Background(), models.MoodHappy)
	if q == nil || q.Author != "Richard Wagner" {
		t.Errorf("unexpected quote %+v", q)
	}
}

func TestParseTracks(t *testing.T) {
	tc := []struct {
		name   string
		text   string
		parsed bool
		ids    []string
	}{
		{
			name:   "valid array",
			text:   `[{"id":"1","title":"A","artist":"X","cover":"c","link":"l"},{"id":"2","title":"B","artist":"Y","cover":"c","link":"l","preview":"p"}]`,
			parsed: true,
			ids:    []string{"1", "2"},
		},
		{
			name:   "drops records missing required fields",
			text:   `Here you go: [{"id":"1","title":"A","artist":"X","cover":"c","link":"l"},{"id":"2","title":"B","artist":"Y","cover":"c"},{"title":"C","artist":"Z","cover":"c","link":"l"}] enjoy`,
			parsed: true,
			ids:    []string{"1"},
		},
		{
			name:   "numeric ids and duplicates",
			text:   `[{"id":7,"title":"A","artist":"X","cover":"c","link":"l"},{"id":"7","title":"B","artist":"Y","cover":"c","link":"l"}]`,
			parsed: true,
			ids:    []string{"7"},
		},
		{
			name:   "code fence",
			text:   "```json\n[{\"id\":\"1\",\"title\":\"A\",\"artist\":\"X\",\"cover\":\"c\",\"link\":\"l\"}]\n```",
			parsed: true,
			ids:    []string{"1"},
		},
		{
			name:   "non-object elements are skipped",
			text:   `[1, "two", {"id":"3","title":"A","artist":"X","cover":"c","link":"l"}]`,
			parsed: true,
			ids:    []string{"3"},
		},
		{
			name:   "trailing bracketed prose",
			text:   `[{"id":"1","title":"A","artist":"X","cover":"c","link":"l"}] Enjoy! [tip: shuffle]`,
			parsed: true,
			ids:    []string{"1"},
		},
		{
			name:   "leading bracketed prose",
			text:   `[note] here is the list: [{"id":"2","title":"B","artist":"Y","cover":"c","link":"l"}]`,
			parsed: true,
			ids:    []string{"2"},
		},
		{name: "no array", text: "I cannot help with that.", parsed: false},
		{name: "broken array", text: `[{"id":"1",}]`, parsed: false},
		{name: "empty", text: "", parsed: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseTracks(tt.text)
			if res.Parsed != tt.parsed {
				t.Fatalf("Parsed = %v, want %v (reason %q)", res.Parsed, tt.parsed, res.Reason)
			}
			if !tt.parsed {
				if res.Reason == "" {
					t.Error("expected a reason for unparseable input")
				}
				return
			}
			if len(res.Value) != len(tt.ids) {
				t.Fatalf("got %d tracks, want %d", len(res.Value), len(tt.ids))
			}
			for i, id := range tt.ids {
				if res.Value[i].ID != id {
					t.Errorf("track %d id = %s, want %s", i, res.Value[i].ID, id)
				}
			}
		})
	}
}

func TestParseQuote(t *testing.T) {
	tc := []struct {
		name   string
		text   string
		parsed bool
		want   models.Quote
	}{
		{
			name:   "valid object",
			text:   `{"quote":"Joy is not in things; it is in us.","author":"Richard Wagner"}`,
			parsed: true,
			want:   models.Quote{Text: "Joy is not in things; it is in us.", Author: "Richard Wagner"},
		},
		{
			name:   "surrounded by prose",
			text:   "Sure! {\"quote\": \" Keep going. \", \"author\": \"Someone\"} Hope it helps.",
			parsed: true,
			want:   models.Quote{Text: "Keep going.", Author: "Someone"},
		},
		{
			name:   "trailing braced prose",
			text:   `{"quote":"Stay curious.","author":"Ada"} {note: be kind}`,
			parsed: true,
			want:   models.Quote{Text: "Stay curious.", Author: "Ada"},
		},
		{name: "missing author", text: `{"quote":"Alone"}`, parsed: false},
		{name: "no object", text: "no json here", parsed: false},
		{name: "malformed", text: `{"quote": }`, parsed: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseQuote(tt.text)
			if res.Parsed != tt.parsed {
				t.Fatalf("Parsed = %v, want %v (reason %q)", res.Parsed, tt.parsed, res.Reason)
			}
			if tt.parsed && res.Value != tt.want {
				t.Errorf("got %+v, want %+v", res.Value, tt.want)
			}
		})
	}
}

func TestFetcher(t *testing.T) {
	ctx := context.Background()

	t.Run("FetchPlaylist", func(t *testing.T) {
		provider := &tu.MockProvider{Responses: map[string]string{
			"playlist": `[{"id":"1","title":"A","artist":"X","cover":"c","link":"l"},{"id":"2","title":"B","artist":"Y"}]`,
		}}
		f := NewFetcher(provider, 15, shared.NewLogger(&bytes.Buffer{}))

		tracks := f.FetchPlaylist(ctx, models.MoodHappy)
		if len(tracks) != 1 || tracks[0].ID != "1" {
			t.Errorf("expected only the complete record, got %+v", tracks)
		}

		prompts := provider.Prompts()
		if len(prompts) != 1 || !strings.Contains(prompts[0], "15 real songs") || !strings.Contains(prompts[0], "happy") {
			t.Errorf("unexpected prompt %q", prompts)
		}
	})

	t.Run("FetchPlaylist Caps At Size", func(t *testing.T) {
		provider := &tu.MockProvider{Responses: map[string]string{
			"playlist": `[{"id":"1","title":"A","artist":"X","cover":"c","link":"l"},{"id":"2","title":"B","artist":"Y","cover":"c","link":"l"},{"id":"3","title":"C","artist":"Z","cover":"c","link":"l"}]`,
		}}
		f := NewFetcher(provider, 2, shared.NewLogger(&bytes.Buffer{}))

		if got := f.FetchPlaylist(ctx, models.MoodSad); len(got) != 2 {
			t.Errorf("expected 2 tracks, got %d", len(got))
		}
	})

	t.Run("FetchPlaylist Without Array", func(t *testing.T) {
		var logs bytes.Buffer
		provider := &tu.MockProvider{Responses: map[string]string{"playlist": "Sorry, no can do."}}
		f := NewFetcher(provider, 15, shared.NewLogger(&logs))

		tracks := f.FetchPlaylist(ctx, models.MoodHappy)
		if tracks == nil || len(tracks) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", tracks)
		}
		if !strings.Contains(logs.String(), "unparseable") {
			t.Errorf("expected a diagnostic log, got %q", logs.String())
		}
	})

	t.Run("Provider Error", func(t *testing.T) {
		var logs bytes.Buffer
		provider := &tu.MockProvider{Err: errors.New("boom")}
		f := NewFetcher(provider, 15, shared.NewLogger(&logs))

		if got := f.FetchPlaylist(ctx, models.MoodHappy); len(got) != 0 {
			t.Errorf("expected empty playlist, got %d", len(got))
		}
		if got := f.FetchQuote(ctx, models.MoodHappy); got != nil {
			t.Errorf("expected nil quote, got %+v", got)
		}
		if !strings.Contains(logs.String(), "boom") {
			t.Errorf("expected error to be logged, got %q", logs.String())
		}
	})

	t.Run("FetchQuote", func(t *testing.T) {
		provider := &tu.MockProvider{Responses: map[string]string{
			"quote": `{"quote":"Joy is not in things; it is in us.","author":"Richard Wagner"}`,
		}}
		f := NewFetcher(provider, 15, shared.NewLogger(&bytes.Buffer{}))

		q := f.FetchQuote(ctx, models.MoodHappy)
		if q == nil || q.Author != "Richard Wagner" {
			t.Errorf("unexpected quote %+v", q)
		}
		if !strings.Contains(provider.Prompts()[0], "motivational quote about feeling happy") {
			t.Errorf("unexpected prompt %q", provider.Prompts()[0])
		}
	})
}

func TestPrompts(t *testing.T) {
	if strings.Contains(PlaylistPrompt(models.MoodChill, 10), "quote") {
		t.Error("playlist prompt should not mention quotes")
	}
	if strings.Contains(QuotePrompt(models.MoodChill), "playlist") {
		t.Error("quote prompt should not mention playlists")
	}
}
