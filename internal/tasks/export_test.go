package tasks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/vibecheck/internal/formatter"
	"github.com/desertthunder/vibecheck/internal/models"
	th "github.com/desertthunder/vibecheck/internal/testing"
)

type mapJournal map[string]string

func (m mapJournal) Load(_ context.Context, userID, date string) string {
	return m[userID+"/"+date]
}

func seedDay(t *testing.T, f *fixture, date string) {
	t.Helper()
	ctx := context.Background()

	for i, title := range []string{"Here Comes the Sun", "Walking on Sunshine"} {
		row := models.NewSongRow("user-1", models.MoodHappy, date, i, models.Track{
			ID: title, Title: title, Artist: "Artist", Cover: "", Link: "https://l/" + title,
		})
		if err := f.songs.Insert(ctx, &row); err != nil {
			t.Fatalf("failed to seed song: %v", err)
		}
	}
	q := models.QuoteRow{UserID: "user-1", Mood: models.MoodHappy, Text: "Keep going.", Author: "Wagner", Date: date}
	if err := f.quotes.Insert(ctx, &q); err != nil {
		t.Fatalf("failed to seed quote: %v", err)
	}
}

func TestBulkExport(t *testing.T) {
	ctx := context.Background()

	formats := []struct {
		format string
		files  int
		check  string
	}{
		{formatter.FormatJSON, 1, "2025-05-30.json"},
		{formatter.FormatCSV, 2, "2025-05-30_tracks.csv"},
		{formatter.FormatMarkdown, 1, "README.md"},
		{formatter.FormatText, 1, "2025-05-30.txt"},
	}

	for _, tt := range formats {
		t.Run(tt.format, func(t *testing.T) {
			f := newFixture(t)
			seedDay(t, f, "2025-05-30")
			seedDay(t, f, "2025-05-31")

			dir := filepath.Join(t.TempDir(), "export")
			result, err := f.engine().BulkExport(ctx, nil, nil, "user-1", []string{"2025-05-30", "2025-05-31"}, BulkExportOpts{
				Format:     tt.format,
				OutputDir:  dir,
				NumWorkers: 2,
				RateLimit:  100,
			})
			if err != nil {
				t.Fatalf("BulkExport() error = %v", err)
			}

			if result.SuccessfulExports != 2 || result.FailedExports != 0 {
				t.Fatalf("unexpected result %+v", result)
			}
			th.AssertFileExists(t, result.ManifestPath)

			found := false
			for _, res := range result.Results {
				if len(res.Files) != tt.files {
					t.Errorf("%s: expected %d files, got %v", res.Date, tt.files, res.Files)
				}
				for _, file := range res.Files {
					th.AssertFileExists(t, file)
					if strings.HasSuffix(file, tt.check) {
						found = true
					}
				}
			}
			if !found {
				t.Errorf("expected a file ending in %s", tt.check)
			}
		})
	}
}

func TestBulkExport_JournalAndFailures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedDay(t, f, "2025-05-30")

	journal := mapJournal{
		"user-1/2025-05-30": "Sunny day.",
		"user-1/2025-05-29": "Only wrote in the journal.",
	}

	dir := t.TempDir()
	progress := make(chan ProgressUpdate, 32)
	result, err := f.engine().BulkExport(ctx, progress, journal, "user-1",
		[]string{"2025-05-29", "2025-05-30", "2025-05-28", "not-a-date"},
		BulkExportOpts{Format: formatter.FormatJSON, OutputDir: dir, RateLimit: 100},
	)
	close(progress)
	if err != nil {
		t.Fatalf("BulkExport() error = %v", err)
	}

	if result.TotalDays != 4 || result.SuccessfulExports != 2 || result.FailedExports != 2 {
		t.Errorf("unexpected counts %+v", result)
	}

	data, err := os.ReadFile(filepath.Join(dir, "2025-05-30.json"))
	if err != nil {
		t.Fatalf("expected export file: %v", err)
	}
	if !strings.Contains(string(data), "Sunny day.") || !strings.Contains(string(data), "Wagner") {
		t.Errorf("export missing journal or quote: %s", data)
	}

	manifest := th.MustReadFile(t, result.ManifestPath)
	if !strings.Contains(manifest, `"status": "failed"`) || !strings.Contains(manifest, "no content for day") {
		t.Errorf("manifest missing failure entry: %s", manifest)
	}

	phases := map[Phase]bool{}
	for u := range progress {
		phases[u.Phase] = true
	}
	if !phases[ExportDay] {
		t.Error("expected ExportDay progress updates")
	}
}

func TestBulkExport_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("missing user", func(t *testing.T) {
		if _, err := f.engine().BulkExport(ctx, nil, nil, "", []string{"2025-05-30"}, BulkExportOpts{OutputDir: t.TempDir()}); err == nil {
			t.Error("expected error for empty user")
		}
	})

	t.Run("invalid output directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := f.engine().BulkExport(ctx, nil, nil, "user-1", []string{"2025-05-30"}, BulkExportOpts{OutputDir: filepath.Join(file, "sub")})
		if err == nil {
			t.Error("expected error for output directory under a file")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		seedDay(t, f, "2025-05-30")
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		result, err := f.engine().BulkExport(cctx, nil, nil, "user-1", []string{"2025-05-30"}, BulkExportOpts{OutputDir: t.TempDir()})
		if err != nil {
			t.Fatalf("BulkExport() error = %v", err)
		}
		if result.SuccessfulExports != 0 {
			t.Errorf("expected no exports after cancellation, got %d", result.SuccessfulExports)
		}
	})
}
