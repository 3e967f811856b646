package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibecheck/internal/auth"
	"github.com/desertthunder/vibecheck/internal/formatter"
	"github.com/desertthunder/vibecheck/internal/journal"
	"github.com/desertthunder/vibecheck/internal/models"
	"github.com/desertthunder/vibecheck/internal/repositories"
	"github.com/desertthunder/vibecheck/internal/shared"
	"github.com/desertthunder/vibecheck/internal/tasks"
)

// defaultExportDays is the span exported when --since is omitted.
const defaultExportDays = 7

type todayOutput struct {
	State string `json:"state"`
	models.DayRecord
}

// Moods prints the mood catalog.
func (r *Runner) Moods(ctx context.Context, cmd *cli.Command) error {
	moods := models.Moods()
	if cmd.Bool("json") {
		return r.writeJSON(moods, true)
	}

	rows := make([][]any, 0, len(moods))
	for _, m := range moods {
		rows = append(rows, []any{m.Key, m.Label, m.Icon})
	}
	return r.writeTable([]any{"KEY", "LABEL", "ICON"}, rows)
}

// Today prints today's content for --user, submitting --mood first when given.
func (r *Runner) Today(ctx context.Context, cmd *cli.Command) error {
	userID, err := requireUser(cmd)
	if err != nil {
		return err
	}

	engine, j, err := r.daily()
	if err != nil {
		return err
	}

	var day *tasks.Day
	if raw := cmd.String("mood"); raw != "" {
		mood, err := models.ParseMood(raw)
		if err != nil {
			return fmt.Errorf("%w: %w", shared.ErrInvalidMood, err)
		}

		r.logger.Info("submitting mood", "user", userID, "mood", mood)
		day, err = engine.Submit(ctx, userID, mood, nil)
		if err != nil && !errors.Is(err, shared.ErrGenerationInProgress) {
			return err
		}
	} else {
		day, err = engine.Check(ctx, userID)
		if err != nil {
			return err
		}
	}

	rec := day.Record(j.Load(ctx, userID, day.Date))
	if cmd.Bool("json") {
		return r.writeJSON(todayOutput{State: day.State.String(), DayRecord: rec}, true)
	}
	return r.writeDay(day.State, rec)
}

func (r *Runner) writeDay(state tasks.State, rec models.DayRecord) error {
	r.writePlainHeader(rec.Date)

	switch state {
	case tasks.AwaitingMood:
		r.writePlain("No mood recorded yet. Pick one with --mood (see 'vibecheck moods').\n")
		return nil
	case tasks.Generating:
		r.writePlain("Today's content is still being generated. Try again shortly.\n")
		return nil
	}

	if rec.Mood != "" {
		r.writePlain("Mood: %s\n", rec.Mood.Label())
	}

	if rec.Quote != nil {
		author := rec.Quote.Author
		if author == "" {
			author = "Unknown"
		}
		r.writePlainln("%q\n  - %s", rec.Quote.Text, author)
	}

	if rec.Playlist != nil && len(rec.Playlist.Tracks) > 0 {
		r.writePlainln("%s (%d tracks)", rec.Playlist.Name, len(rec.Playlist.Tracks))
		rows := make([][]any, 0, len(rec.Playlist.Tracks))
		for i, t := range rec.Playlist.Tracks {
			rows = append(rows, []any{i + 1, t.Title, t.Artist, t.Link})
		}
		if err := r.writeTable([]any{"#", "TITLE", "ARTIST", "LINK"}, rows); err != nil {
			return err
		}
	}

	if rec.Journal != "" {
		r.writePlainln("Journal:\n%s", rec.Journal)
	}
	return nil
}

// dayFor resolves --date, defaulting to the engine's today.
func dayFor(cmd *cli.Command, engine *tasks.DailyEngine) (string, error) {
	date := cmd.String("date")
	if date == "" {
		return engine.Today(), nil
	}
	if _, err := shared.ParseDate(date); err != nil {
		return "", err
	}
	return date, nil
}

// JournalRead prints the journal entry for a day.
func (r *Runner) JournalRead(ctx context.Context, cmd *cli.Command) error {
	userID, err := requireUser(cmd)
	if err != nil {
		return err
	}

	engine, j, err := r.daily()
	if err != nil {
		return err
	}

	date, err := dayFor(cmd, engine)
	if err != nil {
		return err
	}

	text := j.Load(ctx, userID, date)
	if text == "" {
		r.logger.Info("no journal entry", "user", userID, "date", date)
		return nil
	}
	return r.writePlain("%s\n", text)
}

// JournalWrite replaces the journal entry for a day.
func (r *Runner) JournalWrite(ctx context.Context, cmd *cli.Command) error {
	userID, err := requireUser(cmd)
	if err != nil {
		return err
	}

	text := cmd.StringArg("text")
	if text == "" {
		return fmt.Errorf("%w: text", shared.ErrMissingArgument)
	}

	engine, j, err := r.daily()
	if err != nil {
		return err
	}

	date, err := dayFor(cmd, engine)
	if err != nil {
		return err
	}

	if err := j.Save(ctx, userID, date, text); err != nil {
		return err
	}

	r.writePlain("✓ Saved journal entry for %s\n", date)
	return nil
}

// JournalList prints the most recent entries for --user.
func (r *Runner) JournalList(ctx context.Context, cmd *cli.Command) error {
	userID, err := requireUser(cmd)
	if err != nil {
		return err
	}

	entries, err := r.listEntries(ctx, userID, int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	if len(entries) == 0 {
		r.writePlain("No journal entries\n")
		return nil
	}

	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{e.EntryDate, e.Content})
	}
	return r.writeTable([]any{"DATE", "ENTRY"}, rows)
}

// listEntries reads recent entries from whichever journal backend is configured.
func (r *Runner) listEntries(ctx context.Context, userID string, limit int) ([]models.JournalEntry, error) {
	db, err := r.database()
	if err != nil {
		return nil, err
	}

	store, err := r.journalStore(db)
	if err != nil {
		return nil, err
	}

	local, ok := store.(*journal.LocalStore)
	if !ok {
		return repositories.NewJournalRepository(db).ListByUser(ctx, userID, limit)
	}

	dates := local.Dates(ctx, userID)
	if limit > 0 && len(dates) > limit {
		dates = dates[:limit]
	}

	entries := make([]models.JournalEntry, 0, len(dates))
	for _, date := range dates {
		text, err := local.Get(ctx, userID, date)
		if err != nil {
			r.logger.Warn("failed to read journal entry", "date", date, "error", err)
			continue
		}
		entries = append(entries, models.JournalEntry{UserID: userID, EntryDate: date, Content: text})
	}
	return entries, nil
}

// UserCreate registers an account with the configured auth provider.
func (r *Runner) UserCreate(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	provider, err := r.authProvider(db)
	if err != nil {
		return err
	}

	email := cmd.String("email")
	password := cmd.String("password")
	if errs := auth.ValidateRegistration(email, cmd.String("username"), password, password); errs != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidInput, errs)
	}

	user, err := provider.SignUp(ctx, email, password, cmd.String("username"))
	if err != nil {
		return err
	}

	r.logger.Info("user created", "provider", provider.Name(), "id", user.ID())
	r.writePlain("✓ Created %s\n", user.DisplayName())
	r.writePlain("  ID: %s\n", user.ID())
	return nil
}

// Export writes each stored day in the requested range to files.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	userID, err := requireUser(cmd)
	if err != nil {
		return err
	}

	format := cmd.String("format")
	if !validFormat(format) {
		return fmt.Errorf("%w: format %q", shared.ErrInvalidFlag, format)
	}

	engine, j, err := r.daily()
	if err != nil {
		return err
	}

	dates, err := exportRange(engine.Today(), cmd.String("since"), cmd.String("until"))
	if err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 2*len(dates))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range progress {
			r.logger.Debug(u.Message, "phase", u.Phase, "step", u.Step, "total", u.Total)
		}
	}()

	result, err := engine.BulkExport(ctx, progress, j, userID, dates, tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		WithCovers: cmd.Bool("covers"),
	})
	close(progress)
	<-done
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.writePlainHeader("Export complete")
	r.writePlain("Days: %d  Exported: %d  Skipped: %d\n", result.TotalDays, result.SuccessfulExports, result.FailedExports)
	r.writePlain("Output: %s\n", result.OutputDirectory)
	r.writePlain("Manifest: %s\n", result.ManifestPath)
	return nil
}

func validFormat(format string) bool {
	for _, f := range formatter.Formats() {
		if f == format {
			return true
		}
	}
	return false
}

// exportRange lists every day from since to until inclusive.
//
// Empty bounds default to the last [defaultExportDays] days ending today.
func exportRange(today, since, until string) ([]string, error) {
	if until == "" {
		until = today
	}
	end, err := shared.ParseDate(until)
	if err != nil {
		return nil, err
	}

	var start time.Time
	if since == "" {
		start = end.AddDate(0, 0, -(defaultExportDays - 1))
	} else if start, err = shared.ParseDate(since); err != nil {
		return nil, err
	}

	if start.After(end) {
		return nil, fmt.Errorf("%w: --since %s is after --until %s", shared.ErrInvalidArgument, since, until)
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, shared.FormatDate(d))
	}
	return dates, nil
}
