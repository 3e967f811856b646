package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/vibecheck/internal/content"
	"github.com/desertthunder/vibecheck/internal/models"
	"github.com/desertthunder/vibecheck/internal/repositories"
	"github.com/desertthunder/vibecheck/internal/shared"
)

// DefaultStaleAfter is how long a generation claim may stay running before
// it is treated as abandoned.
const DefaultStaleAfter = 5 * time.Minute

// State is the reconciliation state of a user's day.
type State int

const (
	CheckingStore State = iota
	AwaitingMood
	Generating
	Ready
)

func (s State) String() string {
	switch s {
	case CheckingStore:
		return "checking_store"
	case AwaitingMood:
		return "awaiting_mood"
	case Generating:
		return "generating"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Day is the engine's view of one user's content for a date.
type Day struct {
	State    State
	UserID   string
	Date     string
	Mood     models.MoodKey
	Playlist *models.Playlist
	Quote    *models.Quote
}

// Record converts the day to a [models.DayRecord] with the given journal text.
func (d *Day) Record(journal string) models.DayRecord {
	return models.DayRecord{
		UserID:   d.UserID,
		Date:     d.Date,
		Mood:     d.Mood,
		Playlist: d.Playlist,
		Quote:    d.Quote,
		Journal:  journal,
	}
}

// SongStore persists generated tracks.
type SongStore interface {
	Insert(ctx context.Context, row *models.SongRow) error
	ListByUserDate(ctx context.Context, userID, date string) ([]models.SongRow, error)
}

// QuoteStore persists generated quotes.
type QuoteStore interface {
	Insert(ctx context.Context, row *models.QuoteRow) error
	GetByUserDate(ctx context.Context, userID, date string) (*models.QuoteRow, error)
}

// ClaimStore records which days have been generated.
type ClaimStore interface {
	Claim(ctx context.Context, userID, date string, mood models.MoodKey) error
	Complete(ctx context.Context, userID, date string) error
	Get(ctx context.Context, userID, date string) (*repositories.Generation, error)
	Release(ctx context.Context, userID, date string) error
	Touch(ctx context.Context, userID, date string) error
}

// DailyEngine decides whether a user's day already has content and
// generates it at most once per user and date.
type DailyEngine struct {
	source     content.Source
	songs      SongStore
	quotes     QuoteStore
	claims     ClaimStore
	logger     *log.Logger
	clock      shared.Clock
	loc        *time.Location
	staleAfter time.Duration
	since      func(time.Time) time.Duration

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// EngineOpts configures a [DailyEngine]. Zero values fall back to defaults.
type EngineOpts struct {
	Clock      shared.Clock
	Location   *time.Location
	StaleAfter time.Duration
	Logger     *log.Logger
}

// NewDailyEngine creates a new [DailyEngine].
func NewDailyEngine(source content.Source, songs SongStore, quotes QuoteStore, claims ClaimStore, opts EngineOpts) *DailyEngine {
	e := &DailyEngine{
		source:     source,
		songs:      songs,
		quotes:     quotes,
		claims:     claims,
		logger:     opts.Logger,
		clock:      opts.Clock,
		loc:        opts.Location,
		staleAfter: opts.StaleAfter,
		since:      time.Since,
		inFlight:   make(map[string]struct{}),
	}
	if e.logger == nil {
		e.logger = shared.NewLogger(nil)
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.loc == nil {
		e.loc = time.Local
	}
	if e.staleAfter <= 0 {
		e.staleAfter = DefaultStaleAfter
	}
	return e
}

// Today returns the engine's current calendar day.
func (e *DailyEngine) Today() string {
	return shared.Today(e.clock, e.loc)
}

// sendProgress sends a progress update through the channel without blocking.
func (e *DailyEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Check reports the state of today's content for userID.
//
// An empty userID yields a Ready day with no content. Store read failures
// are logged and reported as AwaitingMood.
func (e *DailyEngine) Check(ctx context.Context, userID string) (*Day, error) {
	date := e.Today()
	if userID == "" {
		return &Day{State: Ready, Date: date}, nil
	}

	day, err := e.load(ctx, userID, date)
	if err != nil {
		e.logger.Error("failed to check daily content", "user", userID, "date", date, "error", err)
		return &Day{State: AwaitingMood, UserID: userID, Date: date}, nil
	}
	return day, nil
}

// Load returns the stored content for userID on date without generating anything.
func (e *DailyEngine) Load(ctx context.Context, userID, date string) (*Day, error) {
	if _, err := shared.ParseDate(date); err != nil {
		return nil, err
	}
	return e.load(ctx, userID, date)
}

// Submit records mood for today and generates content unless the day
// already has some. Generation is detached from ctx cancellation.
func (e *DailyEngine) Submit(ctx context.Context, userID string, mood models.MoodKey, progress chan<- ProgressUpdate) (*Day, error) {
	if !mood.Valid() {
		return nil, fmt.Errorf("%w: %q", shared.ErrInvalidMood, mood)
	}
	if userID == "" {
		return nil, shared.ErrNotAuthenticated
	}

	date := e.Today()
	key := userID + "/" + date
	if !e.begin(key) {
		return nil, fmt.Errorf("%w: %s", shared.ErrGenerationInProgress, date)
	}
	defer e.end(key)

	ctx = context.WithoutCancel(ctx)

	e.sendProgress(progress, checkStoreUpdate(date))
	existing, err := e.read(ctx, userID, date, false)
	if err != nil {
		e.logger.Error("failed to check daily content", "user", userID, "date", date, "error", err)
	} else {
		switch existing.State {
		case Ready:
			return existing, nil
		case Generating:
			return existing, fmt.Errorf("%w: %s", shared.ErrGenerationInProgress, date)
		}
	}

	e.sendProgress(progress, claimDayUpdate(mood))
	claimed := true
	if err := e.claims.Claim(ctx, userID, date, mood); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return e.claimedElsewhere(ctx, userID, date)
		}
		e.logger.Error("failed to claim generation", "user", userID, "date", date, "error", err)
		claimed = false
	}

	day := &Day{State: Generating, UserID: userID, Date: date, Mood: mood}
	stop := func() {}
	if claimed {
		stop = e.heartbeat(ctx, userID, date)
	}
	tracks, quote := e.fetch(ctx, mood, progress)
	stop()

	e.persist(ctx, day, tracks, quote, progress)

	if claimed {
		if len(tracks) == 0 && quote == nil {
			if err := e.claims.Release(ctx, userID, date); err != nil {
				e.logger.Error("failed to release generation", "user", userID, "date", date, "error", err)
			}
		} else if err := e.claims.Complete(ctx, userID, date); err != nil {
			e.logger.Error("failed to complete generation", "user", userID, "date", date, "error", err)
		}
	}

	day.State = Ready
	day.Playlist = &models.Playlist{Name: models.PlaylistName(mood), Tracks: tracks}
	day.Quote = quote
	return day, nil
}

// heartbeat keeps a running claim fresh until the returned stop func is called.
func (e *DailyEngine) heartbeat(ctx context.Context, userID, date string) func() {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(max(e.staleAfter/2, time.Millisecond))
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := e.claims.Touch(ctx, userID, date); err != nil {
					e.logger.Warn("failed to refresh generation claim", "user", userID, "date", date, "error", err)
				}
			}
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}

// fetch requests the playlist and quote concurrently and waits for both.
func (e *DailyEngine) fetch(ctx context.Context, mood models.MoodKey, progress chan<- ProgressUpdate) ([]models.Track, *models.Quote) {
	var (
		wg     sync.WaitGroup
		tracks []models.Track
		quote  *models.Quote
	)

	e.sendProgress(progress, fetchPlaylistUpdate(mood, nil))
	e.sendProgress(progress, fetchQuoteUpdate(nil, false))

	wg.Add(2)
	go func() {
		defer wg.Done()
		tracks = e.source.FetchPlaylist(ctx, mood)
		if tracks == nil {
			tracks = []models.Track{}
		}
		e.sendProgress(progress, fetchPlaylistUpdate(mood, tracks))
	}()
	go func() {
		defer wg.Done()
		quote = e.source.FetchQuote(ctx, mood)
		e.sendProgress(progress, fetchQuoteUpdate(quote, true))
	}()
	wg.Wait()

	return tracks, quote
}

// persist writes each track and the quote as separate rows. Failures are logged only.
func (e *DailyEngine) persist(ctx context.Context, day *Day, tracks []models.Track, quote *models.Quote, progress chan<- ProgressUpdate) {
	total := len(tracks)
	if quote != nil {
		total++
	}

	step := 0
	for i, t := range tracks {
		step++
		row := models.NewSongRow(day.UserID, day.Mood, day.Date, i, t)
		if err := e.songs.Insert(ctx, &row); err != nil {
			e.logger.Error("failed to save song", "user", day.UserID, "date", day.Date, "track", t.ID, "error", err)
		}
		e.sendProgress(progress, saveContentUpdate(step, total))
	}

	if quote != nil {
		step++
		row := models.QuoteRow{UserID: day.UserID, Mood: day.Mood, Text: quote.Text, Author: quote.Author, Date: day.Date}
		if err := e.quotes.Insert(ctx, &row); err != nil {
			e.logger.Error("failed to save quote", "user", day.UserID, "date", day.Date, "error", err)
		}
		e.sendProgress(progress, saveContentUpdate(step, total))
	}
}

// claimedElsewhere handles a claim taken by another process between the check and the claim.
func (e *DailyEngine) claimedElsewhere(ctx context.Context, userID, date string) (*Day, error) {
	day, err := e.read(ctx, userID, date, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrGenerationInProgress, date)
	}
	if day.State == Ready {
		return day, nil
	}
	return day, fmt.Errorf("%w: %s", shared.ErrGenerationInProgress, date)
}

// load builds the day from stored rows and the generation claim.
func (e *DailyEngine) load(ctx context.Context, userID, date string) (*Day, error) {
	return e.read(ctx, userID, date, e.running(userID+"/"+date))
}

// read builds the day. A running claim held by this engine (local) is never stale.
func (e *DailyEngine) read(ctx context.Context, userID, date string, local bool) (*Day, error) {
	day := &Day{State: CheckingStore, UserID: userID, Date: date}

	claim, err := e.claims.Get(ctx, userID, date)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	rows, err := e.songs.ListByUserDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	quoteRow, err := e.quotes.GetByUserDate(ctx, userID, date)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	switch {
	case claim != nil:
		day.Mood = claim.Mood
	case len(rows) > 0:
		day.Mood = rows[0].Mood
	case quoteRow != nil:
		day.Mood = quoteRow.Mood
	}

	if len(rows) == 0 && quoteRow == nil {
		switch {
		case claim == nil:
			day.State = AwaitingMood
			return day, nil
		case claim.Status == repositories.GenerationRunning && !local && e.since(claim.UpdatedAt) > e.staleAfter:
			e.logger.Warn("releasing stale generation claim", "user", userID, "date", date, "claimed_at", claim.UpdatedAt)
			if err := e.claims.Release(ctx, userID, date); err != nil {
				return nil, err
			}
			day.State = AwaitingMood
			day.Mood = ""
			return day, nil
		case claim.Status == repositories.GenerationRunning:
			day.State = Generating
			return day, nil
		}
	}

	tracks := make([]models.Track, 0, len(rows))
	for _, r := range rows {
		tracks = append(tracks, r.Track())
	}
	day.Playlist = &models.Playlist{Name: models.PlaylistName(day.Mood), Tracks: tracks}
	if quoteRow != nil {
		q := quoteRow.Quote()
		day.Quote = &q
	}
	day.State = Ready
	return day, nil
}

func (e *DailyEngine) begin(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.inFlight[key]; ok {
		return false
	}
	e.inFlight[key] = struct{}{}
	return true
}

func (e *DailyEngine) running(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.inFlight[key]
	return ok
}

func (e *DailyEngine) end(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight, key)
}
