package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/vibecheck/internal/models"
	"github.com/desertthunder/vibecheck/internal/shared"
	"github.com/desertthunder/vibecheck/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	MoodListView
	ConfirmView
	GeneratingView
	TodayView
	JournalView
)

// recheckInterval is how long the TUI waits before polling a day that is generating elsewhere.
const recheckInterval = 3 * time.Second

// Journal reads and writes the day's entry. [journal.Adapter] satisfies it.
type Journal interface {
	Load(ctx context.Context, userID, date string) string
	Save(ctx context.Context, userID, date, text string) error
}

// Opener opens a link outside the terminal.
type Opener func(ctx context.Context, target string) error

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.DailyEngine
	journal      Journal
	open         Opener
	userID       string
	width        int
	height       int
	moodList     list.Model
	trackList    list.Model
	editor       textarea.Model
	selectedMood models.MoodKey
	day          *tasks.Day
	entry        string
	progressChan chan tasks.ProgressUpdate
	doneChan     chan Msg
	progress     tasks.ProgressUpdate
	notice       string
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model for userID.
func NewModel(ctx context.Context, engine *tasks.DailyEngine, journal Journal, userID string) *Model {
	editor := textarea.New()
	editor.Placeholder = "Write about your day, your thoughts, or how the music made you feel..."
	editor.ShowLineNumbers = false

	moods := list.New(moodItems(), list.NewDefaultDelegate(), 0, 0)
	moods.Title = "How are you feeling today?"

	tracks := list.New(nil, list.NewDefaultDelegate(), 0, 0)

	return &Model{
		ctx:       ctx,
		view:      LoadingView,
		engine:    engine,
		journal:   journal,
		open:      shared.OpenBrowser,
		userID:    userID,
		moodList:  moods,
		trackList: tracks,
		editor:    editor,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// WithOpener replaces the function used to open track links.
func (m *Model) WithOpener(open Opener) *Model {
	m.open = open
	return m
}

// Init checks today's content for the user.
func (m *Model) Init() tea.Cmd {
	return m.checkDay()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.moodList.SetSize(msg.Width-4, msg.Height-8)
		m.trackList.SetSize(msg.Width-4, msg.Height-14)
		m.editor.SetWidth(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoadingView, GeneratingView:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
			return m, nil
		case MoodListView:
			return m.handleMoodListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case TodayView:
			return m.handleTodayKeys(msg)
		case JournalView:
			return m.handleJournalKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateComponents(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgDayChecked:
		res := msg.data.(dayResult)
		if res.err != nil {
			m.err = res.err
			return m, nil
		}
		return m, m.showDay(res.day)

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgSubmitComplete:
		m.progressChan = nil
		m.doneChan = nil
		res := msg.data.(dayResult)
		if res.err != nil && !errors.Is(res.err, shared.ErrGenerationInProgress) {
			m.err = res.err
			m.view = MoodListView
			return m, nil
		}
		return m, m.showDay(res.day)

	case MsgJournalSaved:
		if err, _ := msg.data.(error); err != nil {
			m.notice = styles.err.Render("Could not save entry")
			return m, nil
		}
		m.entry = strings.TrimSpace(m.editor.Value())
		m.notice = styles.ok.Render("✓ Saved")
		m.editor.Blur()
		m.view = TodayView
		return m, nil

	case MsgTrackOpened:
		if err, _ := msg.data.(error); err != nil {
			m.notice = styles.err.Render(fmt.Sprintf("Could not open track: %v", err))
		}
		return m, nil
	}
	return m, nil
}

// showDay switches to the view matching the day's state.
func (m *Model) showDay(day *tasks.Day) tea.Cmd {
	if day == nil {
		m.view = MoodListView
		return nil
	}
	m.day = day

	switch day.State {
	case tasks.Ready:
		m.view = TodayView
		var tracks []models.Track
		if day.Playlist != nil {
			tracks = day.Playlist.Tracks
		}
		m.trackList = list.New(trackItems(tracks), list.NewDefaultDelegate(), 0, 0)
		m.trackList.Title = m.playlistTitle()
		m.trackList.SetSize(m.width-4, m.height-14)
		m.entry = m.journal.Load(m.ctx, m.userID, day.Date)
		return nil
	case tasks.Generating:
		m.view = GeneratingView
		return tea.Tick(recheckInterval, func(time.Time) tea.Msg {
			return m.checkDay()()
		})
	default:
		m.view = MoodListView
		return nil
	}
}

func (m *Model) handleMoodListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.moodList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.moodList, cmd = m.moodList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.moodList.SelectedItem().(moodItem); ok {
			m.selectedMood = item.mood.Key
			m.err = nil
			m.view = ConfirmView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.moodList, cmd = m.moodList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.quit):
		m.view = MoodListView
		return m, nil
	case key.Matches(msg, m.keys.yes):
		m.view = GeneratingView
		return m, m.startSubmit()
	}
	return m, nil
}

func (m *Model) handleTodayKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.journal):
		m.notice = ""
		m.editor.SetValue(m.entry)
		m.view = JournalView
		return m, m.editor.Focus()
	case key.Matches(msg, m.keys.open):
		if item, ok := m.trackList.SelectedItem().(trackItem); ok && item.track.Link != "" {
			return m, m.openTrack(item.track.Link)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleJournalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.save):
		return m, m.saveJournal(m.editor.Value())
	case key.Matches(msg, m.keys.back):
		m.editor.Blur()
		m.view = TodayView
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case MoodListView:
		m.moodList, cmd = m.moodList.Update(msg)
	case TodayView:
		m.trackList, cmd = m.trackList.Update(msg)
	case JournalView:
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m *Model) checkDay() tea.Cmd {
	return func() tea.Msg {
		day, err := m.engine.Check(m.ctx, m.userID)
		return dayCheckedMsg(day, err)
	}
}

func (m *Model) startSubmit() tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan Msg, 1)
	m.progressChan = progress
	m.doneChan = done
	m.progress = tasks.ProgressUpdate{}
	mood := m.selectedMood

	go func() {
		day, err := m.engine.Submit(m.ctx, m.userID, mood, progress)
		done <- submitCompleteMsg(day, err)
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.doneChan
	return func() tea.Msg {
		if progress == nil {
			return submitCompleteMsg(m.day, nil)
		}

		update, ok := <-progress
		if !ok {
			return <-done
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) saveJournal(text string) tea.Cmd {
	date := m.day.Date
	return func() tea.Msg {
		return journalSavedMsg(m.journal.Save(m.ctx, m.userID, date, text))
	}
}

func (m *Model) openTrack(link string) tea.Cmd {
	return func() tea.Msg {
		return trackOpenedMsg(m.open(m.ctx, link))
	}
}

func (m *Model) playlistTitle() string {
	if m.day == nil || m.day.Playlist == nil {
		return "No playlist today"
	}
	return fmt.Sprintf("%s (%d tracks)", m.day.Playlist.Name, len(m.day.Playlist.Tracks))
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != MoodListView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case LoadingView:
		return styles.help.Render("Checking today's vibe...")
	case MoodListView:
		return m.renderMoodList()
	case ConfirmView:
		return m.renderConfirm()
	case GeneratingView:
		return m.renderGenerating()
	case TodayView:
		return m.renderToday()
	case JournalView:
		return m.renderJournal()
	default:
		return ""
	}
}

func (m *Model) renderMoodList() string {
	var errLine string
	if m.err != nil {
		errLine = styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n"
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})
	return fmt.Sprintf("%s%s\n\n%s", errLine, m.moodList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Feeling %s today?", m.selectedMood.Label()))
	info := "\nYour mood is set once per day.\n"
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderGenerating() string {
	title := styles.title.Render("Generating your daily vibe")

	var phase string
	switch m.progress.Phase {
	case tasks.CheckStore:
		phase = "Checking today's content..."
	case tasks.ClaimDay:
		phase = "Recording your mood..."
	case tasks.FetchPlaylist:
		phase = "Curating your playlist..."
	case tasks.FetchQuote:
		phase = "Finding a quote..."
	case tasks.SaveContent:
		phase = fmt.Sprintf("Saving (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, styles.help.Render(m.progress.Message))
}

func (m *Model) renderToday() string {
	var b strings.Builder
	if m.day.Mood != "" {
		b.WriteString(styles.title.Render(fmt.Sprintf("%s • %s", m.day.Date, m.day.Mood.Label())))
	} else {
		b.WriteString(styles.title.Render(m.day.Date))
	}
	b.WriteString("\n")

	if q := m.day.Quote; q != nil {
		author := q.Author
		if author == "" {
			author = "Unknown"
		}
		b.WriteString(styles.quote.Render(fmt.Sprintf("%q\n%s", q.Text, styles.author.Render("- "+author))))
		b.WriteString("\n\n")
	}

	b.WriteString(m.trackList.View())
	b.WriteString("\n\n")

	if m.entry != "" {
		b.WriteString(styles.help.Render("Journal: " + firstLine(m.entry)))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(m.notice)
		b.WriteString("\n")
	}

	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.open, m.keys.journal, m.keys.quit}))
	return b.String()
}

func (m *Model) renderJournal() string {
	title := styles.title.Render("Daily Journal")
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.save, m.keys.back})
	var notice string
	if m.notice != "" {
		notice = "\n" + m.notice
	}
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, m.editor.View(), notice, helpView)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "..."
	}
	return s
}
