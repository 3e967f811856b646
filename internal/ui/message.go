package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/vibecheck/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgDayChecked MsgKind = iota
	MsgProgressUpdate
	MsgSubmitComplete
	MsgJournalSaved
	MsgTrackOpened
)

type dayResult struct {
	day *tasks.Day
	err error
}

// dayCheckedMsg is the constructor for [MsgDayChecked]
func dayCheckedMsg(day *tasks.Day, err error) Msg {
	return Msg{kind: MsgDayChecked, data: dayResult{day, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// submitCompleteMsg is the constructor for [MsgSubmitComplete]
func submitCompleteMsg(day *tasks.Day, err error) Msg {
	return Msg{kind: MsgSubmitComplete, data: dayResult{day, err}}
}

// journalSavedMsg is the constructor for [MsgJournalSaved]
func journalSavedMsg(err error) Msg {
	return Msg{kind: MsgJournalSaved, data: err}
}

// trackOpenedMsg is the constructor for [MsgTrackOpened]
func trackOpenedMsg(err error) Msg {
	return Msg{kind: MsgTrackOpened, data: err}
}
