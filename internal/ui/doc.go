// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI walks through a single day:
//  1. [LoadingView] : Check whether today already has content
//  2. [MoodListView] : Pick a mood
//  3. [ConfirmView] : Confirm the mood, which is set once per day
//  4. [GeneratingView] : Monitor progress while the playlist and quote are generated
//  5. [TodayView] : Browse the playlist and read the quote
//  6. [JournalView] : Edit the day's journal entry
//
// Progress updates flow through a channel from the DailyEngine. Keyboard navigation
// uses vim-style bindings with contextual help from charmbracelet/bubbles/help.
package ui
