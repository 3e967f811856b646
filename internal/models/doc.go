// Package models defines domain entities and persistence interfaces for vibecheck.
//
// The package contains three categories of types:
//
// 1. Catalog data: the closed set of moods and their display metadata
//   - [MoodKey] : one of happy, sad, relaxed, energetic, focus, anxious, romantic, chill
//   - [Mood] : label, icon and ordering for a [MoodKey]
//
// 2. Content: what a user receives for a day
//   - [Track], [Playlist], [Quote] : generated or canned content
//   - [SongRow], [QuoteRow] : the persisted forms, tagged with (user, mood, date)
//   - [DayRecord] : everything known about one user's day
//
// 3. Accounts and journaling
//   - [User] : account backed by the users table, implements [Model]
//   - [Session] : an authenticated session issued by an auth provider
//   - [JournalEntry] : free text, at most one per (user, date)
//
// The [Repository] interface defines standard CRUD operations for database access.
package models
