// Package repositories implements SQLite persistence for vibecheck.
//
// Key Implementations:
//   - [UserRepository] : local accounts with email lookups and human-readable sequence numbers
//   - [SessionRepository] : opaque session tokens issued by the local auth provider
//   - [JournalRepository] : one journal entry per (user, date), saved with an upsert
//   - [SongRepository] : generated tracks, one row each, tagged with (user, mood, date)
//   - [QuoteRepository] : generated quotes tagged with (user, mood, date)
//   - [GenerationRepository] : per-day claims that keep generation to a single run
//
// A missing row is reported as [shared.ErrNotFound] so callers can tell it apart from a failed query.
package repositories
