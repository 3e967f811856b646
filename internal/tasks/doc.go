// Package tasks reconciles each user's day with stored content and generates it when missing.
//
// # Daily Reconciliation
//
// [DailyEngine] moves a user's day through an explicit [State]:
//
//  1. [DailyEngine.Check] : read the store for today
//     - rows or a finished claim for (user, date) give Ready
//     - a running claim with no rows gives Generating
//     - nothing gives AwaitingMood
//
//  2. [DailyEngine.Submit] : record a mood and generate once
//     - claims (user, date) before fetching
//     - fetches the playlist and quote concurrently
//     - stores each track and the quote as separate rows
//     - marks the claim done, or releases it when nothing was produced
//
// Today is computed from an injected clock in the configured location.
//
// # Progress Reporting
//
// Operations accept an optional channel of [ProgressUpdate] values.
// Updates use select with default to prevent blocking.
//
// # Export
//
// [DailyEngine.BulkExport] writes stored days with their journal entries to
// disk through a worker pool behind a rate limiter, then writes a manifest.
package tasks
