package models

import "time"

// JournalEntry is the free-text note a user keeps for a calendar day.
type JournalEntry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	EntryDate string    `json:"entry_date"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
