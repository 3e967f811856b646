package tasks

import (
	"fmt"

	"github.com/desertthunder/vibecheck/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	CheckStore Phase = iota
	ClaimDay
	FetchPlaylist
	FetchQuote
	SaveContent
	ExportDay
)

func (p Phase) String() string {
	switch p {
	case CheckStore:
		return "check_store"
	case ClaimDay:
		return "claim_day"
	case FetchPlaylist:
		return "fetch_playlist"
	case FetchQuote:
		return "fetch_quote"
	case SaveContent:
		return "save_content"
	case ExportDay:
		return "export_day"
	default:
		return ""
	}
}

func checkStoreUpdate(date string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CheckStore,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Checking saved content for %s...", date),
	}
}

func claimDayUpdate(mood models.MoodKey) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ClaimDay,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Feeling %s. Preparing today's vibe...", mood.Label()),
	}
}

func fetchPlaylistUpdate(mood models.MoodKey, tracks []models.Track) ProgressUpdate {
	if tracks == nil {
		return ProgressUpdate{
			Phase:   FetchPlaylist,
			Step:    0,
			Total:   1,
			Message: fmt.Sprintf("Generating your %s...", models.PlaylistName(mood)),
		}
	}
	return ProgressUpdate{
		Phase:   FetchPlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Playlist ready (%d tracks)", len(tracks)),
		Data:    tracks,
	}
}

func fetchQuoteUpdate(q *models.Quote, done bool) ProgressUpdate {
	if !done {
		return ProgressUpdate{
			Phase:   FetchQuote,
			Step:    0,
			Total:   1,
			Message: "Finding a quote...",
		}
	}
	if q == nil {
		return ProgressUpdate{
			Phase:   FetchQuote,
			Step:    1,
			Total:   1,
			Message: "No quote today",
		}
	}
	return ProgressUpdate{
		Phase:   FetchQuote,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Quote by %s", q.Author),
		Data:    q,
	}
}

func saveContentUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveContent,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Saving today's content...", step, total),
	}
}

func exportingDayUpdate(step, total int, date string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportDay,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, date),
	}
}

func exportCompletedUpdate(step, total int, date string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportDay,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, date, filesCount),
	}
}

func exportFailedUpdate(step, total int, date string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportDay,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, date, err),
	}
}
