package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/vibecheck/internal/formatter"
	"github.com/desertthunder/vibecheck/internal/models"
	"github.com/desertthunder/vibecheck/internal/shared"
)

var errNoContent = errors.New("no content for day")

// JournalLoader reads journal text for a day. [journal.Adapter] satisfies it.
type JournalLoader interface {
	Load(ctx context.Context, userID, date string) string
}

// BulkExportOpts contains configuration for bulk day exports.
type BulkExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: vibecheck_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Days loaded per second (default: 5)
	WithCovers bool    // Download the first track's cover for markdown exports
}

// DayExportResult is the outcome of exporting a single day.
type DayExportResult struct {
	Date    string
	Success bool
	Files   []string
	Error   error
}

// BulkExportResult summarizes a bulk export.
type BulkExportResult struct {
	UserID            string
	TotalDays         int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []DayExportResult
}

type dayExportJob struct {
	Record models.DayRecord
}

// BulkExport exports stored days for userID concurrently with rate limiting and progress tracking.
//
// Days without a playlist, quote or journal entry are reported as failures.
// A manifest summarizing the results is written to the output directory.
func (e *DailyEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	journal JournalLoader,
	userID string,
	dates []string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user", shared.ErrMissingArgument)
	}

	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("vibecheck_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		UserID:          userID,
		TotalDays:       len(dates),
		OutputDirectory: opts.OutputDir,
		Results:         make([]DayExportResult, 0, len(dates)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan dayExportJob, len(dates))
	results := make(chan DayExportResult, len(dates))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, date := range dates {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				return
			}

			rec, err := e.record(ctx, journal, userID, date)
			if err != nil {
				results <- DayExportResult{Date: date, Error: err}
				continue
			}

			jobs <- dayExportJob{Record: rec}
			e.sendProgress(prog, exportingDayUpdate(i+1, len(dates), date))
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(dates), res.Date, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(dates), res.Date, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteManifest(manifestFor(result, opts.Format), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// record loads a day with its journal entry for export.
func (e *DailyEngine) record(ctx context.Context, journal JournalLoader, userID, date string) (models.DayRecord, error) {
	day, err := e.Load(ctx, userID, date)
	if err != nil {
		return models.DayRecord{}, fmt.Errorf("failed to load day: %w", err)
	}

	var text string
	if journal != nil {
		text = journal.Load(ctx, userID, date)
	}

	rec := day.Record(text)
	if !rec.HasContent() && rec.Journal == "" {
		return rec, errNoContent
	}
	return rec, nil
}

// exportWorker is a worker goroutine that exports days from the jobs channel.
func (e *DailyEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan dayExportJob,
	results chan<- DayExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- exportDay(job.Record, opts)
	}
}

// exportDay writes a single day in the requested format.
func exportDay(rec models.DayRecord, opts BulkExportOpts) DayExportResult {
	result := DayExportResult{Date: rec.Date, Files: []string{}}

	switch opts.Format {
	case formatter.FormatCSV:
		csvRes, err := formatter.WriteCSVExport(&rec, filepath.Join(opts.OutputDir, rec.Date))
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.TracksFile, csvRes.MetadataFile}

	case formatter.FormatMarkdown:
		var imageURL string
		if opts.WithCovers && rec.Playlist != nil && len(rec.Playlist.Tracks) > 0 {
			imageURL = rec.Playlist.Tracks[0].Cover
		}

		mdRes, err := formatter.WriteMarkdownExport(&rec, filepath.Join(opts.OutputDir, rec.Date), imageURL)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files

	case formatter.FormatText:
		path, err := formatter.WriteTextExport(&rec, filepath.Join(opts.OutputDir, rec.Date+".txt"))
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{path}

	default:
		path, err := formatter.WriteJSONExport(&rec, filepath.Join(opts.OutputDir, rec.Date+".json"))
		if err != nil {
			result.Error = err
			return result
		}
		result.Files = []string{path}
	}

	result.Success = true
	return result
}

func manifestFor(r *BulkExportResult, format string) formatter.Manifest {
	m := formatter.Manifest{
		Format:          format,
		UserID:          r.UserID,
		GeneratedAt:     time.Now().UTC(),
		OutputDirectory: r.OutputDirectory,
		TotalDays:       r.TotalDays,
		Successful:      r.SuccessfulExports,
		Failed:          r.FailedExports,
		Days:            make([]formatter.ManifestEntry, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		entry := formatter.ManifestEntry{Date: res.Date, Status: "success", Files: res.Files}
		if !res.Success {
			entry.Status = "failed"
			if res.Error != nil {
				entry.Error = res.Error.Error()
			}
		}
		m.Days = append(m.Days, entry)
	}
	return m
}
