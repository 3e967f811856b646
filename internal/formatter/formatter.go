// package formatter exports a day's mood, playlist, quote and journal to CSV, Markdown, plain text and JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/desertthunder/vibecheck/internal/models"
)

// Supported export formats.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// Formats lists the supported export formats.
func Formats() []string {
	return []string{FormatJSON, FormatCSV, FormatMarkdown, FormatText}
}

func tracks(rec *models.DayRecord) []models.Track {
	if rec.Playlist == nil {
		return nil
	}
	return rec.Playlist.Tracks
}

func playlistName(rec *models.DayRecord) string {
	if rec.Playlist != nil && rec.Playlist.Name != "" {
		return rec.Playlist.Name
	}
	return models.PlaylistName(rec.Mood)
}

// ExportToCSV converts a DayRecord's playlist to CSV with columns: Position, ID, Title, Artist, Cover, Link, Preview
func ExportToCSV(rec *models.DayRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "ID", "Title", "Artist", "Cover", "Link", "Preview"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, track := range tracks(rec) {
		record := []string{
			strconv.Itoa(i + 1),
			track.ID,
			track.Title,
			track.Artist,
			track.Cover,
			track.Link,
			track.Preview,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a DayRecord to Markdown with an optional cover image
func ExportToMarkdown(rec *models.DayRecord, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", rec.Date)

	if imageFilename != "" {
		fmt.Fprintf(&buf, "![Cover](%s)\n\n", imageFilename)
	}

	if rec.Mood != "" {
		fmt.Fprintf(&buf, "**Mood**: %s\n\n", rec.Mood.Label())
	}

	if rec.Quote != nil {
		fmt.Fprintf(&buf, "> %s\n>\n> *%s*\n\n", rec.Quote.Text, rec.Quote.Author)
	}

	list := tracks(rec)
	fmt.Fprintf(&buf, "## %s\n\n", playlistName(rec))
	fmt.Fprintf(&buf, "**Tracks**: %d\n\n", len(list))
	for i, track := range list {
		if track.Link != "" {
			fmt.Fprintf(&buf, "%d. [%s - %s](%s)\n", i+1, track.Artist, track.Title, track.Link)
		} else {
			fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, track.Artist, track.Title)
		}
	}

	if rec.Journal != "" {
		fmt.Fprintf(&buf, "\n## Journal\n\n%s\n", rec.Journal)
	}

	return buf.Bytes(), nil
}

// ExportToText converts a DayRecord to plain text format
func ExportToText(rec *models.DayRecord) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Date: %s\n", rec.Date)
	if rec.Mood != "" {
		fmt.Fprintf(&buf, "Mood: %s\n", rec.Mood.Label())
	}
	if rec.Quote != nil {
		fmt.Fprintf(&buf, "Quote: \"%s\" - %s\n", rec.Quote.Text, rec.Quote.Author)
	}

	list := tracks(rec)
	fmt.Fprintf(&buf, "Playlist: %s\n", playlistName(rec))
	fmt.Fprintf(&buf, "Tracks: %d\n\n", len(list))

	for i, track := range list {
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, track.Artist, track.Title)
	}

	if rec.Journal != "" {
		fmt.Fprintf(&buf, "\nJournal:\n%s\n", rec.Journal)
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders the full record as indented JSON
func ExportToJSON(rec *models.DayRecord) ([]byte, error) {
	return json.MarshalIndent(rec, "", "  ")
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// dayMetadata is a DayRecord without its track list.
type dayMetadata struct {
	Date       string         `json:"date"`
	Mood       models.MoodKey `json:"mood,omitempty"`
	Playlist   string         `json:"playlist"`
	TrackCount int            `json:"track_count"`
	Quote      *models.Quote  `json:"quote,omitempty"`
	Journal    string         `json:"journal,omitempty"`
}

// ToMetadataJSON generates a JSON representation of the day without its tracks
func ToMetadataJSON(rec *models.DayRecord) ([]byte, error) {
	return json.MarshalIndent(dayMetadata{
		Date:       rec.Date,
		Mood:       rec.Mood,
		Playlist:   playlistName(rec),
		TrackCount: len(tracks(rec)),
		Quote:      rec.Quote,
		Journal:    rec.Journal,
	}, "", "  ")
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	TracksFile   string
	MetadataFile string
}

// WriteCSVExport exports a day to CSV format with accompanying metadata JSON file.
//
// Defaults to the date as the base filename & creates {base}_tracks.csv and {base}_metadata.json
func WriteCSVExport(rec *models.DayRecord, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = rec.Date
	}

	csvData, err := ExportToCSV(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	tracksFile := baseFilepath + "_tracks.csv"
	if err := os.WriteFile(tracksFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		TracksFile:   tracksFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports a day to Markdown format in a dedicated directory.
//
// Directory name defaults to the date.
// The imageURL parameter is optional - if provided, attempts to download the cover image.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteMarkdownExport(rec *models.DayRecord, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = rec.Date
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := filepath.Join(outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(rec, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a day to plain text format.
//
// Defaults to {date}.txt as the filename.
func WriteTextExport(rec *models.DayRecord, path string) (string, error) {
	if path == "" {
		path = rec.Date + ".txt"
	}

	textData, err := ExportToText(rec)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}

// WriteJSONExport writes the full record as JSON.
//
// Defaults to {date}.json as the filename.
func WriteJSONExport(rec *models.DayRecord, path string) (string, error) {
	if path == "" {
		path = rec.Date + ".json"
	}

	data, err := ExportToJSON(rec)
	if err != nil {
		return "", fmt.Errorf("JSON marshal failed: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("JSON write failed: %w", err)
	}

	return path, nil
}

// ManifestEntry describes the outcome of exporting one day.
type ManifestEntry struct {
	Date   string   `json:"date"`
	Status string   `json:"status"`
	Files  []string `json:"files,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// Manifest summarizes a bulk export.
type Manifest struct {
	Format          string          `json:"format"`
	UserID          string          `json:"user_id"`
	GeneratedAt     time.Time       `json:"generated_at"`
	OutputDirectory string          `json:"output_directory"`
	TotalDays       int             `json:"total_days"`
	Successful      int             `json:"successful_exports"`
	Failed          int             `json:"failed_exports"`
	Days            []ManifestEntry `json:"days"`
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(m Manifest, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
