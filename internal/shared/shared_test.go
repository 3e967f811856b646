package shared

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestToday(t *testing.T) {
	utc := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)

	tc := []struct {
		name string
		loc  *time.Location
		want string
	}{
		{name: "utc", loc: time.UTC, want: "2025-06-01"},
		{name: "ahead of utc", loc: time.FixedZone("UTC+2", 2*60*60), want: "2025-06-02"},
		{name: "behind utc", loc: time.FixedZone("UTC-5", -5*60*60), want: "2025-06-01"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Today(FixedClock(utc), tt.loc); got != tt.want {
				t.Errorf("Today() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2025-06-01"); err != nil {
		t.Errorf("expected valid date, got %v", err)
	}

	for _, in := range []string{"", "2025-6-1", "06/01/2025", "2025-02-30"} {
		if _, err := ParseDate(in); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) = %v, want ErrInvalidDate", in, err)
		}
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique ids")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("expected a uuid, got %q", a)
	}
}

func TestConfigureLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	if err := ConfigureLogger(logger, "warn"); err != nil {
		t.Fatalf("ConfigureLogger failed: %v", err)
	}
	if logger.GetLevel() != log.WarnLevel {
		t.Errorf("expected warn level, got %s", logger.GetLevel())
	}

	logger.Info("hidden")
	WithLogger(logger, "component", "test").Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "component=test") {
		t.Errorf("expected child logger output, got %q", out)
	}

	if err := ConfigureLogger(logger, "loud"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "vibecheck.log")

	logger, f, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer f.Close()

	logger.Info("written to file")
}

func TestOpenBrowser(t *testing.T) {
	if err := OpenBrowser(context.Background(), "file:///etc/passwd"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for non-http URL, got %v", err)
	}

	original := getRuntime
	defer func() { getRuntime = original }()
	getRuntime = func() string { return "plan9" }

	if err := OpenBrowser(context.Background(), "http://localhost:3000"); err == nil {
		t.Error("expected unsupported platform error")
	}

	cmd, err := browserCommand(context.Background(), "linux", "http://localhost:3000")
	if err != nil {
		t.Fatalf("browserCommand failed: %v", err)
	}
	if !strings.HasSuffix(cmd.Path, "xdg-open") && cmd.Args[0] != "xdg-open" {
		t.Errorf("expected xdg-open, got %v", cmd.Args)
	}
}
