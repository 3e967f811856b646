package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gosuri/uitable"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibecheck/internal/auth"
	"github.com/desertthunder/vibecheck/internal/content"
	"github.com/desertthunder/vibecheck/internal/journal"
	"github.com/desertthunder/vibecheck/internal/repositories"
	"github.com/desertthunder/vibecheck/internal/services"
	"github.com/desertthunder/vibecheck/internal/shared"
	"github.com/desertthunder/vibecheck/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	clock      shared.Clock
	db         *sql.DB
	version    string
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Clock      shared.Clock
	DB         *sql.DB // Opened from Config.Database on first use when nil
	Version    string
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		clock:      opts.Clock,
		db:         opts.DB,
		version:    opts.Version,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// Close releases the database handle if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, setupCommand, moodsCommand, todayCommand, journalCommand, userCommand, exportCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// database opens the configured database and runs pending migrations on first use.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, err
	}
	r.db = db
	return db, nil
}

// source builds the content source selected by provider.kind.
func (r *Runner) source() (content.Source, error) {
	switch r.config.Provider.Kind {
	case shared.ContentProviderStatic, "":
		return content.NewStaticSource(), nil
	case shared.ContentProviderOpenAI:
		provider, err := services.NewOpenAIProvider(r.config.Provider, r.httpClient)
		if err != nil {
			return nil, err
		}
		logger := shared.WithLogger(r.logger, "component", "content")
		return content.NewFetcher(provider, r.config.Provider.PlaylistSize, logger), nil
	default:
		return nil, fmt.Errorf("%w: provider.kind %q", shared.ErrInvalidConfig, r.config.Provider.Kind)
	}
}

// engine wires a [tasks.DailyEngine] to the database repositories.
func (r *Runner) engine(db *sql.DB) (*tasks.DailyEngine, error) {
	src, err := r.source()
	if err != nil {
		return nil, err
	}

	loc, err := r.config.Location()
	if err != nil {
		return nil, err
	}

	return tasks.NewDailyEngine(
		src,
		repositories.NewSongRepository(db),
		repositories.NewQuoteRepository(db),
		repositories.NewGenerationRepository(db),
		tasks.EngineOpts{
			Clock:    r.clock,
			Location: loc,
			Logger:   shared.WithLogger(r.logger, "component", "engine"),
		},
	), nil
}

// journalStore returns the backend selected by journal.backend.
func (r *Runner) journalStore(db *sql.DB) (journal.Store, error) {
	switch r.config.Journal.Backend {
	case shared.JournalBackendDatabase, "":
		return journal.NewDatabaseStore(repositories.NewJournalRepository(db)), nil
	case shared.JournalBackendLocal:
		return journal.NewLocalStore(r.config.Journal.LocalPath), nil
	default:
		return nil, fmt.Errorf("%w: journal.backend %q", shared.ErrInvalidConfig, r.config.Journal.Backend)
	}
}

func (r *Runner) journal(db *sql.DB) (*journal.Adapter, error) {
	store, err := r.journalStore(db)
	if err != nil {
		return nil, err
	}
	return journal.NewAdapter(store, shared.WithLogger(r.logger, "component", "journal")), nil
}

func (r *Runner) authProvider(db *sql.DB) (auth.Provider, error) {
	return auth.NewProvider(r.config, db)
}

// daily opens the database and returns the engine and journal commands share.
func (r *Runner) daily() (*tasks.DailyEngine, *journal.Adapter, error) {
	db, err := r.database()
	if err != nil {
		return nil, nil, err
	}

	engine, err := r.engine(db)
	if err != nil {
		return nil, nil, err
	}

	j, err := r.journal(db)
	if err != nil {
		return nil, nil, err
	}

	return engine, j, nil
}

func requireUser(cmd *cli.Command) (string, error) {
	userID := cmd.String("user")
	if userID == "" {
		return "", fmt.Errorf("%w: --user", shared.ErrMissingArgument)
	}
	return userID, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// writeTable prints rows under header as aligned columns.
func (r *Runner) writeTable(header []any, rows [][]any) error {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(header...)
	for _, row := range rows {
		tbl.AddRow(row...)
	}

	if _, err := fmt.Fprintln(r.output, tbl); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
