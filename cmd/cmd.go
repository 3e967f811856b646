// submodule cmd contains command definitions
package main

import (
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibecheck/internal/formatter"
)

// Flags keep parse state, so every command gets fresh instances.

func userFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "User ID the command acts for",
		Sources: cli.EnvVars("VIBECHECK_USER"),
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Output as JSON"}
}

func dateFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "date",
		Aliases: []string{"d"},
		Usage:   "Day in YYYY-MM-DD format (default: today)",
	}
}

// serveCommand runs the web application
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web application",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides server.port)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the landing page in the default browser",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles configuration and database setup
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Configuration and database setup",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a default config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "status",
				Usage:  "Show applied migrations",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.SetupStatus,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the latest migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// moodsCommand lists the mood catalog
func moodsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "moods",
		Usage:  "List the moods you can pick from",
		Flags:  []cli.Flag{jsonFlag()},
		Action: r.Moods,
	}
}

// todayCommand shows or generates today's content
func todayCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "today",
		Usage: "Show today's playlist and quote, or set today's mood",
		Flags: []cli.Flag{
			userFlag(),
			&cli.StringFlag{
				Name:    "mood",
				Aliases: []string{"m"},
				Usage:   "Mood to record for today when none is set",
			},
			jsonFlag(),
		},
		Action: r.Today,
	}
}

// journalCommand handles journal entries
func journalCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "journal",
		Aliases: []string{"j"},
		Usage:   "Read and write journal entries",
		Commands: []*cli.Command{
			{
				Name:   "read",
				Usage:  "Print the entry for a day",
				Flags:  []cli.Flag{userFlag(), dateFlag()},
				Action: r.JournalRead,
			},
			{
				Name:      "write",
				Usage:     "Replace the entry for a day",
				ArgsUsage: "<text>",
				Flags:     []cli.Flag{userFlag(), dateFlag()},
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "text"},
				},
				Action: r.JournalWrite,
			},
			{
				Name:  "list",
				Usage: "List recent entries",
				Flags: []cli.Flag{
					userFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to show",
						Value: 10,
					},
					jsonFlag(),
				},
				Action: r.JournalList,
			},
		},
	}
}

// userCommand manages accounts
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage accounts",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Register an account with the configured auth provider",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "password", Required: true, Sources: cli.EnvVars("VIBECHECK_PASSWORD")},
				},
				Action: r.UserCreate,
			},
		},
	}
}

// exportCommand writes stored days to disk
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export stored days to files",
		Flags: []cli.Flag{
			userFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown, txt",
				Value:   formatter.FormatMarkdown,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: vibecheck_export_{epoch})",
			},
			&cli.StringFlag{
				Name:  "since",
				Usage: "First day to export, YYYY-MM-DD (default: 7 days ago)",
			},
			&cli.StringFlag{
				Name:  "until",
				Usage: "Last day to export, YYYY-MM-DD (default: today)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent export workers",
				Value: 5,
			},
			&cli.BoolFlag{
				Name:  "covers",
				Usage: "Download the first cover image for markdown exports",
			},
			jsonFlag(),
		},
		Action: r.Export,
	}
}

// tuiCommand launches the terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Pick today's mood in an interactive terminal UI",
		Flags:  []cli.Flag{userFlag()},
		Action: r.TUI,
	}
}
