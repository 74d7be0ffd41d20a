// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func userFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "user",
		Aliases:  []string{"u"},
		Usage:    "Username whose notes to use",
		Required: true,
	}
}

// serveCommand starts the web interface
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the notes web server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the app in the default browser",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand manages the database schema
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize the database",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the config file if missing and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupRollback,
			},
		},
	}
}

// usersCommand administers accounts
func usersCommand(r *Runner) *cli.Command {
	passwordFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:     "password",
			Aliases:  []string{"p"},
			Usage:    "Account password",
			Required: true,
		}
	}

	return &cli.Command{
		Name:  "users",
		Usage: "Account administration",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create an account",
				ArgsUsage: "<username>",
				Flags:     []cli.Flag{configFlag(), passwordFlag()},
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
				},
				Action: r.UsersCreate,
			},
			{
				Name:      "reset",
				Usage:     "Replace the password of an account",
				ArgsUsage: "<username>",
				Flags:     []cli.Flag{configFlag(), passwordFlag()},
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
				},
				Action: r.UsersReset,
			},
		},
	}
}

// notesCommand reads and exports notes
func notesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "notes",
		Usage: "Note operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List a user's notes in creation order",
				Flags: []cli.Flag{
					configFlag(),
					userFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.NotesList,
			},
			{
				Name:  "export",
				Usage: "Export a user's notes to a file",
				Flags: []cli.Flag{
					configFlag(),
					userFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv, markdown, txt)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: {user}_notes.{ext})",
					},
				},
				Action: r.NotesExport,
			},
			{
				Name:   "browse",
				Usage:  "Browse notes in the terminal",
				Flags:  []cli.Flag{configFlag(), userFlag()},
				Action: r.NotesBrowse,
			},
		},
	}
}

// catalogCommand runs catalog lookups without the web interface
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"mb"},
		Usage:   "MusicBrainz lookups",
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "List the works of the first artist matching a name",
				ArgsUsage: "<artist>",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "artist"},
				},
				Action: r.CatalogSearch,
			},
			{
				Name:      "work",
				Usage:     "Show the relations and first recording of a work",
				ArgsUsage: "<work-id>",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "artist",
						Usage: "Artist name recorded with the selection",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "work-id"},
				},
				Action: r.CatalogWork,
			},
		},
	}
}
