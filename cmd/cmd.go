// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// filterFlags are shared by every command that queries items.
func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "kind",
			Aliases: []string{"k"},
			Usage:   "Media kind to include (movie, series, audio); repeatable",
		},
		&cli.FloatFlag{
			Name:  "min-rating",
			Usage: "Minimum community rating (0-10)",
		},
		&cli.IntFlag{
			Name:  "year-from",
			Usage: "Earliest release year",
		},
		&cli.IntFlag{
			Name:  "year-to",
			Usage: "Latest release year",
		},
		&cli.StringSliceFlag{
			Name:    "genre",
			Aliases: []string{"g"},
			Usage:   "Genre to filter by; repeatable",
		},
		&cli.StringSliceFlag{
			Name:  "studio",
			Usage: "Studio to filter by; repeatable",
		},
		&cli.StringFlag{
			Name:    "search",
			Aliases: []string{"q"},
			Usage:   "Title search term",
		},
	}
}

// usersCommand lists server user accounts
func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "List server user accounts",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Users,
	}
}

// taxonomyCommand lists the filtered genre and studio vocabularies
func taxonomyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "taxonomy",
		Aliases: []string{"tax"},
		Usage:   "Show genre and studio vocabularies",
		Commands: []*cli.Command{
			{
				Name:  "genres",
				Usage: "List admissible genres for the selected kinds",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "kind",
						Aliases: []string{"k"},
						Usage:   "Media kind to scope to; repeatable (default: all)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.TaxonomyGenres,
			},
			{
				Name:  "studios",
				Usage: "List admissible studios for the selected kinds",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "kind",
						Aliases: []string{"k"},
						Usage:   "Media kind to scope to; repeatable (default: all)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.TaxonomyStudios,
			},
		},
	}
}

// fetchCommand queries items and prints them
func fetchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch items matching filters",
		Flags: append(filterFlags(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		),
		Action: r.Fetch,
	}
}

// curateCommand runs the one-shot fetch-and-publish pipeline
func curateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "curate",
		Usage: "Fetch items and publish them as a playlist in one pass",
		Flags: append(filterFlags(),
			&cli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Usage:    "Playlist name",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Playlist description",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Display order (none, alphabetical, release, rating, random)",
				Value: "none",
			},
			&cli.StringSliceFlag{
				Name:  "conform-genre",
				Usage: "Keep only fetched items carrying this genre; repeatable, all must match",
			},
			&cli.BoolFlag{
				Name:  "public",
				Usage: "Make the playlist public",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the created playlist in the browser",
			},
		),
		Action: r.Curate,
	}
}

// playlistCommand handles playlist publish operations
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "playlist",
		Usage: "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "append",
				Usage: "Append fetched items to an existing playlist",
				Flags: append(filterFlags(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID to append to",
						Required: true,
					},
				),
				Action: r.PlaylistAppend,
			},
			{
				Name:  "list",
				Usage: "List playlists created through dfx",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PlaylistList,
			},
		},
	}
}

// exportCommand writes the cached catalog to disk
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export fetched items to CSV, Markdown, or text",
		Flags: append(filterFlags(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format (csv, markdown, txt)",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path (base filename or directory)",
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Snapshot title",
				Value:   "curated",
			},
		),
		Action: r.Export,
	}
}

// apiCommand handles direct server API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the media server",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET against the server, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// cacheCommand inspects the local item cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect the local item cache",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List cached items",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "kind",
						Aliases: []string{"k"},
						Usage:   "Restrict to one media kind",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.CacheList,
			},
			{
				Name:  "stats",
				Usage: "Show cache counts",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.CacheStats,
			},
			{
				Name:  "clear",
				Usage: "Clear cached items",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.CacheClear,
			},
		},
	}
}

// setupCommand handles setup operations for database and server credentials.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "server",
				Usage: "Extract server credentials from a browser request",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
				},
				Action: r.SetupServer,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive curation.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for playlist curation",
		Flags:   filterFlags(),
		Action:  r.TUI,
	}
}
