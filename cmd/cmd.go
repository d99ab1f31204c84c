// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// syncCommand handles the batch lyrics download run
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "sync",
		Aliases: []string{"run"},
		Usage:   "Download .lrc lyrics for every MP3 under a directory",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "directory",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Re-download lyrics even when a .lrc file exists",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable verbose diagnostic output",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Resolve, query, and select without writing files",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the run result as JSON instead of status lines",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write a JSON run report to this path",
			},
			&cli.BoolFlag{
				Name:  "tui",
				Usage: "Show a live progress view",
			},
			&cli.IntFlag{
				Name:  "rate",
				Usage: "Minimum delay between service calls in milliseconds",
			},
		},
		Action: r.Sync,
	}
}

// searchCommand queries the lyrics service directly
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the lyrics service for a track",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of candidates to show",
				Value: 10,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Search,
	}
}

// getCommand performs an exact-signature lookup and prints the lyrics
func getCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "get",
		Usage: "Fetch lyrics for an exact artist/title signature",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:     "artist",
				Usage:    "Artist name",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "title",
				Usage:    "Track title",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "album",
				Usage: "Album name",
			},
			&cli.IntFlag{
				Name:  "duration",
				Usage: "Track duration in seconds",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Get,
	}
}

// setupCommand writes the example configuration file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a config.toml from the embedded example",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}
