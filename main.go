package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/blckbxtv/rumbledir/internal/cachecmd"
	"github.com/blckbxtv/rumbledir/internal/list"
)

func main() {
	// Optional .env next to the binary; absence is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:      "rumbledir",
		Usage:     "creator video listing backend for a home-theater host",
		ArgsUsage: "[baseURL] [handle] [queryString]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to YAML config file",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "addon data directory (cache blob, journal, subtitles)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "concurrent scrape worker cap",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "log errors only",
			},
		},
		Action: list.Action,
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "scrape a creator's videos and emit the directory listing",
				ArgsUsage: "[baseURL] [handle] [queryString]",
				Action:    list.Action,
			},
			{
				Name:  "cache",
				Usage: "inspect and maintain the scrape cache",
				Subcommands: []*cli.Command{
					{
						Name:   "stats",
						Usage:  "show entry counts per cache namespace",
						Action: cachecmd.StatsAction,
					},
					{
						Name:      "clear",
						Usage:     "clear one namespace, or the whole cache",
						ArgsUsage: "[namespace]",
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "subs",
								Usage: "also remove materialized subtitle files",
							},
						},
						Action: cachecmd.ClearAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
