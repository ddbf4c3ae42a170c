package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ecomload",
		Usage: "Load the e-commerce dataset into MongoDB and query it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a config file (yaml, json or toml)",
				EnvVars: []string{"ECOMLOAD_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Override the configured log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Load datasets into their collections",
				ArgsUsage: "[customers|products|orders|order_items|all ...]",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents per bulk insert",
					},
					&cli.StringFlag{
						Name:  "validation-level",
						Usage: "Collection validation level (strict, moderate, off)",
					},
					&cli.StringFlag{
						Name:  "coercion",
						Usage: "Handling of unparseable values (null, report, reject)",
					},
					&cli.BoolFlag{
						Name:  "precheck",
						Usage: "Drop documents failing the schema before sending them",
					},
					&cli.StringFlag{
						Name:  "data-dir",
						Usage: "Directory holding the dataset files",
					},
					&cli.IntFlag{
						Name:  "progress-every",
						Usage: "Log progress every N rows",
					},
				},
			},
			{
				Name:      "indexes",
				Usage:     "Create the query indexes of each dataset's collection",
				ArgsUsage: "[customers|products|orders|order_items|all ...]",
				Action:    indexesCommand,
			},
			{
				Name:      "report",
				Usage:     "Run an exploratory report",
				ArgsUsage: "<states|orders|delivery|collection>",
				Action:    reportCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of rows",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "collection",
						Usage: "Collection for the collection report",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Write CSV to a local path or s3://bucket/key instead of printing JSON",
					},
				},
			},
		},
	}
}
