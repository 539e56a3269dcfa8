package main

import (
	"log"
	"os"

	"github.com/fedragon/go-unitysweep/internal"
	"github.com/fedragon/go-unitysweep/internal/app"
	"github.com/fedragon/go-unitysweep/internal/config"
	"github.com/fedragon/go-unitysweep/internal/db"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "unitysweep",
		Usage:     "delete unityAssets.json files whose revision bundle already exists",
		ArgsUsage: "<host> <port> <username> <password> <missing-files-log>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Usage:   "report what would be deleted without deleting anything",
				Value:   true,
				EnvVars: []string{"SWEEP_DRY_RUN"},
			},
			&cli.StringFlag{
				Name:    "journal",
				Usage:   "record every decision in a local journal file",
				EnvVars: []string{"SWEEP_JOURNAL"},
			},
			&cli.StringFlag{
				Name:    "report",
				Usage:   "write a JSON summary of the run to this file",
				EnvVars: []string{"SWEEP_REPORT"},
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "load environment variables from this file, if it exists",
				Value: ".env",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 5 {
		return cli.Exit("expected 5 arguments: <host> <port> <username> <password> <missing-files-log>", 2)
	}
	args := c.Args()

	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	logger, err := app.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer func() {
		_ = logger.Sync()
	}()

	runner := internal.NewRunner(
		logger,
		cfg,
		db.URI(args.Get(0), args.Get(1), args.Get(2), args.Get(3)),
		args.Get(4),
		c.String("journal"),
		c.String("report"),
		c.Bool("dry-run"),
	)

	if err := runner.Run(c.Context); err != nil {
		logger.Error("Sweep aborted", zap.Error(err))
		return cli.Exit("", 1)
	}

	return nil
}
