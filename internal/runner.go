package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/fedragon/go-unitysweep/internal/config"
	"github.com/fedragon/go-unitysweep/internal/core"
	swdb "github.com/fedragon/go-unitysweep/internal/db"
	"github.com/fedragon/go-unitysweep/internal/fs"
	"github.com/fedragon/go-unitysweep/internal/metrics"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
)

type Runner struct {
	logger      *zap.Logger
	cfg         *config.Config
	uri         string
	missingPath string
	journalPath string
	reportPath  string
	dryRun      bool
}

func NewRunner(logger *zap.Logger, cfg *config.Config, uri string, missingPath string, journalPath string, reportPath string, dryRun bool) *Runner {
	return &Runner{
		logger:      logger,
		cfg:         cfg,
		uri:         uri,
		missingPath: missingPath,
		journalPath: journalPath,
		reportPath:  reportPath,
		dryRun:      dryRun,
	}
}

func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()
	defer func() {
		r.logger.Info("Elapsed time", zap.Duration("elapsed", time.Since(start)))
	}()

	if r.dryRun {
		r.logger.Info("Running in DRY-RUN mode: unityAssets.json files will not be deleted")
	}

	missing, err := fs.NewMissingLog(r.missingPath)
	if err != nil {
		return err
	}

	client, err := swdb.Connect(ctx, r.uri, r.cfg.AppName, r.cfg.ConnectTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			r.logger.Info(err.Error())
		}
	}()

	sweeper := &core.Sweeper{
		Cluster: swdb.NewCluster(client),
		Missing: missing,
		Tally:   metrics.NewTally(),
		DryRun:  r.dryRun,
		Logger:  r.logger,
	}

	var repo swdb.Repository
	if r.journalPath != "" {
		path, err := homedir.Expand(r.journalPath)
		if err != nil {
			return fmt.Errorf("unable to expand path %v: %w", r.journalPath, err)
		}

		journal, err := swdb.Open(path)
		if err != nil {
			return fmt.Errorf("unable to open journal %v: %w", path, err)
		}
		defer func() {
			if err := journal.Close(); err != nil {
				r.logger.Info(err.Error())
			}
		}()

		repo, err = swdb.NewRepository(journal, r.logger)
		if err != nil {
			return err
		}
		sweeper.Journal = repo
		r.logger.Info("Journaling decisions", zap.String("path", path))
	}

	if err := sweeper.Sweep(ctx); err != nil {
		return err
	}
	r.logger.Info("Sweep completed", sweeper.Tally.Fields()...)

	if r.reportPath == "" {
		return nil
	}

	report := fs.Report{
		DryRun:     r.dryRun,
		StartedAt:  start,
		FinishedAt: time.Now(),
		MissingLog: missing.Location(),
		Counts:     *sweeper.Tally,
	}
	if repo != nil {
		if report.Journaled, err = repo.Count(); err != nil {
			return fmt.Errorf("unable to count journal entries: %w", err)
		}
	}

	if err := fs.WriteReport(r.reportPath, report); err != nil {
		return err
	}
	r.logger.Info("Wrote report", zap.String("path", r.reportPath))

	return nil
}
