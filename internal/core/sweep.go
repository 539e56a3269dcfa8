package core

import (
	"context"
	"fmt"
	"time"

	"github.com/fedragon/go-unitysweep/internal/metrics"
	"github.com/fedragon/go-unitysweep/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Databases that are never scanned.
var reserved = map[string]bool{
	"admin": true,
	"local": true,
}

type Cluster interface {
	DatabaseNames(ctx context.Context) ([]string, error)
	Database(name string) Database
}

type Database interface {
	Name() string
	// Models returns the IDs of all models whose federate flag is not true.
	Models(ctx context.Context) ([]string, error)
	FindAssets(ctx context.Context, namespace string) ([]models.Asset, error)
	DeleteAsset(ctx context.Context, namespace string, id interface{}) error
	HasRevision(ctx context.Context, namespace string, revision uuid.UUID) (bool, error)
}

type MissingLog interface {
	Append(filename string) error
	Location() string
}

type Journal interface {
	Record(d models.Decision) error
}

type Sweeper struct {
	Cluster Cluster
	Missing MissingLog
	Journal Journal
	Tally   *metrics.Tally
	DryRun  bool
	Logger  *zap.Logger
}

func (s *Sweeper) Sweep(ctx context.Context) error {
	if s.Tally == nil {
		s.Tally = metrics.NewTally()
	}

	names, err := s.Cluster.DatabaseNames(ctx)
	if err != nil {
		return fmt.Errorf("unable to list databases: %w", err)
	}

	for _, name := range names {
		if reserved[name] {
			s.Logger.Debug("Skipping reserved database", zap.String("database", name))
			continue
		}

		if err := s.sweepDatabase(ctx, s.Cluster.Database(name)); err != nil {
			return err
		}
	}

	s.Logger.Info("Exported list of missing revision files", zap.String("path", s.Missing.Location()))

	return nil
}

func (s *Sweeper) sweepDatabase(ctx context.Context, db Database) error {
	log := s.Logger.With(zap.String("database", db.Name()))
	log.Info("Scanning database")
	s.Tally.Databases++

	ids, err := db.Models(ctx)
	if err != nil {
		return fmt.Errorf("unable to list models of %v: %w", db.Name(), err)
	}

	for _, id := range ids {
		if err := s.sweepModel(ctx, log.With(zap.String("model", id)), db, id); err != nil {
			return err
		}
	}

	return nil
}

func (s *Sweeper) sweepModel(ctx context.Context, log *zap.Logger, db Database, modelID string) error {
	log.Info("Scanning model")
	s.Tally.Models++

	assetNS := Namespace(modelID, AssetSuffix)
	revisionNS := Namespace(modelID, RevisionSuffix)

	assets, err := db.FindAssets(ctx, assetNS)
	if err != nil {
		return fmt.Errorf("unable to find assets in %v.%v: %w", db.Name(), assetNS, err)
	}

	for _, asset := range assets {
		s.Tally.Assets++

		revision, err := ParseRevisionID(asset.Filename)
		if err != nil {
			return err
		}

		found, err := db.HasRevision(ctx, revisionNS, revision)
		if err != nil {
			return fmt.Errorf("unable to look up revision %v in %v.%v: %w", revision, db.Name(), revisionNS, err)
		}

		decision := models.Decision{
			Database:  db.Name(),
			Model:     modelID,
			Namespace: assetNS,
			Filename:  asset.Filename,
			Revision:  revision,
			Timestamp: time.Now(),
		}
		fileLog := log.With(zap.String("filename", asset.Filename), zap.Stringer("revision", revision))

		if found {
			fileLog.Info("Revision bundle found")
			s.Tally.Found++

			if s.DryRun {
				fileLog.Info("Would have deleted file")
				s.Tally.WouldDelete++
				decision.Action = models.WouldDelete
			} else {
				if err := db.DeleteAsset(ctx, assetNS, asset.ID); err != nil {
					return fmt.Errorf("unable to delete %v from %v.%v: %w", asset.Filename, db.Name(), assetNS, err)
				}
				fileLog.Info("Deleted file")
				s.Tally.Deleted++
				decision.Action = models.Deleted
			}
		} else {
			fileLog.Info("No revision bundle found, recording file", zap.String("path", s.Missing.Location()))
			if err := s.Missing.Append(asset.Filename); err != nil {
				return fmt.Errorf("unable to record missing revision for %v: %w", asset.Filename, err)
			}
			s.Tally.Missing++
			decision.Action = models.Missing
		}

		if s.Journal != nil {
			if err := s.Journal.Record(decision); err != nil {
				return fmt.Errorf("unable to journal decision for %v: %w", asset.Filename, err)
			}
		}
	}

	return nil
}
