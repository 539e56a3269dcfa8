package db

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fedragon/go-unitysweep/internal/models"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
	"lukechampine.com/blake3"
)

type Repository interface {
	Record(d models.Decision) error
	List() <-chan models.Decision
	Count() (int64, error)
}

// BoltRepository journals sweep decisions. Entries are keyed by asset, so
// re-running the sweep overwrites rather than duplicates them.
type BoltRepository struct {
	db     *bolt.DB
	logger *zap.Logger
}

func NewRepository(db *bolt.DB, logger *zap.Logger) (Repository, error) {
	if err := Init(db); err != nil {
		return nil, fmt.Errorf("unable to initialize journal: %w", err)
	}

	return &BoltRepository{
		db:     db,
		logger: logger,
	}, nil
}

func key(d models.Decision) []byte {
	sum := blake3.Sum256([]byte(d.Database + "/" + d.Namespace + "/" + d.Filename))
	return sum[:]
}

func (r *BoltRepository) Record(d models.Decision) error {
	marshalled, err := json.Marshal(&d)
	if err != nil {
		return err
	}

	return r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return errors.New("bucket doesn't exist")
		}

		return bucket.Put(key(d), marshalled)
	})
}

func (r *BoltRepository) List() <-chan models.Decision {
	decisions := make(chan models.Decision)

	go func() {
		defer close(decisions)

		if err := r.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketName)

			if b == nil {
				return fmt.Errorf("bucket %s doesn't exist", string(bucketName))
			}

			return b.ForEach(func(_, v []byte) error {
				var d models.Decision
				if err := json.Unmarshal(v, &d); err != nil {
					return err
				}

				decisions <- d
				return nil
			})
		}); err != nil {
			r.logger.Error("Error while reading from journal", zap.Error(err))
		}
	}()

	return decisions
}

func (r *BoltRepository) Count() (int64, error) {
	var n int64

	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return fmt.Errorf("bucket %s doesn't exist", string(bucketName))
		}

		return b.ForEach(func(_, _ []byte) error {
			n++
			return nil
		})
	})

	return n, err
}
