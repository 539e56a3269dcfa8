package db

import (
	"time"

	"github.com/boltdb/bolt"
)

var bucketName = []byte("Decisions")

// Open opens (or creates) the journal file at path.
func Open(path string) (*bolt.DB, error) {
	return bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
}

func Init(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
}
