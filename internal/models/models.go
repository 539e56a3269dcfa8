package models

import (
	"time"

	"github.com/google/uuid"
)

// Asset is a GridFS file whose name ends in unityAssets.json.
type Asset struct {
	ID       interface{} `bson:"_id"`
	Filename string      `bson:"filename"`
}

type Action string

const (
	Deleted     Action = "deleted"
	WouldDelete Action = "would-delete"
	Missing     Action = "missing"
)

// Decision records what happened to a single asset during a run.
type Decision struct {
	Database  string
	Model     string
	Namespace string
	Filename  string
	Revision  uuid.UUID
	Action    Action
	Timestamp time.Time
}
