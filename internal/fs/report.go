package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fedragon/go-unitysweep/internal/metrics"

	"github.com/mitchellh/go-homedir"
	"github.com/natefinch/atomic"
)

type Report struct {
	DryRun     bool          `json:"dry_run"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	MissingLog string        `json:"missing_log"`
	Journaled  int64         `json:"journaled,omitempty"`
	Counts     metrics.Tally `json:"counts"`
}

// WriteReport replaces the file at path with r, atomically.
func WriteReport(path string, r Report) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("unable to expand path %v: %w", path, err)
	}

	marshalled, err := json.MarshalIndent(&r, "", "  ")
	if err != nil {
		return err
	}

	if err := atomic.WriteFile(expanded, bytes.NewReader(marshalled)); err != nil {
		return fmt.Errorf("unable to write report %v: %w", expanded, err)
	}

	return nil
}
