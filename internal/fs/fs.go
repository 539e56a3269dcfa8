package fs

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
)

const lineTerminator = " \r\n"

// MissingLog is an append-only list of asset filenames whose revision bundle
// could not be found. The file is opened and closed around every line so
// whatever was written survives an abrupt termination.
type MissingLog struct {
	path string
}

func NewMissingLog(path string) (*MissingLog, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("unable to expand path %v: %w", path, err)
	}

	return &MissingLog{path: expanded}, nil
}

func (l *MissingLog) Location() string {
	return l.path
}

func (l *MissingLog) Append(filename string) (err error) {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = f.WriteString(filename + lineTerminator)
	return err
}
