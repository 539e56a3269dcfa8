package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	revisionMarker = "revision/"
	assetMarker    = "/unityAssets.json"
)

type ParseError struct {
	Filename string
	Reason   string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot parse revision from %q: %s: %v", e.Filename, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot parse revision from %q: %s", e.Filename, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseRevisionID extracts the revision UUID from an asset filename shaped like
// <prefix>/revision/<uuid>/unityAssets.json. The identifier is whatever sits
// between the first "revision/" and the next "/unityAssets.json".
func ParseRevisionID(filename string) (uuid.UUID, error) {
	start := strings.Index(filename, revisionMarker)
	if start < 0 {
		return uuid.Nil, &ParseError{Filename: filename, Reason: "missing " + revisionMarker + " marker"}
	}
	rest := filename[start+len(revisionMarker):]

	end := strings.Index(rest, assetMarker)
	if end < 0 {
		return uuid.Nil, &ParseError{Filename: filename, Reason: "missing " + assetMarker + " marker"}
	}
	if end == 0 {
		return uuid.Nil, &ParseError{Filename: filename, Reason: "empty revision identifier"}
	}

	id, err := uuid.Parse(rest[:end])
	if err != nil {
		return uuid.Nil, &ParseError{Filename: filename, Reason: "malformed revision identifier", Err: err}
	}

	return id, nil
}
