// Package drive resolves Google Drive sharing links and downloads the files
// behind them.
package drive

import (
	"errors"
	"net/url"
	"strings"
)

// Error variables for reference parsing.
var (
	ErrEmptyRef  = errors.New("empty sharing link")
	ErrFolderRef = errors.New("folder links are not supported")
	ErrBadRef    = errors.New("unrecognized sharing link")
)

// ExtractFileID pulls the opaque file identifier out of a sharing URL.
// Two shapes are recognized:
//
//	https://drive.google.com/file/d/{id}/view?usp=...
//	https://drive.google.com/open?id={id}   (and /u/0/open?id=...)
//
// Folder links are rejected with ErrFolderRef; everything else with
// ErrBadRef.
func ExtractFileID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ErrEmptyRef
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", ErrBadRef
	}

	if _, rest, found := strings.Cut(parsed.Path, "/file/d/"); found {
		id, _, _ := strings.Cut(rest, "/")
		if validFileID(id) {
			return id, nil
		}
	}

	if id := parsed.Query().Get("id"); validFileID(id) {
		return id, nil
	}

	if strings.Contains(parsed.Path, "/folders") {
		return "", ErrFolderRef
	}

	return "", ErrBadRef
}

// validFileID reports whether id is a plausible Drive identifier
// (non-empty, URL-safe base64 alphabet).
func validFileID(id string) bool {
	if id == "" {
		return false
	}

	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}

	return true
}
