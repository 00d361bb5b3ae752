// Package site builds the aggregate artifacts: the cover page, the landing
// index, and the WebP reference rewrite across generated HTML.
package site

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"slambook/internal/book"
)

// Aggregate artifact filenames.
const (
	CoverFile = "main_slam_book.html"
	IndexFile = "index.html"
)

// Entry is one discovered slam page and its photo, recovered from the
// filesystem rather than the CSV: the output directory is the source of
// truth for what the index links to.
type Entry struct {
	Ordinal   int
	Name      string // sanitized name as encoded in the filename
	PageFile  string
	PhotoFile string // photo filename in the output dir, "" when none found
}

// DisplayName is the human-readable form of the entry's name.
func (e Entry) DisplayName() string {
	return book.DisplayName(e.Name)
}

// ScanEntries enumerates the slam pages in outputDir in stable order
// (lexicographic, which the zero-padded ordinals make numeric) and probes
// for each page's photo across the web format and the legacy raster
// extensions. Entries without a photo are kept; the composer substitutes
// the fallback image. Filenames outside the naming grammar are logged and
// skipped.
func ScanEntries(outputDir string, logger *slog.Logger) ([]Entry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dirEntries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, fmt.Errorf("scan output dir: %w", err)
	}

	var names []string

	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}

		if strings.HasPrefix(de.Name(), "slam_page_") && strings.HasSuffix(de.Name(), ".html") {
			names = append(names, de.Name())
		}
	}

	sort.Strings(names)

	entries := make([]Entry, 0, len(names))

	for _, name := range names {
		ordinal, sanitized, ok := book.ParsePageFile(name)
		if !ok {
			logger.Warn("cannot parse page filename, skipping", "file", name)

			continue
		}

		entries = append(entries, Entry{
			Ordinal:   ordinal,
			Name:      sanitized,
			PageFile:  name,
			PhotoFile: ProbePhoto(outputDir, ordinal, sanitized),
		})
	}

	return entries, nil
}

// ProbePhoto looks for the entry's photo asset, preferring the web format.
func ProbePhoto(outputDir string, ordinal int, sanitized string) string {
	stem := book.PhotoStem(ordinal, sanitized)

	exts := append([]string{book.WebPExt}, book.LegacyPhotoExts...)
	for _, ext := range exts {
		candidate := stem + ext
		if _, err := os.Stat(filepath.Join(outputDir, candidate)); err == nil {
			return candidate
		}
	}

	return ""
}
