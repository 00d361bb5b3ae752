package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"slambook/internal/book"
)

// FileClass is a count plus total size for one artifact category.
type FileClass struct {
	Count int
	Bytes int64
}

// Status summarizes the output directory's artifacts.
type Status struct {
	WebP   FileClass // transcoded photo assets
	Legacy FileClass // photo assets still in jpg/jpeg/png
	HTML   FileClass // generated pages
}

// Savings returns the byte and percentage difference between the legacy
// assets and their transcoded counterparts.
func (s Status) Savings() (int64, float64) {
	if s.Legacy.Bytes == 0 {
		return 0, 0
	}

	diff := s.Legacy.Bytes - s.WebP.Bytes

	return diff, float64(diff) / float64(s.Legacy.Bytes) * 100
}

// LegacyPhotos lists the legacy-format photo assets in outputDir.
func LegacyPhotos(outputDir string) ([]string, error) {
	dirEntries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, fmt.Errorf("scan output dir: %w", err)
	}

	var names []string

	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasPrefix(de.Name(), "photo_") {
			continue
		}

		ext := strings.ToLower(filepath.Ext(de.Name()))
		for _, legacy := range book.LegacyPhotoExts {
			if ext == legacy {
				names = append(names, de.Name())

				break
			}
		}
	}

	return names, nil
}

// Collect walks outputDir and tallies artifact classes.
func Collect(outputDir string) (Status, error) {
	dirEntries, err := os.ReadDir(outputDir)
	if err != nil {
		return Status{}, fmt.Errorf("scan output dir: %w", err)
	}

	var status Status

	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}

		info, infoErr := de.Info()
		if infoErr != nil {
			continue
		}

		name := de.Name()
		ext := strings.ToLower(filepath.Ext(name))

		switch {
		case strings.HasPrefix(name, "photo_") && ext == book.WebPExt:
			status.WebP.Count++
			status.WebP.Bytes += info.Size()
		case strings.HasPrefix(name, "photo_") && isLegacyExt(ext):
			status.Legacy.Count++
			status.Legacy.Bytes += info.Size()
		case ext == ".html":
			status.HTML.Count++
			status.HTML.Bytes += info.Size()
		}
	}

	return status, nil
}

func isLegacyExt(ext string) bool {
	for _, legacy := range book.LegacyPhotoExts {
		if ext == legacy {
			return true
		}
	}

	return false
}
