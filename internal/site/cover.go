package site

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
)

// placeholderPhotoURL stands in on cover cards whose person has no photo.
const placeholderPhotoURL = "https://placehold.co/200x200/fcd34d/78350f?text=Photo"

// CoverEntry is one person card on the cover page.
type CoverEntry struct {
	Name     string
	PageFile string
	PhotoSrc string // photo filename or placeholder URL
}

// NewCoverEntry builds a card, substituting the placeholder when photoFile
// is empty.
func NewCoverEntry(name, pageFile, photoFile string) CoverEntry {
	src := photoFile
	if src == "" {
		src = placeholderPhotoURL
	}

	return CoverEntry{Name: name, PageFile: pageFile, PhotoSrc: src}
}

// BuildCover renders the cover page: title, cover image, one linked card per
// person, and a footer with the generation stamp and entry count.
func BuildCover(entries []CoverEntry, title, coverImage string, now time.Time) ([]byte, error) {
	data := struct {
		Title       string
		CoverImage  string
		Entries     []CoverEntry
		GeneratedAt string
		Count       int
	}{
		Title:       title,
		CoverImage:  coverImage,
		Entries:     entries,
		GeneratedAt: now.Format("January 02, 2006 at 03:04 PM"),
		Count:       len(entries),
	}

	var buf bytes.Buffer

	err := coverTmpl.Execute(&buf, data)
	if err != nil {
		return nil, fmt.Errorf("render cover: %w", err)
	}

	return buf.Bytes(), nil
}

// CopyCoverImage places the cover image inside the output directory so the
// generated pages can reference it relatively.
func CopyCoverImage(srcPath, outputDir string) (string, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("read cover image: %w", err)
	}

	name := filepath.Base(srcPath)

	writeErr := atomic.WriteFile(filepath.Join(outputDir, name), bytes.NewReader(data))
	if writeErr != nil {
		return "", fmt.Errorf("copy cover image: %w", writeErr)
	}

	return name, nil
}
