package site

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"path"
	"time"
)

//go:embed templates/index.html.tmpl templates/cover.html.tmpl
var templateFS embed.FS

var (
	indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))
	coverTmpl = template.Must(template.ParseFS(templateFS, "templates/cover.html.tmpl"))
)

// IndexConfig carries the fixed configuration the index embeds: the
// prominent cover entry and the row layout schedule.
type IndexConfig struct {
	OutputDir     string // href prefix from the index to the artifacts
	CoverTitle    string
	CoverImage    string // cover image filename within the output dir
	FallbackImage string // substitute photo for entries without one
	RowLayout     []int  // row sizes, consumed left to right, then the last size repeats
}

// indexEntry is the client-side data table row. Field names are part of the
// generated page's inline script.
type indexEntry struct {
	ImageURL  string `json:"imageUrl"`
	LinkURL   string `json:"linkUrl"`
	Title     string `json:"title"`
	Prominent bool   `json:"isProminent,omitempty"`
}

// BuildIndex renders the landing page: one fixed prominent entry pointing at
// the cover, then every discovered entry in scan order. The whole document is
// rebuilt on every call; the caller overwrites the previous index in full.
func BuildIndex(entries []Entry, cfg IndexConfig, now time.Time) ([]byte, error) {
	table := make([]indexEntry, 0, len(entries)+1)

	table = append(table, indexEntry{
		ImageURL:  path.Join(cfg.OutputDir, cfg.CoverImage),
		LinkURL:   path.Join(cfg.OutputDir, CoverFile),
		Title:     cfg.CoverTitle,
		Prominent: true,
	})

	for _, entry := range entries {
		photo := entry.PhotoFile
		if photo == "" {
			photo = cfg.FallbackImage
		}

		table = append(table, indexEntry{
			ImageURL: path.Join(cfg.OutputDir, photo),
			LinkURL:  path.Join(cfg.OutputDir, entry.PageFile),
			Title:    entry.DisplayName(),
		})
	}

	entriesJSON, err := json.MarshalIndent(table, "      ", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal index entries: %w", err)
	}

	layoutJSON, err := json.Marshal(cfg.RowLayout)
	if err != nil {
		return nil, fmt.Errorf("marshal row layout: %w", err)
	}

	data := struct {
		Title       string
		Entries     template.JS
		RowLayout   template.JS
		GeneratedAt string
	}{
		Title:       cfg.CoverTitle,
		Entries:     template.JS(entriesJSON),
		RowLayout:   template.JS(layoutJSON),
		GeneratedAt: now.Format(time.DateTime),
	}

	var buf bytes.Buffer

	renderErr := indexTmpl.Execute(&buf, data)
	if renderErr != nil {
		return nil, fmt.Errorf("render index: %w", renderErr)
	}

	return buf.Bytes(), nil
}
