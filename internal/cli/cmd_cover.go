package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"slambook/internal/book"
	"slambook/internal/site"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
)

const coverHelp = `  cover                  Generate the cover page listing everyone`

func cmdCover(o *IO, cfg book.Config, args []string) error {
	flagSet := flag.NewFlagSet("cover", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		w := flagSet.Output()
		fprintf(w, "Usage: slam cover\n\n")
		fprintf(w, "Generate %s in the output directory.\n", site.CoverFile)
	}

	if hasHelpFlag(args) {
		flagSet.SetOutput(o.out)
		flagSet.Usage()

		return nil
	}

	parseErr := flagSet.Parse(args)
	if parseErr != nil {
		return parseErr
	}

	people, err := book.LoadRoster(cfg.CSVFileAbs, cfg.NameColumn, cfg.PhotoColumn)
	if err != nil {
		return err
	}

	mkdirErr := os.MkdirAll(cfg.OutputDirAbs, 0o755)
	if mkdirErr != nil {
		return mkdirErr
	}

	coverImage, copyErr := site.CopyCoverImage(cfg.CoverImageAbs, cfg.OutputDirAbs)
	if copyErr != nil {
		o.Warnf("cover image: %v", copyErr)

		coverImage = ""
	}

	entries := make([]site.CoverEntry, 0, len(people))

	for _, person := range people {
		sanitized := book.Sanitize(person.Name)
		photoFile := site.ProbePhoto(cfg.OutputDirAbs, person.Ordinal, sanitized)

		entries = append(entries, site.NewCoverEntry(
			book.DisplayName(sanitized),
			book.PageFile(person.Ordinal, sanitized),
			photoFile,
		))
	}

	html, err := site.BuildCover(entries, cfg.CoverTitle, coverImage, time.Now())
	if err != nil {
		return err
	}

	coverPath := filepath.Join(cfg.OutputDirAbs, site.CoverFile)

	writeErr := atomic.WriteFile(coverPath, bytes.NewReader(html))
	if writeErr != nil {
		return writeErr
	}

	o.Printf("Cover page with %d entries written to %s\n", len(entries), filepath.Join(cfg.OutputDir, site.CoverFile))

	return nil
}
