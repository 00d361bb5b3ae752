package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"slambook/internal/book"
	"slambook/internal/page"
	"slambook/internal/site"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
)

const pagesHelp = `  pages                  Generate one HTML page per person`

func cmdPages(o *IO, cfg book.Config, args []string) error {
	flagSet := flag.NewFlagSet("pages", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		w := flagSet.Output()
		fprintf(w, "Usage: slam pages\n\n")
		fprintf(w, "Fill the page template once per csv row and write the result\n")
		fprintf(w, "into the output directory.\n")
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

	tmpl, err := page.Load(cfg.TemplateFileAbs, newLogger(o.errOut))
	if err != nil {
		return err
	}

	people, err := book.LoadRoster(cfg.CSVFileAbs, cfg.NameColumn, cfg.PhotoColumn)
	if err != nil {
		return err
	}

	mkdirErr := os.MkdirAll(cfg.OutputDirAbs, 0o755)
	if mkdirErr != nil {
		return mkdirErr
	}

	now := time.Now()
	generated := 0

	for _, person := range people {
		sanitized := book.Sanitize(person.Name)
		photoFile := site.ProbePhoto(cfg.OutputDirAbs, person.Ordinal, sanitized)

		result, composeErr := tmpl.Compose(person, photoFile, now)
		if composeErr != nil {
			o.Warnf("row %d (%s): %v", person.Ordinal, person.Name, composeErr)

			continue
		}

		pageFile := book.PageFile(person.Ordinal, sanitized)

		writeErr := atomic.WriteFile(filepath.Join(cfg.OutputDirAbs, pageFile), bytes.NewReader(result.HTML))
		if writeErr != nil {
			o.Warnf("row %d (%s): %v", person.Ordinal, person.Name, writeErr)

			continue
		}

		o.Printf("Generated: %s (%d questions answered)\n", book.DisplayName(sanitized), result.Answered)

		generated++
	}

	o.Printf("%d of %d pages written to %s\n", generated, len(people), cfg.OutputDir)

	return nil
}
