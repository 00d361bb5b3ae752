package cli

import (
	"bytes"
	"path/filepath"
	"time"

	"slambook/internal/book"
	"slambook/internal/site"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
)

const indexHelp = `  index                  Rebuild index.html from the generated pages`

func cmdIndex(o *IO, cfg book.Config, args []string) error {
	flagSet := flag.NewFlagSet("index", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		w := flagSet.Output()
		fprintf(w, "Usage: slam index\n\n")
		fprintf(w, "Scan the output directory and rebuild index.html. Pages that\n")
		fprintf(w, "were deleted drop out of the index; run this after any change.\n")
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

	entries, err := site.ScanEntries(cfg.OutputDirAbs, newLogger(o.errOut))
	if err != nil {
		return err
	}

	html, err := site.BuildIndex(entries, site.IndexConfig{
		OutputDir:     cfg.OutputDir,
		CoverTitle:    cfg.CoverTitle,
		CoverImage:    filepath.Base(cfg.CoverImage),
		FallbackImage: filepath.Base(cfg.FallbackImage),
		RowLayout:     cfg.RowLayout,
	}, time.Now())
	if err != nil {
		return err
	}

	indexPath := filepath.Join(cfg.EffectiveCwd, site.IndexFile)

	writeErr := atomic.WriteFile(indexPath, bytes.NewReader(html))
	if writeErr != nil {
		return writeErr
	}

	o.Printf("Index with %d entries written to %s\n", len(entries), site.IndexFile)

	return nil
}
