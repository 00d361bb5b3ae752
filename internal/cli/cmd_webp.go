package cli

import (
	"os"
	"path/filepath"

	"slambook/internal/book"
	"slambook/internal/site"

	flag "github.com/spf13/pflag"
)

const webpHelp = `  webp                   Point HTML photo references at the WebP files`

func cmdWebP(o *IO, cfg book.Config, args []string) error {
	flagSet := flag.NewFlagSet("webp", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		w := flagSet.Output()
		fprintf(w, "Usage: slam webp\n\n")
		fprintf(w, "Rewrite photo references in all generated HTML files from the\n")
		fprintf(w, "legacy image extensions to .webp.\n")
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

	pages, err := filepath.Glob(filepath.Join(cfg.OutputDirAbs, "*.html"))
	if err != nil {
		return err
	}

	// The index lives next to the output directory, not inside it.
	indexPath := filepath.Join(cfg.EffectiveCwd, site.IndexFile)
	if _, statErr := os.Stat(indexPath); statErr == nil {
		pages = append(pages, indexPath)
	}

	var files, refs int

	for _, path := range pages {
		n, rewriteErr := site.RewriteFile(path)
		if rewriteErr != nil {
			o.Warnf("%s: %v", filepath.Base(path), rewriteErr)

			continue
		}

		if n > 0 {
			o.Printf("Updated %s (%d references)\n", filepath.Base(path), n)

			files++
			refs += n
		}
	}

	o.Printf("Rewrote %d references in %d of %d files\n", refs, files, len(pages))

	return nil
}
