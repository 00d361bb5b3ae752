package cli

import (
	"fmt"

	"slambook/internal/book"
	"slambook/internal/site"

	flag "github.com/spf13/pflag"
)

const statusHelp = `  status                 Report file counts and WebP space savings`

func cmdStatus(o *IO, cfg book.Config, args []string) error {
	flagSet := flag.NewFlagSet("status", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		w := flagSet.Output()
		fprintf(w, "Usage: slam status\n\n")
		fprintf(w, "Show how many files of each kind the output directory holds\n")
		fprintf(w, "and how much space the WebP conversion saved.\n")
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

	status, err := site.Collect(cfg.OutputDirAbs)
	if err != nil {
		return err
	}

	o.Printf("Output directory: %s\n", cfg.OutputDir)
	o.Printf("  WebP photos:   %4d  (%s)\n", status.WebP.Count, humanBytes(status.WebP.Bytes))
	o.Printf("  Legacy photos: %4d  (%s)\n", status.Legacy.Count, humanBytes(status.Legacy.Bytes))
	o.Printf("  HTML pages:    %4d  (%s)\n", status.HTML.Count, humanBytes(status.HTML.Bytes))

	if status.Legacy.Count > 0 {
		saved, pct := status.Savings()
		o.Printf("Converting saved %s (%.1f%%); run 'slam clean' to reclaim the originals.\n", humanBytes(saved), pct)
	}

	return nil
}

func humanBytes(n int64) string {
	const unit = 1024

	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
