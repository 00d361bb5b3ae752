package cli

import (
	"context"
	"os"
	"time"

	"slambook/internal/book"

	flag "github.com/spf13/pflag"
)

const runHelp = `  run                    Run the whole pipeline: fetch, pages, cover, index, webp
    --skip-fetch           Reuse already downloaded photos`

func cmdRun(ctx context.Context, o *IO, cfg book.Config, args []string) error {
	flagSet := flag.NewFlagSet("run", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		w := flagSet.Output()
		fprintf(w, "Usage: slam run [options]\n\n")
		fprintf(w, "Run every generation stage in order. A failing stage is\n")
		fprintf(w, "reported and the remaining stages still run.\n\n")
		fprintf(w, "Options:\n")
		flagSet.PrintDefaults()
	}

	skipFetch := flagSet.Bool("skip-fetch", false, "Reuse already downloaded photos")

	if hasHelpFlag(args) {
		flagSet.SetOutput(o.out)
		flagSet.Usage()

		return nil
	}

	parseErr := flagSet.Parse(args)
	if parseErr != nil {
		return parseErr
	}

	if !checkPrerequisites(o, cfg) {
		o.Println("Prerequisites not met; nothing was generated.")

		return nil
	}

	type stage struct {
		name     string
		critical bool
		fn       func() error
	}

	stages := []stage{
		{"fetch", true, func() error { return cmdFetch(ctx, o, cfg, nil) }},
		{"pages", true, func() error { return cmdPages(o, cfg, nil) }},
		{"cover", true, func() error { return cmdCover(o, cfg, nil) }},
		{"index", true, func() error { return cmdIndex(o, cfg, nil) }},
		{"webp", false, func() error { return cmdWebP(o, cfg, nil) }},
	}

	criticalFailed := 0

	for _, st := range stages {
		if st.name == "fetch" && *skipFetch {
			o.Println("=== fetch skipped ===")

			continue
		}

		if ctx.Err() != nil {
			o.Warn("interrupted")

			break
		}

		o.Printf("=== %s ===\n", st.name)

		start := time.Now()
		err := st.fn()
		elapsed := time.Since(start).Round(time.Millisecond)

		if err != nil {
			o.Warnf("stage %s failed after %s: %v", st.name, elapsed, err)

			if st.critical {
				criticalFailed++
			}

			continue
		}

		o.Printf("=== %s done in %s ===\n", st.name, elapsed)
	}

	if criticalFailed > 0 {
		o.Printf("Pipeline finished with %d failed stages.\n", criticalFailed)
	} else {
		o.Println("Pipeline finished. Open index.html in a browser.")
	}

	return nil
}

// checkPrerequisites verifies the inputs every stage depends on before any
// stage runs, so a missing file is reported once and up front.
func checkPrerequisites(o *IO, cfg book.Config) bool {
	ok := true

	for _, check := range []struct{ label, path string }{
		{"csv file", cfg.CSVFileAbs},
		{"page template", cfg.TemplateFileAbs},
	} {
		if _, err := os.Stat(check.path); err != nil {
			o.Warnf("%s not found: %s", check.label, check.path)

			ok = false
		}
	}

	return ok
}
