package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"slambook/internal/book"
	"slambook/internal/drive"
	"slambook/internal/imaging"

	flag "github.com/spf13/pflag"
)

var errNobodyToFetch = errors.New("no rows in csv file")

// tempDirName holds raw downloads until they are transcoded. It lives inside
// the output directory so a single rm cleans everything up.
const tempDirName = "temp_downloads"

const fetchHelp = `  fetch                  Download photos and convert them to WebP
    -q, --quality          WebP quality 1-100 [default: from config]
    --delay-ms             Pause between downloads in milliseconds`

func cmdFetch(ctx context.Context, o *IO, cfg book.Config, args []string) error {
	flagSet := flag.NewFlagSet("fetch", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		w := flagSet.Output()
		fprintf(w, "Usage: slam fetch [options]\n\n")
		fprintf(w, "Download each person's photo and convert it to WebP.\n\n")
		fprintf(w, "Options:\n")
		flagSet.PrintDefaults()
	}

	quality := flagSet.IntP("quality", "q", cfg.Quality, "WebP quality 1-100")
	delayMS := flagSet.Int("delay-ms", cfg.FetchDelayMS, "Pause between downloads in milliseconds")

	if hasHelpFlag(args) {
		flagSet.SetOutput(o.out)
		flagSet.Usage()

		return nil
	}

	parseErr := flagSet.Parse(args)
	if parseErr != nil {
		return parseErr
	}

	if *quality < book.MinQuality || *quality > book.MaxQuality {
		return book.ErrQualityOutOfRange
	}

	people, err := book.LoadRoster(cfg.CSVFileAbs, cfg.NameColumn, cfg.PhotoColumn)
	if err != nil {
		return err
	}

	if len(people) == 0 {
		return errNobodyToFetch
	}

	mkdirErr := os.MkdirAll(cfg.OutputDirAbs, 0o755)
	if mkdirErr != nil {
		return mkdirErr
	}

	tempDir := filepath.Join(cfg.OutputDirAbs, tempDirName)

	mkdirErr = os.MkdirAll(tempDir, 0o755)
	if mkdirErr != nil {
		return mkdirErr
	}

	fetcher := drive.NewFetcher(drive.FetcherConfig{
		Client: &http.Client{Timeout: drive.DefaultTimeout},
		Logger: newLogger(o.errOut),
	})

	o.Printf("Fetching %d photos into %s\n", len(people), cfg.OutputDir)

	var fetched, skipped int

	for i, person := range people {
		o.Printf("[%d/%d] %s\n", i+1, len(people), book.DisplayName(book.Sanitize(person.Name)))

		switch fetchOne(ctx, o, fetcher, person, cfg.OutputDirAbs, tempDir, *quality) {
		case fetchOK:
			fetched++
		case fetchSkipped:
			skipped++
		}

		if ctx.Err() != nil {
			o.Warn("interrupted")

			break
		}

		// Pacing between downloads keeps the remote host happy.
		if i < len(people)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(time.Duration(*delayMS) * time.Millisecond):
			}
		}
	}

	_ = os.Remove(tempDir) // only succeeds when empty

	o.Printf("Done: %d fetched, %d skipped, %d failed\n", fetched, skipped, len(people)-fetched-skipped)

	return nil
}

type fetchOutcome int

const (
	fetchOK fetchOutcome = iota
	fetchSkipped
	fetchFailed
)

// fetchOne downloads and transcodes a single photo. The raw download is
// removed afterwards whether or not conversion worked.
func fetchOne(ctx context.Context, o *IO, fetcher *drive.Fetcher, person book.Person, outputDir, tempDir string, quality int) fetchOutcome {
	if person.PhotoURL == "" {
		o.Println("  no photo url, skipping")

		return fetchSkipped
	}

	fileID, err := drive.ExtractFileID(person.PhotoURL)
	if err != nil {
		o.Warnf("row %d (%s): %v", person.Ordinal, person.Name, err)

		return fetchFailed
	}

	stem := book.PhotoStem(person.Ordinal, book.Sanitize(person.Name))
	webpPath := filepath.Join(outputDir, stem+book.WebPExt)

	if _, statErr := os.Stat(webpPath); statErr == nil {
		o.Println("  already converted, skipping")

		return fetchSkipped
	}

	rawPath := filepath.Join(tempDir, stem+".jpg")

	if !fetcher.Fetch(ctx, fileID, rawPath) {
		o.Warnf("row %d (%s): download failed", person.Ordinal, person.Name)

		return fetchFailed
	}

	stats, convErr := imaging.Transcode(rawPath, webpPath, quality)

	_ = os.Remove(rawPath)

	if convErr != nil {
		o.Warnf("row %d (%s): %v", person.Ordinal, person.Name, convErr)

		return fetchFailed
	}

	o.Printf("  -> %s (%.1f%% smaller)\n", stem+book.WebPExt, stats.Reduction())

	return fetchOK
}
