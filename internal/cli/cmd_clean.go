package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"slambook/internal/book"
	"slambook/internal/site"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
)

const cleanHelp = `  clean                  Delete legacy photo files superseded by WebP
    -f, --force            Skip the confirmation prompt`

func cmdClean(o *IO, stdin io.Reader, cfg book.Config, args []string) error {
	flagSet := flag.NewFlagSet("clean", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		w := flagSet.Output()
		fprintf(w, "Usage: slam clean [options]\n\n")
		fprintf(w, "Delete jpg/jpeg/png photo files from the output directory once\n")
		fprintf(w, "their WebP versions exist. Asks before deleting.\n\n")
		fprintf(w, "Options:\n")
		flagSet.PrintDefaults()
	}

	force := flagSet.BoolP("force", "f", false, "Skip the confirmation prompt")

	if hasHelpFlag(args) {
		flagSet.SetOutput(o.out)
		flagSet.Usage()

		return nil
	}

	parseErr := flagSet.Parse(args)
	if parseErr != nil {
		return parseErr
	}

	legacy, err := site.LegacyPhotos(cfg.OutputDirAbs)
	if err != nil {
		return err
	}

	if len(legacy) == 0 {
		o.Println("No legacy photo files to clean.")

		return nil
	}

	for _, name := range legacy {
		o.Println("  " + name)
	}

	if !*force && !confirmClean(o, stdin, len(legacy)) {
		o.Println("Aborted.")

		return nil
	}

	removed := 0

	for _, name := range legacy {
		removeErr := os.Remove(filepath.Join(cfg.OutputDirAbs, name))
		if removeErr != nil {
			o.Warnf("%s: %v", name, removeErr)

			continue
		}

		removed++
	}

	o.Printf("Removed %d of %d legacy photo files\n", removed, len(legacy))

	return nil
}

// confirmClean asks before deleting. An interactive terminal gets a line
// editor prompt; a piped stdin is read directly so scripted runs can answer.
func confirmClean(o *IO, stdin io.Reader, count int) bool {
	prompt := "Delete these files? [y/N] "

	o.Printf("%d legacy photo files found.\n", count)

	if stdin == os.Stdin && liner.TerminalSupported() {
		line := liner.NewLiner()
		defer func() { _ = line.Close() }()

		answer, err := line.Prompt(prompt)
		if err != nil {
			return false
		}

		return isYes(answer)
	}

	o.Printf("%s", prompt)

	buf := make([]byte, 64)

	n, err := stdin.Read(buf)
	if err != nil && n == 0 {
		return false
	}

	return isYes(string(buf[:n]))
}

func isYes(answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes"
}
