package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"slambook/internal/book"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Run is the main entry point. Returns exit code.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	// Parse global flags
	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	if len(flags.remaining) == 0 {
		printUsage(out)

		return 0
	}

	cmd := flags.remaining[0]
	cmdArgs := flags.remaining[1:]

	// Handle help flags
	if cmd == "-h" || cmd == helpFlag {
		printUsage(out)

		return 0
	}

	// Load and validate config
	cfg, err := book.LoadConfig(book.LoadConfigInput{
		WorkDirOverride:   flags.workDir,
		ConfigPath:        flags.configPath,
		OutputDirOverride: flags.outputDir,
		Env:               env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut)

		return 1
	}

	// Cancel long-running commands on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			<-sigCh
			cancel()
		}()
	}

	// Create IO for command
	ioCtx := NewIO(out, errOut)

	// Dispatch to command
	var cmdErr error

	switch cmd {
	case "fetch":
		cmdErr = cmdFetch(ctx, ioCtx, cfg, cmdArgs)
	case "pages":
		cmdErr = cmdPages(ioCtx, cfg, cmdArgs)
	case "cover":
		cmdErr = cmdCover(ioCtx, cfg, cmdArgs)
	case "index":
		cmdErr = cmdIndex(ioCtx, cfg, cmdArgs)
	case "webp":
		cmdErr = cmdWebP(ioCtx, cfg, cmdArgs)
	case "clean":
		cmdErr = cmdClean(ioCtx, stdin, cfg, cmdArgs)
	case "status":
		cmdErr = cmdStatus(ioCtx, cfg, cmdArgs)
	case "run":
		cmdErr = cmdRun(ctx, ioCtx, cfg, cmdArgs)
	case "print-config":
		cmdErr = cmdPrintConfig(ioCtx, cfg)
	default:
		fprintln(errOut, "error: unknown command:", cmd)
		printUsage(errOut)

		return 1
	}

	// Fatal error
	if cmdErr != nil {
		fprintln(errOut, "error:", cmdErr)

		return 1
	}

	// Finish handles warnings and exit code
	return ioCtx.Finish()
}

type globalFlags struct {
	workDir    string
	configPath string
	outputDir  string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if (arg == "-C" || arg == "--cwd") && idx+1 < len(args) {
		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", book.ErrFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// -o/--output-dir flag
	if arg == "-o" || arg == "--output-dir" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", book.ErrFlagRequiresArg, arg)
		}

		flags.outputDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--output-dir="); ok {
		flags.outputDir = after

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", book.ErrUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func fprintf(w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(w, format, a...)
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == helpFlag {
			return true
		}
	}

	return false
}

// newLogger builds the logger commands hand to the lower layers. Telemetry
// goes to stderr so stdout stays parseable.
func newLogger(errOut io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func printUsage(writer io.Writer) {
	fprintln(writer, `slam - slam book generator

Usage: slam [options] <command> [args]

Options:
  -C, --cwd <dir>        Run as if started in <dir>
  -c, --config <file>    Use specified config file
  -o, --output-dir <dir> Override output directory

Commands:`)
	fprintln(writer, fetchHelp)
	fprintln(writer, pagesHelp)
	fprintln(writer, coverHelp)
	fprintln(writer, indexHelp)
	fprintln(writer, webpHelp)
	fprintln(writer, cleanHelp)
	fprintln(writer, statusHelp)
	fprintln(writer, runHelp)
	fprintln(writer, `  print-config           Show resolved configuration`)
}
