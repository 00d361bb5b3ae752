package book

import "errors"

// Error variables for roster and config operations.
var (
	ErrCSVNotFound        = errors.New("csv file not found")
	ErrMissingColumns     = errors.New("csv header missing required columns")
	ErrEmptyHeader        = errors.New("csv file has no header row")
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrOutputDirEmpty     = errors.New("output_dir cannot be empty")
	ErrQualityOutOfRange  = errors.New("quality must be between 1 and 100")
	ErrNegativeDelay      = errors.New("fetch_delay_ms cannot be negative")
	ErrBadRowLayout       = errors.New("row_layout entries must be positive")
	ErrFlagRequiresArg    = errors.New("flag requires an argument")
	ErrUnknownFlag        = errors.New("unknown flag")
)
