package book

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options. Everything the original scripts
// kept as module-level constants (file names, column headers, the index row
// layout) lives here and is passed down explicitly.
type Config struct {
	// From config files (serialized)
	CSVFile       string `json:"csv_file"`
	TemplateFile  string `json:"template_file"`
	OutputDir     string `json:"output_dir"`
	CoverImage    string `json:"cover_image"`
	CoverTitle    string `json:"cover_title"`
	FallbackImage string `json:"fallback_image,omitempty"`
	NameColumn    string `json:"name_column,omitempty"`
	PhotoColumn   string `json:"photo_column,omitempty"`
	Quality       int    `json:"quality,omitempty"`
	FetchDelayMS  int    `json:"fetch_delay_ms,omitempty"`
	RowLayout     []int  `json:"row_layout,omitempty"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd    string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	CSVFileAbs      string `json:"-"`
	TemplateFileAbs string `json:"-"`
	OutputDirAbs    string `json:"-"`
	CoverImageAbs   string `json:"-"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration. Column defaults match the
// headers of the original form export.
func DefaultConfig() Config {
	return Config{
		CSVFile:       "slam.csv",
		TemplateFile:  "template.html",
		OutputDir:     "output",
		CoverImage:    "mainPage.png",
		CoverTitle:    "The Slam Book",
		FallbackImage: "mainPage.png",
		NameColumn:    "Full Name",
		PhotoColumn:   "Add a selfie or an old photo with him",
		Quality:       85,
		FetchDelayMS:  500,
		RowLayout:     []int{5, 6, 7, 8, 7, 6, 5, 4, 3},
	}
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".slam.json"

// Quality bounds for the WebP encoder.
const (
	MinQuality = 1
	MaxQuality = 100
)

// globalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/slam/config.json if set, otherwise
// ~/.config/slam/config.json. Empty when no home directory is known.
func globalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "slam", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "slam", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride   string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath        string            // -c/--config flag value
	OutputDirOverride string            // --output-dir flag value; empty means no override
	Env               map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/slam/config.json or $XDG_CONFIG_HOME/slam/config.json)
// 3. Project config file at default location (.slam.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
// 5. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := DefaultConfig()

	globalCfg, globalPath, err := loadOptionalConfig(globalConfigPath(input.Env))
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	if input.OutputDirOverride != "" {
		cfg.OutputDir = input.OutputDirOverride
	}

	validateErr := validateConfig(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	cfg.EffectiveCwd = workDir
	cfg.CSVFileAbs = absJoin(workDir, cfg.CSVFile)
	cfg.TemplateFileAbs = absJoin(workDir, cfg.TemplateFile)
	cfg.OutputDirAbs = absJoin(workDir, cfg.OutputDir)
	cfg.CoverImageAbs = absJoin(workDir, cfg.CoverImage)

	return cfg, nil
}

func absJoin(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}

// loadProjectConfig loads the project config file (.slam.json) or an explicit
// config file. An explicit file must exist; the default one is optional.
func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	if configPath == "" {
		return loadOptionalConfig(filepath.Join(workDir, ConfigFileName))
	}

	cfgFile := configPath
	if !filepath.IsAbs(cfgFile) {
		cfgFile = filepath.Join(workDir, cfgFile)
	}

	_, statErr := os.Stat(cfgFile)
	if statErr != nil {
		return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
	}

	cfg, err := parseConfigFile(cfgFile)
	if err != nil {
		return Config{}, "", err
	}

	return cfg, cfgFile, nil
}

// loadOptionalConfig loads path if it exists; a missing file is not an error.
func loadOptionalConfig(path string) (Config, string, error) {
	if path == "" {
		return Config{}, "", nil
	}

	_, statErr := os.Stat(path)
	if statErr != nil {
		return Config{}, "", nil
	}

	cfg, err := parseConfigFile(path)
	if err != nil {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// parseConfigFile reads a JWCC (JSON with comments and commas) config file.
func parseConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrConfigFileRead, path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w %s: %v", ErrConfigInvalid, path, err)
	}

	var cfg Config

	decodeErr := json.Unmarshal(standardized, &cfg)
	if decodeErr != nil {
		return Config{}, fmt.Errorf("%w %s: %v", ErrConfigInvalid, path, decodeErr)
	}

	return cfg, nil
}

// mergeConfig overlays non-zero fields of overlay onto base.
func mergeConfig(base, overlay Config) Config {
	if overlay.CSVFile != "" {
		base.CSVFile = overlay.CSVFile
	}

	if overlay.TemplateFile != "" {
		base.TemplateFile = overlay.TemplateFile
	}

	if overlay.OutputDir != "" {
		base.OutputDir = overlay.OutputDir
	}

	if overlay.CoverImage != "" {
		base.CoverImage = overlay.CoverImage
	}

	if overlay.CoverTitle != "" {
		base.CoverTitle = overlay.CoverTitle
	}

	if overlay.FallbackImage != "" {
		base.FallbackImage = overlay.FallbackImage
	}

	if overlay.NameColumn != "" {
		base.NameColumn = overlay.NameColumn
	}

	if overlay.PhotoColumn != "" {
		base.PhotoColumn = overlay.PhotoColumn
	}

	if overlay.Quality != 0 {
		base.Quality = overlay.Quality
	}

	if overlay.FetchDelayMS != 0 {
		base.FetchDelayMS = overlay.FetchDelayMS
	}

	if len(overlay.RowLayout) != 0 {
		base.RowLayout = overlay.RowLayout
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.OutputDir == "" {
		return ErrOutputDirEmpty
	}

	if cfg.Quality < MinQuality || cfg.Quality > MaxQuality {
		return fmt.Errorf("%w: got %d", ErrQualityOutOfRange, cfg.Quality)
	}

	if cfg.FetchDelayMS < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeDelay, cfg.FetchDelayMS)
	}

	for _, size := range cfg.RowLayout {
		if size <= 0 {
			return fmt.Errorf("%w: got %d", ErrBadRowLayout, size)
		}
	}

	return nil
}
