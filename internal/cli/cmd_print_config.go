package cli

import (
	"encoding/json"

	"slambook/internal/book"
)

func cmdPrintConfig(o *IO, cfg book.Config) error {
	formatted, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	o.Println(string(formatted))

	// Print sources
	o.Println("")
	o.Println("# Sources:")

	if cfg.Sources.Global != "" {
		o.Println("#   global:", cfg.Sources.Global)
	}

	if cfg.Sources.Project != "" {
		o.Println("#   project:", cfg.Sources.Project)
	}

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		o.Println("#   (using defaults only)")
	}

	return nil
}
