package config

import (
	"errors"
	"strings"
)

// Options are the command-line settings. The server address is not among
// them; it is always ollama.BaseURL.
type Options struct {
	Quiet     bool
	Markdown  bool
	NoSpinner bool
	Save      bool
	DB        string
}

// Validate checks flag combinations for an interactive run.
func (o Options) Validate() error {
	if strings.TrimSpace(o.DB) != "" && !o.Save {
		return errors.New("--db requires --save")
	}
	return nil
}

// DSN returns the transcript store location, defaulting to a SQLite file in
// the config dir.
func (o Options) DSN() string {
	if dsn := strings.TrimSpace(o.DB); dsn != "" {
		return dsn
	}
	return DefaultDB()
}
