package config

import (
	"os"
	"path/filepath"
)

func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ollamaq")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "ollamaq")
}

func DefaultDB() string { return filepath.Join(Dir(), "ollamaq.db") }
