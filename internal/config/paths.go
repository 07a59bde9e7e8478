// Package config manages fontgarden configuration and the locations it is
// read from.
//
// Settings come from, in order of precedence: command-line flags bound by the
// CLI, FONTGARDEN_* environment variables, a config file, and the defaults
// below. The config file is .fontgarden.yaml in the working directory or
// config.yaml in the user config directory (default: ~/.config/fontgarden).
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains the directories searched for a config file.
type Paths struct {
	// Project is the directory searched for .fontgarden.yaml (default: ".")
	Project string

	// User is the per-user config directory (default: ~/.config/fontgarden)
	User string
}

// DefaultPaths returns the default config search paths.
// The user directory can be overridden with environment variables:
// - FONTGARDEN_CONFIG_DIR: Override the user config directory
func DefaultPaths() (*Paths, error) {
	user := os.Getenv("FONTGARDEN_CONFIG_DIR")
	if user == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user config directory: %w", err)
		}
		user = filepath.Join(dir, "fontgarden")
	}

	return &Paths{
		Project: ".",
		User:    user,
	}, nil
}

// ProjectFile returns the path of the project config file.
func (p *Paths) ProjectFile() string {
	return filepath.Join(p.Project, projectConfigName+".yaml")
}

// UserFile returns the path of the user config file.
func (p *Paths) UserFile() string {
	return filepath.Join(p.User, userConfigName+".yaml")
}
