// Package project provides utilities for working with the project structure.
package project

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigFileName is the per-project dotkit configuration file.
const ConfigFileName = ".dotkit.yaml"

// ErrNotFound is returned when no project config file exists above the start directory.
var ErrNotFound = errors.New("no " + ConfigFileName + " found")

// FindConfig walks up from start looking for ConfigFileName.
// The search stops at the first directory containing .git, which is treated
// as the project root.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	// Walk up the directory tree
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		// Check for repository root
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		// Move up one directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return "", ErrNotFound
}

// FindConfigFromCwd is FindConfig starting at the working directory.
func FindConfigFromCwd() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindConfig(cwd)
}
