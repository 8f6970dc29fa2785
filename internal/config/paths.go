package config

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

const DefaultDataDir = "~/.horizon"

// DataDir expands dir (or DefaultDataDir when empty) to an absolute path.
func DataDir(dir string) (string, error) {
	if dir == "" {
		dir = DefaultDataDir
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}

// DefaultPath is the config file inside the data dir.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, "config.yaml")
}
