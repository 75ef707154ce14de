package config

import (
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/mdman-dev/mdman/pkg/errors"
)

const (
	// StorePath is the default path to the mapping store.
	StorePath = "~/.config/mdman/mappings.json"

	// SettingsPath is the default path to the watcher settings file.
	SettingsPath = "~/.config/mdman/config.yaml"
)

// homedirExpand will be overridden in mock tests.
var homedirExpand = homedir.Expand

// CanonicalPath normalizes a user-supplied path so that the same file is
// always referred to by the same string: the home directory is expanded, the
// path is made absolute, and symlinks are resolved when the path exists.
// Paths that don't exist yet are returned in cleaned absolute form rather
// than erroring, since destinations are often created by the first sync.
func CanonicalPath(path string) (string, error) {
	expanded, err := homedirExpand(path)
	if err != nil {
		return "", errors.WithContext(err, "expand home")
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.WithContext(err, "absolute path")
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return filepath.Clean(abs), nil
}

// GetStorePath returns the expanded path to the mapping store.
func GetStorePath() (string, error) {
	return homedirExpand(StorePath)
}

// GetSettingsPath returns the expanded path to the watcher settings file.
func GetSettingsPath() (string, error) {
	return homedirExpand(SettingsPath)
}
