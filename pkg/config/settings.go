package config

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/spf13/afero"

	"github.com/mdman-dev/mdman/pkg/errors"
)

const (
	// InitialSettingsVersion is the first version of the settings file.
	// Files that don't specify a version default to this version.
	InitialSettingsVersion = "v1alpha1"

	// SupportedSettingsVersion is the settings version supported by the
	// current binary.
	SupportedSettingsVersion = "v1alpha1"
)

// parseSettingsErrTemplate is a template for when the CLI fails to parse the
// settings file. This can happen for a multitude of reasons, including
// extraneous fields and incorrect field types. However, the yaml library
// constructs errors in a way that loses context, and so we can only pass the
// error message on.
const parseSettingsErrTemplate = "Settings file could not be parsed. " +
	"Please review %q.\n" +
	"Common pitfalls include:\n" +
	" - Using the wrong types for fields\n" +
	" - Having extra fields inside the file\n\n" +
	"For reference, here is the error from the parser:\n" +
	"%s"

// Settings holds the optional watcher configuration.
type Settings struct {
	Version string `json:"version,omitempty"`

	// DisableNotifications turns off desktop popups. Warnings are still
	// written to the log.
	DisableNotifications bool `json:"disableNotifications,omitempty"`
}

func (s Settings) getVersion() string {
	return s.Version
}

type settingsInterface interface {
	getVersion() string
}

type incompatibleVersionError struct {
	path, exp, actual string
}

func (err incompatibleVersionError) Error() string {
	return err.FriendlyMessage()
}

func (err incompatibleVersionError) FriendlyMessage() string {
	return fmt.Sprintf("The settings file %q is incompatible "+
		"with this version of mdman.\n"+
		"Expected version %q, but got %q.", err.path, err.exp, err.actual)
}

// ParseSettings reads the settings file at the default path. A missing file
// yields the defaults.
func ParseSettings() (Settings, error) {
	path, err := GetSettingsPath()
	if err != nil {
		return Settings{}, errors.WithContext(err, "expand settings path")
	}

	settings := Settings{Version: InitialSettingsVersion}
	if err := parseSettings(path, &settings, SupportedSettingsVersion); err != nil {
		if _, ok := err.(errors.FileNotFound); ok {
			return Settings{Version: InitialSettingsVersion}, nil
		}
		return Settings{}, errors.WithContext(err, "parse")
	}
	return settings, nil
}

func parseSettings(path string, settings settingsInterface, expVersion string) error {
	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		if isPathNotFoundError(err) {
			return errors.FileNotFound{Path: path}
		}
		return errors.WithContext(err, "read file")
	}

	err = yaml.Unmarshal(contents, settings)
	if err != nil {
		return errors.NewFriendlyError(parseSettingsErrTemplate, path, err)
	}

	if settings.getVersion() != expVersion {
		return incompatibleVersionError{path, expVersion, settings.getVersion()}
	}

	// Do a strict unmarshal to check for any extra fields. We do a non-strict
	// unmarshal first so that we can catch version errors before erroring on
	// extra fields.
	err = yaml.UnmarshalStrict(contents, settings, yaml.DisallowUnknownFields)
	if err != nil {
		return errors.NewFriendlyError(parseSettingsErrTemplate, path, err)
	}
	return nil
}

func isPathNotFoundError(err error) bool {
	return os.IsNotExist(err)
}
