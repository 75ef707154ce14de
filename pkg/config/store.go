package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/mdman-dev/mdman/pkg/errors"
)

// Store persists the source to destination mappings as pretty-printed JSON.
// It has no in-memory state: every Load re-reads the file so that concurrent
// CLI invocations are always observed.
type Store struct {
	path string
}

// NewStore creates a Store at the default location.
func NewStore() (*Store, error) {
	path, err := GetStorePath()
	if err != nil {
		return nil, errors.WithContext(err, "expand store path")
	}
	return NewStoreAt(path), nil
}

// NewStoreAt creates a Store backed by the given file.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store reads from and writes to.
func (s *Store) Path() string {
	return s.path
}

// Load reads the mappings from disk. A missing store file is not an error --
// it just means nothing is tracked yet.
func (s *Store) Load() (Mappings, error) {
	contents, err := afero.ReadFile(fs, s.path)
	if err != nil {
		if isPathNotFoundError(err) {
			return Mappings{}, nil
		}
		return nil, errors.WithContext(err, "read store")
	}

	mappings := Mappings{}
	if err := json.Unmarshal(contents, &mappings); err != nil {
		return nil, errors.NewFriendlyError(
			"The mapping store at %q is corrupt and could not be parsed.\n"+
				"Fix or delete the file to continue.\n\n"+
				"Parser error: %s", s.path, err)
	}
	return mappings, nil
}

// Save writes the mappings to disk. The write goes to a temporary file in the
// same directory which is then renamed over the store, so that a crash
// mid-write can't leave a torn store behind.
func (s *Store) Save(mappings Mappings) error {
	contents, err := json.MarshalIndent(mappings, "", "  ")
	if err != nil {
		return errors.WithContext(err, "marshal mappings")
	}

	dir := filepath.Dir(s.path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return errors.WithContext(err, "create store directory")
	}

	tmpPath := fmt.Sprintf("%s.tmp", s.path)
	if err := afero.WriteFile(fs, tmpPath, contents, 0644); err != nil {
		return errors.WithContext(err, "write store")
	}

	if err := fs.Rename(tmpPath, s.path); err != nil {
		return errors.WithContext(err, "commit store")
	}
	return nil
}
