package config

import (
	"path/filepath"
	"sort"

	"github.com/mdman-dev/mdman/pkg/errors"
)

// Role describes how a path participates in the mapping store.
type Role string

const (
	// RoleSource is a file whose edits are propagated to its destinations.
	RoleSource Role = "source"

	// RoleDestination is a mirrored copy of a source file.
	RoleDestination Role = "destination"
)

// Mappings maps a canonical source path to the ordered list of destination
// paths mirrored from it. Destinations are kept in insertion order and are
// not deduplicated.
type Mappings map[string][]string

// Add records that destination should be mirrored from source. If the
// destination is an existing directory, the source's basename is appended to
// it, mirroring `cp` semantics.
func (m Mappings) Add(source, destination string) error {
	canonicalSource, err := CanonicalPath(source)
	if err != nil {
		return errors.WithContext(err, "canonicalize source")
	}

	canonicalDest, err := ResolveDestination(canonicalSource, destination)
	if err != nil {
		return err
	}

	m[canonicalSource] = append(m[canonicalSource], canonicalDest)
	return nil
}

// ResolveDestination computes the canonical destination file path for a
// source. If destination is an existing directory, the source's basename is
// appended to it.
func ResolveDestination(source, destination string) (string, error) {
	destFile := destination
	if isDir, _ := IsDir(destination); isDir {
		destFile = filepath.Join(destination, filepath.Base(source))
	}

	canonical, err := CanonicalPath(destFile)
	if err != nil {
		return "", errors.WithContext(err, "canonicalize destination")
	}
	return canonical, nil
}

// RemoveDestination removes the given path from every destination list, and
// drops sources that are left with no destinations. It reports whether
// anything was removed.
func (m Mappings) RemoveDestination(path string) bool {
	canonical, err := CanonicalPath(path)
	if err != nil {
		canonical = path
	}

	removed := false
	for source, dests := range m {
		kept := dests[:0]
		for _, dest := range dests {
			if dest == path || dest == canonical {
				removed = true
				continue
			}
			kept = append(kept, dest)
		}

		if len(kept) == 0 {
			delete(m, source)
		} else {
			m[source] = kept
		}
	}
	return removed
}

// FindSource looks up a source entry by path, trying the exact path first and
// the canonicalized path second.
func (m Mappings) FindSource(path string) (source string, dests []string, ok bool) {
	if dests, ok := m[path]; ok {
		return path, dests, true
	}

	canonical, err := CanonicalPath(path)
	if err != nil {
		return "", nil, false
	}
	if dests, ok := m[canonical]; ok {
		return canonical, dests, true
	}
	return "", nil, false
}

// SourceOf returns the source a destination path is mirrored from.
func (m Mappings) SourceOf(dest string) (string, bool) {
	canonical, err := CanonicalPath(dest)
	if err != nil {
		canonical = dest
	}

	for source, dests := range m {
		for _, d := range dests {
			if d == dest || d == canonical {
				return source, true
			}
		}
	}
	return "", false
}

// RoleOf returns how the path participates in the mappings, if at all.
// A path that somehow appears as both is reported as a source, since that's
// the classification the watcher gives precedence to.
func (m Mappings) RoleOf(path string) (Role, bool) {
	if _, _, ok := m.FindSource(path); ok {
		return RoleSource, true
	}
	if _, ok := m.SourceOf(path); ok {
		return RoleDestination, true
	}
	return "", false
}

// Sources returns the source paths in deterministic order.
func (m Mappings) Sources() []string {
	sources := make([]string, 0, len(m))
	for source := range m {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	return sources
}

// IsDir reports whether the path is an existing directory.
func IsDir(path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
