package copy

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdman-dev/mdman/pkg/config"
	"github.com/mdman-dev/mdman/pkg/errors"
)

type fakeStore struct {
	mappings  config.Mappings
	saveCount int
}

func (s *fakeStore) Load() (config.Mappings, error) {
	return s.mappings, nil
}

func (s *fakeStore) Save(m config.Mappings) error {
	s.mappings = m
	s.saveCount++
	return nil
}

func TestCopyTracksNewFile(t *testing.T) {
	fs = afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/notes/a.md", []byte("body"), 0644))

	store := &fakeStore{mappings: config.Mappings{}}
	require.NoError(t, run(store, "/notes/a.md", "/mirror/a.md"))

	content, err := afero.ReadFile(fs, "/mirror/a.md")
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), content)

	assert.Equal(t, 1, store.saveCount)
	assert.Equal(t, config.Mappings{
		"/notes/a.md": {"/mirror/a.md"},
	}, store.mappings)
}

func TestCopyMissingSource(t *testing.T) {
	fs = afero.NewMemMapFs()

	store := &fakeStore{mappings: config.Mappings{}}
	err := run(store, "/notes/missing.md", "/mirror/missing.md")
	require.Error(t, err)
	assert.IsType(t, errors.FriendlyError{}, err)
	assert.Zero(t, store.saveCount)
}

func TestCopyDirectorySource(t *testing.T) {
	fs = afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/notes", 0755))

	store := &fakeStore{mappings: config.Mappings{}}
	err := run(store, "/notes", "/mirror")
	require.Error(t, err)
	assert.IsType(t, errors.FriendlyError{}, err)
}

func TestCopyAlreadyTrackedSource(t *testing.T) {
	fs = afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/notes/a.md", []byte("body"), 0644))

	store := &fakeStore{mappings: config.Mappings{
		"/notes/a.md": {"/mirror/a.md"},
	}}
	err := run(store, "/notes/a.md", "/backup/a.md")
	require.Error(t, err)
	assert.IsType(t, errors.AlreadyTracked{}, err)
	assert.Zero(t, store.saveCount)
}

func TestCopyDestinationAlreadyTracked(t *testing.T) {
	fs = afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/notes/b.md", []byte("body"), 0644))

	store := &fakeStore{mappings: config.Mappings{
		"/notes/a.md": {"/mirror/a.md"},
	}}
	err := run(store, "/notes/b.md", "/mirror/a.md")
	require.Error(t, err)
	assert.IsType(t, errors.AlreadyTracked{}, err)
}
