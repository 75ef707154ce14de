package untrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdman-dev/mdman/cmd/util"
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

func TestUntrackSource(t *testing.T) {
	confirm = func(string) (bool, error) { return true, nil }
	defer func() { confirm = util.Confirm }()

	store := &fakeStore{mappings: config.Mappings{
		"/notes/a.md": {"/mirror/a.md", "/backup/a.md"},
		"/notes/b.md": {"/mirror/b.md"},
	}}

	require.NoError(t, run(store, "/notes/a.md"))
	assert.Equal(t, 1, store.saveCount)
	assert.Equal(t, config.Mappings{
		"/notes/b.md": {"/mirror/b.md"},
	}, store.mappings)
}

func TestUntrackDestination(t *testing.T) {
	confirm = func(string) (bool, error) { return true, nil }
	defer func() { confirm = util.Confirm }()

	store := &fakeStore{mappings: config.Mappings{
		"/notes/a.md": {"/mirror/a.md", "/backup/a.md"},
	}}

	require.NoError(t, run(store, "/backup/a.md"))
	assert.Equal(t, 1, store.saveCount)
	assert.Equal(t, config.Mappings{
		"/notes/a.md": {"/mirror/a.md"},
	}, store.mappings)
}

func TestUntrackCancelled(t *testing.T) {
	confirm = func(string) (bool, error) { return false, nil }
	defer func() { confirm = util.Confirm }()

	store := &fakeStore{mappings: config.Mappings{
		"/notes/a.md": {"/mirror/a.md"},
	}}

	require.NoError(t, run(store, "/notes/a.md"))
	assert.Zero(t, store.saveCount)
	assert.Contains(t, store.mappings, "/notes/a.md")
}

func TestUntrackUnknownPath(t *testing.T) {
	store := &fakeStore{mappings: config.Mappings{}}
	err := run(store, "/nowhere/x.md")
	require.Error(t, err)
	assert.Equal(t, errors.NotTracked{Path: "/nowhere/x.md"}, err)
	assert.Zero(t, store.saveCount)
}
