package fswatch

import (
	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/mdman-dev/mdman/pkg/config"
	"github.com/mdman-dev/mdman/pkg/errors"
)

// Mocked out for unit testing.
var fs = afero.NewOsFs()

// Op is the kind of filesystem change observed on a path.
type Op int

const (
	// Create means the path came into existence.
	Create Op = iota

	// Modify means the path's contents changed.
	Modify

	// Remove means the path was deleted or renamed away.
	Remove
)

func (op Op) String() string {
	switch op {
	case Create:
		return "create"
	case Modify:
		return "modify"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// Event is a single filesystem change notification.
type Event struct {
	Op    Op
	Paths []string
}

// Watcher produces a sequential stream of change events for the files named
// by the mapping store. Watches are non-recursive and are only registered on
// paths that exist; a path that doesn't exist yet is skipped and won't be
// observed until Rewatch is called after it's created.
type Watcher struct {
	backend *fsnotify.Watcher
	events  chan Event
}

// New creates a Watcher. It doesn't watch anything until Rewatch is called.
func New() (*Watcher, error) {
	backend, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WithContext(err, "create watcher")
	}

	w := &Watcher{
		backend: backend,
		events:  make(chan Event, 16),
	}
	go w.translateLoop()
	return w, nil
}

// Rewatch registers a watch on every source and destination in the mappings
// that currently exists on disk. It returns the number of watched files.
// Registering a path that's already watched is a no-op, so Rewatch is safe to
// call repeatedly as the mappings change.
func (w *Watcher) Rewatch(mappings config.Mappings) (int, error) {
	watched := 0
	for _, path := range WatchablePaths(mappings) {
		if err := w.backend.Add(path); err != nil {
			return watched, errors.WithContext(err, "watch "+path)
		}
		watched++
	}
	return watched, nil
}

// Events returns the channel of translated change events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watch backend errors.
func (w *Watcher) Errors() <-chan error {
	return w.backend.Errors
}

// Close stops watching and closes the event channel.
func (w *Watcher) Close() error {
	return w.backend.Close()
}

func (w *Watcher) translateLoop() {
	defer close(w.events)
	for raw := range w.backend.Events {
		event, ok := translate(raw)
		if !ok {
			continue
		}

		log.WithFields(log.Fields{
			"op":    event.Op,
			"paths": event.Paths,
		}).Debug("Filesystem event")
		w.events <- event
	}
}

// translate converts an fsnotify event into the watcher's event model.
// Chmod-only events don't change contents and are dropped.
func translate(raw fsnotify.Event) (Event, bool) {
	var op Op
	switch {
	case raw.Has(fsnotify.Create):
		op = Create
	case raw.Has(fsnotify.Write):
		op = Modify
	case raw.Has(fsnotify.Remove), raw.Has(fsnotify.Rename):
		// A rename away from a watched path looks like a removal from the
		// perspective of the mapping.
		op = Remove
	default:
		return Event{}, false
	}
	return Event{Op: op, Paths: []string{raw.Name}}, true
}

// WatchablePaths returns the paths in the mappings that exist on disk, in
// deterministic order: each source followed by its destinations.
func WatchablePaths(mappings config.Mappings) []string {
	var paths []string
	appendIfExists := func(path string) {
		exists, err := afero.Exists(fs, path)
		if err != nil || !exists {
			return
		}
		paths = append(paths, path)
	}

	for _, source := range mappings.Sources() {
		appendIfExists(source)
		for _, dest := range mappings[source] {
			appendIfExists(dest)
		}
	}
	return paths
}
