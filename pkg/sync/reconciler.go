package sync

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/mdman-dev/mdman/pkg/config"
	"github.com/mdman-dev/mdman/pkg/errors"
	"github.com/mdman-dev/mdman/pkg/fswatch"
	"github.com/mdman-dev/mdman/pkg/notify"
)

// Mocked out for unit testing.
var fs = afero.NewOsFs()

const (
	// recencyPurgeWindow is how long a self-write entry is retained before
	// being purged at the start of event handling.
	recencyPurgeWindow = 5 * time.Second

	// selfWriteWindow is the maximum age of a self-write entry for a
	// destination event to be treated as an echo of our own propagation
	// rather than a direct edit.
	selfWriteWindow = 2 * time.Second

	// watchErrorPause is how long the event loop waits after a watch
	// backend error before listening again.
	watchErrorPause = time.Second
)

// MappingStore is the part of the mapping store the Reconciler uses.
type MappingStore interface {
	Load() (config.Mappings, error)
	Save(config.Mappings) error
}

// EventSource is the part of the watch engine the Reconciler consumes.
type EventSource interface {
	Events() <-chan fswatch.Event
	Errors() <-chan error
	Rewatch(config.Mappings) (int, error)
}

// Reconciler consumes filesystem change events and decides what each one
// implies: propagate a source edit, warn about a desync or a deleted source,
// or do nothing. It owns all mutable state; events are handled one at a time
// so no locking is needed.
type Reconciler struct {
	store    MappingStore
	notifier notify.Notifier
	clock    clockwork.Clock

	mappings config.Mappings

	// reverse maps destination to owning source. Derived from mappings and
	// rebuilt in full on every event, never patched incrementally.
	reverse map[string]string

	// lastKnown holds each source's last observed content, used as the
	// before-image for the "was this destination in sync" test.
	lastKnown map[string][]byte

	// recentWrites records when each destination was last written by us.
	recentWrites map[string]time.Time
}

// NewReconciler creates a Reconciler and seeds the content snapshots with
// the current content of every existing source.
func NewReconciler(store MappingStore, notifier notify.Notifier) (*Reconciler, error) {
	r := &Reconciler{
		store:        store,
		notifier:     notifier,
		clock:        clockwork.NewRealClock(),
		reverse:      map[string]string{},
		lastKnown:    map[string][]byte{},
		recentWrites: map[string]time.Time{},
	}

	mappings, err := store.Load()
	if err != nil {
		return nil, errors.WithContext(err, "load mappings")
	}
	r.mappings = mappings
	r.rebuildReverse()

	for source := range mappings {
		content, err := afero.ReadFile(fs, source)
		if err != nil {
			continue
		}
		r.lastKnown[source] = content
	}
	return r, nil
}

// Run pulls events from the source until its event channel closes. All
// classification and I/O for one event completes before the next is pulled.
// A watch backend error pauses the loop briefly; it never ends it.
//
// Watches are re-registered after every handled event: our writes land via
// rename, which replaces the watched inode and kills the backend's watch on
// that file, and propagation may also create destinations that didn't exist
// when the watches were first set up.
func (r *Reconciler) Run(events EventSource) {
	for {
		select {
		case event, ok := <-events.Events():
			if !ok {
				return
			}
			if err := r.HandleEvent(event); err != nil {
				log.WithError(err).Error("Failed to handle event")
				continue
			}
			if _, err := events.Rewatch(r.mappings); err != nil {
				log.WithError(err).Error("Failed to refresh watches")
			}
		case err, ok := <-events.Errors():
			if !ok {
				return
			}
			log.WithError(err).Error("Watch error")
			r.clock.Sleep(watchErrorPause)
		}
	}
}

// HandleEvent classifies and acts on one change notification. The mapping
// store is re-read first so that classification always uses current truth --
// the mappings may have changed since the last event, e.g. via a concurrent
// `mdman copy`. An unreadable store aborts this cycle only.
func (r *Reconciler) HandleEvent(event fswatch.Event) error {
	mappings, err := r.store.Load()
	if err != nil {
		return errors.WithContext(err, "reload mappings")
	}
	r.mappings = mappings
	r.rebuildReverse()
	r.purgeRecentWrites()

	for _, path := range event.Paths {
		r.handlePath(event.Op, path)
	}
	return nil
}

func (r *Reconciler) handlePath(op fswatch.Op, path string) {
	if op == fswatch.Remove {
		r.handleRemoval(path)
		return
	}

	canonical, err := config.CanonicalPath(path)
	if err != nil {
		canonical = path
	}

	// A path that's somehow both a source and a destination is classified
	// as a source: propagating is the action that can't lose data.
	if source, dests, ok := r.mappings.FindSource(canonical); ok {
		r.propagate(source, dests)
		return
	}

	if source, ok := r.reverse[canonical]; ok {
		if r.isRecentSelfWrite(canonical) {
			log.WithField("path", canonical).Debug(
				"Ignoring event caused by our own sync write")
			return
		}
		r.sendNotification(notify.Desync(canonical, source))
	}
}

// handleRemoval deals with a Remove event. Only the removal of a tracked
// source is meaningful: tracking is retracted and the user warned. The
// destination files are left on disk untouched -- there's just no longer a
// source of truth to compare them against. Removal of a destination isn't
// specially handled; a later sync may recreate the file.
func (r *Reconciler) handleRemoval(path string) {
	source, dests, ok := r.mappings.FindSource(path)
	if !ok {
		return
	}

	r.sendNotification(notify.SourceDeleted(source, dests))
	log.WithField("source", source).Warn(
		"Source deleted. Destinations remain on disk and are no longer watched. " +
			"Tracking has been removed.")

	delete(r.mappings, source)
	if err := r.store.Save(r.mappings); err != nil {
		log.WithError(err).Error("Failed to save mappings after removing deleted source")
	}

	for _, dest := range dests {
		delete(r.reverse, dest)
	}
	delete(r.lastKnown, source)
}

// propagate pushes a changed source to its destinations. Each destination is
// handled independently: an error on one never aborts the others.
func (r *Reconciler) propagate(source string, dests []string) {
	newContent, err := afero.ReadFile(fs, source)
	if err != nil {
		log.WithError(err).WithField("source", source).Error("Failed to read source")
		return
	}

	oldContent, hadSnapshot := r.lastKnown[source]
	// The new content becomes the before-image for the next event,
	// regardless of what happens below.
	r.lastKnown[source] = newContent

	synced, desynced := 0, 0
	var desyncedPaths []string
	for _, dest := range dests {
		switch r.syncDestination(dest, oldContent, hadSnapshot, newContent) {
		case outcomeSynced:
			synced++
		case outcomeDesynced:
			desynced++
			desyncedPaths = append(desyncedPaths, dest)
		}
	}

	if synced == 0 && desynced == 0 {
		return
	}

	r.sendNotification(notify.SyncSummary(source, synced, desynced))
	if desynced > 0 {
		for _, path := range desyncedPaths {
			log.WithField("path", path).Warn("Desynced file left out")
		}
		log.Warn("Use 'mdman sync' to force sync or 'mdman diff' to see differences")
	}
}

type outcome int

const (
	outcomeSynced outcome = iota
	outcomeDesynced
	outcomeError
)

// syncDestination applies a source change to one destination.
// A missing destination is created. An existing destination is overwritten
// only if its bytes match the source's old snapshot (or no snapshot existed
// yet); otherwise it drifted from the source independently and is left
// untouched.
func (r *Reconciler) syncDestination(dest string, oldContent []byte,
	hadSnapshot bool, newContent []byte) outcome {

	exists, err := afero.Exists(fs, dest)
	if err != nil {
		log.WithError(err).WithField("path", dest).Error("Failed to stat destination")
		return outcomeError
	}

	if exists {
		destContent, err := afero.ReadFile(fs, dest)
		if err != nil {
			log.WithError(err).WithField("path", dest).Error("Failed to read destination")
			return outcomeError
		}

		wasInSync := !hadSnapshot || bytes.Equal(destContent, oldContent)
		if !wasInSync {
			return outcomeDesynced
		}
	}

	if err := writeFile(dest, newContent); err != nil {
		log.WithError(err).WithField("path", dest).Error("Failed to sync destination")
		return outcomeError
	}
	r.recentWrites[dest] = r.clock.Now()
	return outcomeSynced
}

func (r *Reconciler) rebuildReverse() {
	r.reverse = map[string]string{}
	for source, dests := range r.mappings {
		for _, dest := range dests {
			r.reverse[dest] = source
		}
	}
}

func (r *Reconciler) purgeRecentWrites() {
	now := r.clock.Now()
	for dest, writtenAt := range r.recentWrites {
		if now.Sub(writtenAt) >= recencyPurgeWindow {
			delete(r.recentWrites, dest)
		}
	}
}

func (r *Reconciler) isRecentSelfWrite(dest string) bool {
	writtenAt, ok := r.recentWrites[dest]
	return ok && r.clock.Now().Sub(writtenAt) < selfWriteWindow
}

func (r *Reconciler) sendNotification(msg notify.Message) {
	if err := r.notifier.Notify(msg); err != nil {
		log.WithError(err).Warn("Failed to deliver notification")
	}
}

// writeFile writes content via a temporary file in the destination's
// directory followed by a rename, so a crash mid-write can't leave a torn
// destination behind. Parent directories are created as needed.
func writeFile(path string, content []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WithContext(err, "create parent directory")
	}

	tmpPath := fmt.Sprintf("%s.mdman-tmp", path)
	if err := afero.WriteFile(fs, tmpPath, content, 0644); err != nil {
		return errors.WithContext(err, "write")
	}

	if err := fs.Rename(tmpPath, path); err != nil {
		return errors.WithContext(err, "rename into place")
	}
	return nil
}
