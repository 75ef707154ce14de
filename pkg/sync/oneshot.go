package sync

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/mdman-dev/mdman/pkg/errors"
)

// Stats summarizes a force-sync run.
type Stats struct {
	Synced int
	Errors int
}

// SyncAll force-syncs every mapping: each destination is overwritten with
// its source's current content, drifted or not. This is the explicit user
// remediation for a desync, so the watcher's no-silent-overwrite rule
// deliberately doesn't apply here. Errors are counted per path and never
// abort the run.
func SyncAll(store MappingStore) (Stats, error) {
	mappings, err := store.Load()
	if err != nil {
		return Stats{}, errors.WithContext(err, "load mappings")
	}

	stats := Stats{}
	for _, source := range mappings.Sources() {
		exists, err := afero.Exists(fs, source)
		if err != nil || !exists {
			log.WithField("source", source).Warn("Source file does not exist")
			stats.Errors++
			continue
		}

		content, err := afero.ReadFile(fs, source)
		if err != nil {
			log.WithError(err).WithField("source", source).Error("Failed to read source")
			stats.Errors++
			continue
		}

		for _, dest := range mappings[source] {
			if err := writeFile(dest, content); err != nil {
				log.WithError(err).WithField("path", dest).Error("Failed to sync")
				stats.Errors++
				continue
			}
			log.WithFields(log.Fields{
				"source": source,
				"dest":   dest,
			}).Info("Synced")
			stats.Synced++
		}
	}
	return stats, nil
}
