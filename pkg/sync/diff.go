package sync

import (
	"bytes"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/mdman-dev/mdman/pkg/config"
	"github.com/mdman-dev/mdman/pkg/errors"
)

// ReportKind classifies a difference between a source and its destinations.
type ReportKind int

const (
	// SourceMissing means the tracked source file doesn't exist on disk.
	SourceMissing ReportKind = iota

	// DestinationMissing means a destination hasn't been created yet.
	DestinationMissing

	// ContentDiffers means source and destination bytes aren't equal.
	ContentDiffers
)

// Report describes one difference found by Diff.
type Report struct {
	Kind       ReportKind
	Source     string
	Dest       string
	SourceSize int
	DestSize   int
}

func (r Report) String() string {
	switch r.Kind {
	case SourceMissing:
		return fmt.Sprintf("Source file %s does not exist", r.Source)
	case DestinationMissing:
		return fmt.Sprintf("Destination %s does not exist (source: %s)",
			r.Dest, r.Source)
	default:
		return fmt.Sprintf("Files differ:\n  Source: %s\n  Dest:   %s\n"+
			"  Size difference: %d vs %d bytes",
			r.Source, r.Dest, r.SourceSize, r.DestSize)
	}
}

// Diff compares every tracked source against its destinations by byte
// equality. If filter is non-empty, only mappings involving that path
// (as source or destination) are checked.
func Diff(store MappingStore, filter string) ([]Report, error) {
	mappings, err := store.Load()
	if err != nil {
		return nil, errors.WithContext(err, "load mappings")
	}

	if filter != "" {
		if canonical, err := config.CanonicalPath(filter); err == nil {
			filter = canonical
		}
	}

	var reports []Report
	for _, source := range mappings.Sources() {
		dests := mappings[source]
		if filter != "" && !involves(source, dests, filter) {
			continue
		}

		exists, err := afero.Exists(fs, source)
		if err != nil || !exists {
			reports = append(reports, Report{Kind: SourceMissing, Source: source})
			continue
		}

		sourceContent, err := afero.ReadFile(fs, source)
		if err != nil {
			log.WithError(err).WithField("source", source).Error("Failed to read source")
			continue
		}

		for _, dest := range dests {
			destExists, err := afero.Exists(fs, dest)
			if err != nil || !destExists {
				reports = append(reports, Report{
					Kind:   DestinationMissing,
					Source: source,
					Dest:   dest,
				})
				continue
			}

			destContent, err := afero.ReadFile(fs, dest)
			if err != nil {
				log.WithError(err).WithField("path", dest).Error("Failed to read destination")
				continue
			}

			if !bytes.Equal(sourceContent, destContent) {
				reports = append(reports, Report{
					Kind:       ContentDiffers,
					Source:     source,
					Dest:       dest,
					SourceSize: len(sourceContent),
					DestSize:   len(destContent),
				})
			}
		}
	}
	return reports, nil
}

func involves(source string, dests []string, path string) bool {
	if source == path {
		return true
	}
	for _, dest := range dests {
		if dest == path {
			return true
		}
	}
	return false
}
