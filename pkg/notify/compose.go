package notify

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// remediationHint points the user at the commands that resolve a desync.
const remediationHint = "Use 'mdman sync' to re-sync from source or " +
	"'mdman diff' to see differences"

// syncSummaryTimeout is how long routine sync summaries stay on screen.
const syncSummaryTimeout = 3 * time.Second

// SyncSummary composes the routine notification sent after propagating a
// source change. It's low urgency even when files were left out: the
// desynced files keep their own content, which is the safe outcome.
func SyncSummary(source string, synced, desynced int) Message {
	var parts []string
	switch {
	case synced == 1:
		parts = append(parts, "1 file has been synced")
	case synced > 1:
		parts = append(parts, fmt.Sprintf("%d files have been synced", synced))
	}
	switch {
	case desynced == 1:
		parts = append(parts, "1 desynced file left out")
	case desynced > 1:
		parts = append(parts, fmt.Sprintf("%d desynced files left out", desynced))
	}

	return Message{
		Summary:     fmt.Sprintf("mdman: %s", filepath.Base(source)),
		Body:        strings.Join(parts, ", "),
		Urgency:     Normal,
		AutoDismiss: syncSummaryTimeout,
	}
}

// Desync composes the warning for a destination that was edited directly.
func Desync(dest, source string) Message {
	return Message{
		Summary: "mdman: Desync detected!",
		Body: fmt.Sprintf("Warning: %s was modified directly!\nSource: %s\n%s",
			filepath.Base(dest), source, remediationHint),
		Urgency: Critical,
	}
}

// SourceDeleted composes the warning for a tracked source that disappeared.
// The destinations remain on disk but no longer have a source of truth.
func SourceDeleted(source string, dests []string) Message {
	name := filepath.Base(source)

	var body string
	if len(dests) == 1 {
		body = fmt.Sprintf("Source file %s was deleted!\n"+
			"Destination file remains at:\n%s", name, dests[0])
	} else {
		var list []string
		for _, dest := range dests {
			list = append(list, fmt.Sprintf("  - %s", dest))
		}
		body = fmt.Sprintf("Source file %s was deleted!\n"+
			"%d destination files remain at:\n%s",
			name, len(dests), strings.Join(list, "\n"))
	}

	return Message{
		Summary: "mdman: Source file deleted!",
		Body:    body,
		Urgency: Critical,
	}
}
