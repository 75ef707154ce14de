package notify

import (
	"time"
)

// Urgency controls how insistently a notification is presented.
type Urgency int

const (
	// Normal notifications are routine and auto-dismiss.
	Normal Urgency = iota

	// Critical notifications flag data-risk events (desync, source deletion)
	// and persist until the user dismisses them.
	Critical
)

// Message is a fully composed notification. Composition is separated from
// delivery so that the watcher's decisions about what to say can be tested
// without a desktop session.
type Message struct {
	Summary string
	Body    string
	Urgency Urgency

	// AutoDismiss is how long the notification stays on screen.
	// Zero means it persists until dismissed.
	AutoDismiss time.Duration
}

// Notifier delivers composed messages to the user.
type Notifier interface {
	Notify(msg Message) error
}
