package notify

import (
	"github.com/gen2brain/beeep"
	log "github.com/sirupsen/logrus"
)

// Mocked for unit testing.
var (
	beeepNotify = beeep.Notify
	beeepAlert  = beeep.Alert
)

// Desktop delivers notifications as desktop popups, and mirrors every
// message to the log so that headless sessions still get a record.
type Desktop struct{}

// NewDesktop creates a desktop notifier.
func NewDesktop() Desktop {
	return Desktop{}
}

// Notify shows the message as a popup. Critical messages use the alert
// variant, which most notification daemons keep on screen until dismissed.
func (Desktop) Notify(msg Message) error {
	logMessage(msg)

	if msg.Urgency == Critical {
		return beeepAlert(msg.Summary, msg.Body, "")
	}
	return beeepNotify(msg.Summary, msg.Body, "")
}

// LogOnly delivers notifications to the log alone. It's used when desktop
// notifications are disabled in the settings, and as the fallback on systems
// without a notification daemon.
type LogOnly struct{}

// NewLogOnly creates a log-only notifier.
func NewLogOnly() LogOnly {
	return LogOnly{}
}

// Notify writes the message to the log.
func (LogOnly) Notify(msg Message) error {
	logMessage(msg)
	return nil
}

func logMessage(msg Message) {
	entry := log.WithField("summary", msg.Summary)
	if msg.Urgency == Critical {
		entry.Warn(msg.Body)
	} else {
		entry.Info(msg.Body)
	}
}
