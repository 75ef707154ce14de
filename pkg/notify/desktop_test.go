package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDesktopRoutesByUrgency(t *testing.T) {
	var notifies, alerts int
	beeepNotify = func(title, message string, icon any) error {
		notifies++
		return nil
	}
	beeepAlert = func(title, message string, icon any) error {
		alerts++
		return nil
	}

	desktop := NewDesktop()
	assert.NoError(t, desktop.Notify(Message{Summary: "routine", Urgency: Normal}))
	assert.Equal(t, 1, notifies)
	assert.Equal(t, 0, alerts)

	assert.NoError(t, desktop.Notify(Message{Summary: "risky", Urgency: Critical}))
	assert.Equal(t, 1, notifies)
	assert.Equal(t, 1, alerts)
}
