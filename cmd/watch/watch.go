package watch

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mdman-dev/mdman/cmd/util"
	"github.com/mdman-dev/mdman/pkg/config"
	"github.com/mdman-dev/mdman/pkg/errors"
	"github.com/mdman-dev/mdman/pkg/fswatch"
	"github.com/mdman-dev/mdman/pkg/notify"
	"github.com/mdman-dev/mdman/pkg/sync"
)

// New creates a new `watch` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch tracked files and propagate source edits",
		Long: "Watch every tracked file for changes. Edits to a source file are\n" +
			"copied to its destinations; direct edits to a destination trigger a\n" +
			"desync warning. Runs until interrupted. This is the command the\n" +
			"systemd service runs.",
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
}

func run() error {
	settings, err := config.ParseSettings()
	if err != nil {
		return errors.WithContext(err, "read settings")
	}

	var notifier notify.Notifier
	if settings.DisableNotifications {
		notifier = notify.NewLogOnly()
	} else {
		notifier = notify.NewDesktop()
	}

	store, err := config.NewStore()
	if err != nil {
		return err
	}

	mappings, err := store.Load()
	if err != nil {
		return errors.WithContext(err, "load mappings")
	}

	reconciler, err := sync.NewReconciler(store, notifier)
	if err != nil {
		return errors.WithContext(err, "create reconciler")
	}

	watcher, err := fswatch.New()
	if err != nil {
		return errors.WithContext(err, "start watcher")
	}
	defer watcher.Close()

	watched, err := watcher.Rewatch(mappings)
	if err != nil {
		return errors.WithContext(err, "register watches")
	}

	fmt.Printf("Watching %d files for changes...\n", watched)
	log.WithField("files", watched).Info("Watcher started")

	reconciler.Run(watcher)
	return nil
}
