package sync

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdman-dev/mdman/cmd/util"
	"github.com/mdman-dev/mdman/pkg/config"
	filesync "github.com/mdman-dev/mdman/pkg/sync"
)

// New creates a new `sync` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Force-sync all tracked files",
		Long: "Overwrite every destination file with its source's current\n" +
			"content. Unlike the watcher, this ignores drift: it's the explicit\n" +
			"way to resolve a desync in the source's favor.",
		Run: func(_ *cobra.Command, _ []string) {
			store, err := config.NewStore()
			if err != nil {
				util.HandleFatalError(err)
			}

			if err := run(store); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
}

func run(store filesync.MappingStore) error {
	stats, err := filesync.SyncAll(store)
	if err != nil {
		return err
	}

	fmt.Printf("Synced %d file(s)\n", stats.Synced)
	if stats.Errors > 0 {
		fmt.Printf("%d file(s) could not be synced\n", stats.Errors)
	}
	return nil
}
