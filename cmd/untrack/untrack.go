package untrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdman-dev/mdman/cmd/util"
	"github.com/mdman-dev/mdman/pkg/config"
	"github.com/mdman-dev/mdman/pkg/errors"
)

// mappingStore is the part of the store this command uses.
type mappingStore interface {
	Load() (config.Mappings, error)
	Save(config.Mappings) error
}

// Mocked for unit testing.
var confirm = util.Confirm

// New creates a new `untrack` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "untrack FILE",
		Short: "Stop tracking a file",
		Long: "Stop tracking a file. Untracking a source stops tracking all of\n" +
			"its destinations; untracking a destination only removes that one.\n" +
			"No files are deleted.",
		Args: cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			store, err := config.NewStore()
			if err != nil {
				util.HandleFatalError(err)
			}

			if err := run(store, args[0]); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
}

func run(store mappingStore, path string) error {
	mappings, err := store.Load()
	if err != nil {
		return errors.WithContext(err, "load mappings")
	}

	if source, dests, ok := mappings.FindSource(path); ok {
		fmt.Printf("%s is a source file for %d destination(s):\n", path, len(dests))
		for _, dest := range dests {
			fmt.Printf("  → %s\n", dest)
		}

		prompt := fmt.Sprintf("\nRemove tracking for all %d destination files?", len(dests))
		confirmed, err := confirm(prompt)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}

		delete(mappings, source)
		if err := store.Save(mappings); err != nil {
			return errors.WithContext(err, "save mappings")
		}
		fmt.Printf("Stopped tracking %s and all its destinations\n", path)
		return nil
	}

	if source, ok := mappings.SourceOf(path); ok {
		fmt.Printf("%s is a destination file tracked from source:\n", path)
		fmt.Printf("  ← %s\n", source)

		confirmed, err := confirm("\nStop tracking this destination?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}

		mappings.RemoveDestination(path)
		if err := store.Save(mappings); err != nil {
			return errors.WithContext(err, "save mappings")
		}
		fmt.Printf("Stopped tracking %s\n", path)
		return nil
	}

	return errors.NotTracked{Path: path}
}
