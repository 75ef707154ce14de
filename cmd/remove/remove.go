package remove

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mdman-dev/mdman/cmd/util"
	"github.com/mdman-dev/mdman/pkg/config"
	"github.com/mdman-dev/mdman/pkg/errors"
)

var fs = afero.NewOsFs()

// Mocked for unit testing.
var confirm = util.Confirm

type mappingStore interface {
	Load() (config.Mappings, error)
	Save(config.Mappings) error
}

// New creates a new `remove` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "remove SOURCE",
		Short: "Delete a source file and all its tracked copies",
		Long: "Delete a source file along with every destination file mirrored\n" +
			"from it, and stop tracking it. Only source files can be removed.",
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

	source, dests, ok := mappings.FindSource(path)
	if !ok {
		if _, isDest := mappings.SourceOf(path); isDest {
			return errors.NewFriendlyError(
				"%s is a destination file, not a source.\n"+
					"Use 'mdman untrack %s' to stop tracking it instead.",
				path, path)
		}
		return errors.NotTracked{Path: path}
	}

	fmt.Printf("This will delete %s and %d destination file(s):\n", source, len(dests))
	for _, dest := range dests {
		fmt.Printf("  → %s\n", dest)
	}

	confirmed, err := confirm("\nDelete all of these files?")
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Cancelled")
		return nil
	}

	for _, target := range append([]string{source}, dests...) {
		if err := fs.Remove(target); err != nil {
			// Keep going so a single missing file doesn't leave the rest
			// behind, but surface the failure.
			fmt.Printf("Failed to delete %s: %s\n", target, err)
			continue
		}
		fmt.Printf("Deleted %s\n", target)
	}

	delete(mappings, source)
	if err := store.Save(mappings); err != nil {
		return errors.WithContext(err, "save mappings")
	}

	fmt.Printf("Stopped tracking %s\n", source)
	return nil
}
