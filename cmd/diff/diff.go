package diff

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdman-dev/mdman/cmd/util"
	"github.com/mdman-dev/mdman/pkg/config"
	filesync "github.com/mdman-dev/mdman/pkg/sync"
)

// New creates a new `diff` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "diff [FILE]",
		Short: "Show differences between tracked files",
		Long: "Compare every tracked source against its destinations and report\n" +
			"the ones that differ. With a FILE argument, only mappings involving\n" +
			"that file are checked.",
		Args: cobra.MaximumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			store, err := config.NewStore()
			if err != nil {
				util.HandleFatalError(err)
			}

			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}

			if err := run(store, filter); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
}

func run(store filesync.MappingStore, filter string) error {
	reports, err := filesync.Diff(store, filter)
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		if filter == "" {
			fmt.Println("All tracked files are in sync")
		} else {
			fmt.Printf("No differences found for %s\n", filter)
		}
		return nil
	}

	for _, report := range reports {
		fmt.Println(report)
	}
	return nil
}
