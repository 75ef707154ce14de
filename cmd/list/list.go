package list

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mdman-dev/mdman/cmd/util"
	"github.com/mdman-dev/mdman/pkg/config"
	"github.com/mdman-dev/mdman/pkg/errors"
)

// New creates a new `list` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tracked files",
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
}

func run() error {
	store, err := config.NewStore()
	if err != nil {
		return err
	}

	mappings, err := store.Load()
	if err != nil {
		return errors.WithContext(err, "load mappings")
	}

	fmt.Print(format(mappings))
	return nil
}

func format(mappings config.Mappings) string {
	if len(mappings) == 0 {
		return "No files are currently being tracked\n"
	}

	var b strings.Builder
	b.WriteString("Tracked files:\n\n")
	for _, source := range mappings.Sources() {
		fmt.Fprintf(&b, "Source: %s\n", source)
		for _, dest := range mappings[source] {
			fmt.Fprintf(&b, "  → %s\n", dest)
		}
		b.WriteString("\n")
	}
	return b.String()
}
