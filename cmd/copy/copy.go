package copy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mdman-dev/mdman/cmd/util"
	"github.com/mdman-dev/mdman/pkg/config"
	"github.com/mdman-dev/mdman/pkg/errors"
)

// Mocked out for unit testing.
var fs = afero.NewOsFs()

type mappingStore interface {
	Load() (config.Mappings, error)
	Save(config.Mappings) error
}

// New creates a new `copy` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "copy SOURCE DESTINATION",
		Short: "Copy a source file to a destination and track it for synchronization",
		Args:  cobra.ExactArgs(2),
		Run: func(_ *cobra.Command, args []string) {
			store, err := config.NewStore()
			if err != nil {
				util.HandleFatalError(err)
			}

			if err := run(store, args[0], args[1]); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
}

func run(store mappingStore, source, destination string) error {
	info, err := fs.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewFriendlyError("Source file %s does not exist", source)
		}
		return errors.WithContext(err, "stat source")
	}
	if info.IsDir() {
		return errors.NewFriendlyError("Source %s is not a file", source)
	}

	mappings, err := store.Load()
	if err != nil {
		return errors.WithContext(err, "load mappings")
	}

	canonicalSource, err := config.CanonicalPath(source)
	if err != nil {
		return errors.WithContext(err, "canonicalize source")
	}
	if role, ok := mappings.RoleOf(canonicalSource); ok {
		return errors.AlreadyTracked{Path: source, Role: string(role)}
	}

	destPath, err := config.ResolveDestination(canonicalSource, destination)
	if err != nil {
		return err
	}
	if role, ok := mappings.RoleOf(destPath); ok {
		return errors.AlreadyTracked{Path: destPath, Role: string(role)}
	}

	if err := copyFile(canonicalSource, destPath); err != nil {
		return errors.WithContext(err, "copy file")
	}

	if err := mappings.Add(canonicalSource, destination); err != nil {
		return errors.WithContext(err, "add mapping")
	}
	if err := store.Save(mappings); err != nil {
		return errors.WithContext(err, "save mappings")
	}

	fmt.Printf("Copied %s to %s\n", source, destPath)
	fmt.Println("File is now being tracked for synchronization")
	return nil
}

func copyFile(source, dest string) error {
	content, err := afero.ReadFile(fs, source)
	if err != nil {
		return errors.WithContext(err, "read source")
	}

	if err := fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.WithContext(err, "create destination directory")
	}
	return afero.WriteFile(fs, dest, content, 0644)
}
