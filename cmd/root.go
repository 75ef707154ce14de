package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	copyCmd "github.com/mdman-dev/mdman/cmd/copy"
	diffCmd "github.com/mdman-dev/mdman/cmd/diff"
	installCmd "github.com/mdman-dev/mdman/cmd/install"
	listCmd "github.com/mdman-dev/mdman/cmd/list"
	removeCmd "github.com/mdman-dev/mdman/cmd/remove"
	syncCmd "github.com/mdman-dev/mdman/cmd/sync"
	untrackCmd "github.com/mdman-dev/mdman/cmd/untrack"
	"github.com/mdman-dev/mdman/cmd/util"
	versionCmd "github.com/mdman-dev/mdman/cmd/version"
	watchCmd "github.com/mdman-dev/mdman/cmd/watch"
)

// verboseLogKey is the environment variable used to enable verbose logging.
// When it's set to `true`, Debug events are logged, rather than just Info and
// above.
const verboseLogKey = "MDMAN_LOG_VERBOSE"

// Execute runs the main CLI process.
func Execute() {
	if os.Getenv(verboseLogKey) == "true" {
		log.SetLevel(log.DebugLevel)
	}

	rootCmd := &cobra.Command{
		Use:          "mdman",
		Short:        "Keep copies of files synchronized with their source",
		SilenceUsage: true,

		// The call to rootCmd.Execute prints the error, so we silence errors
		// here to avoid double printing.
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		copyCmd.New(),
		diffCmd.New(),
		installCmd.New(),
		listCmd.New(),
		removeCmd.New(),
		syncCmd.New(),
		untrackCmd.New(),
		versionCmd.New(),
		watchCmd.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		util.HandleFatalError(err)
	}
}
