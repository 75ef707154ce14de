package install

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdman-dev/mdman/cmd/util"
	"github.com/mdman-dev/mdman/pkg/install"
)

// New creates a new `install` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install mdman as a systemd user service",
		Long: "Install the mdman binary and a systemd user unit that runs\n" +
			"`mdman watch` in the background, then enable and start it.",
		Run: func(_ *cobra.Command, _ []string) {
			updated, err := install.Install()
			if err != nil {
				util.HandleFatalError(err)
			}

			if updated {
				fmt.Println("Updated the mdman service")
			} else {
				fmt.Println("Installed and started the mdman service")
			}
			fmt.Println("Check its status with: systemctl --user status mdman.service")
		},
	}
}
