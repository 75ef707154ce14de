package install

import (
	"os"
	"os/exec"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/mdman-dev/mdman/pkg/errors"
)

// Mocked for unit testing.
var (
	fs         = afero.NewOsFs()
	executable = os.Executable
	runCommand = func(name string, args ...string) error {
		cmd := exec.Command(name, args...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
)

const (
	// UnitPath is where the systemd user unit is written.
	UnitPath = "~/.config/systemd/user/mdman.service"

	// BinaryPath is where the mdman binary is installed so that the unit's
	// ExecStart doesn't depend on where the user built it.
	BinaryPath = "/usr/local/bin/mdman"
)

const unitContents = `[Unit]
Description=mdman - file synchronization manager
After=graphical-session.target

[Service]
Type=simple
ExecStart=` + BinaryPath + ` watch
Restart=on-failure
RestartSec=10
Environment="DISPLAY=:0"

[Install]
WantedBy=default.target
`

// Install writes the systemd user unit, installs the binary to BinaryPath,
// and enables and starts the service. It reports whether an existing unit
// was updated rather than freshly installed.
func Install() (updated bool, err error) {
	unitPath, err := homedir.Expand(UnitPath)
	if err != nil {
		return false, errors.WithContext(err, "expand unit path")
	}

	updated, err = afero.Exists(fs, unitPath)
	if err != nil {
		return false, errors.WithContext(err, "check unit")
	}

	if err := fs.MkdirAll(filepath.Dir(unitPath), 0755); err != nil {
		return updated, errors.WithContext(err, "create systemd user directory")
	}
	if err := afero.WriteFile(fs, unitPath, []byte(unitContents), 0644); err != nil {
		return updated, errors.WithContext(err, "write unit")
	}

	if err := installBinary(); err != nil {
		return updated, errors.WithContext(err, "install binary")
	}

	if updated {
		// Stop the old instance so the restart below picks up the new binary.
		if err := runCommand("systemctl", "--user", "stop", "mdman.service"); err != nil {
			log.WithError(err).Warn("Failed to stop existing service")
		}
	}

	steps := [][]string{
		{"systemctl", "--user", "daemon-reload"},
		{"systemctl", "--user", "enable", "mdman.service"},
		{"systemctl", "--user", "start", "mdman.service"},
	}
	for _, step := range steps {
		if err := runCommand(step[0], step[1:]...); err != nil {
			return updated, errors.WithContext(err, step[0]+" "+step[1])
		}
	}
	return updated, nil
}

func installBinary() error {
	exePath, err := executable()
	if err != nil {
		return errors.WithContext(err, "get executable path")
	}
	if exePath == BinaryPath {
		return nil
	}

	log.Infof("Installing mdman to %s (requires sudo)...", BinaryPath)
	if err := runCommand("sudo", "cp", exePath, BinaryPath); err != nil {
		return errors.WithContext(err, "copy executable")
	}
	if err := runCommand("sudo", "chmod", "+x", BinaryPath); err != nil {
		return errors.WithContext(err, "make executable")
	}
	return nil
}
