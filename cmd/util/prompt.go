package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mdman-dev/mdman/pkg/errors"
)

// Mocked for unit testing.
var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
)

// Confirm prints the prompt followed by " [y/N] " and waits for the user to
// answer. Only an explicit "y" or "yes" (any case) counts as a yes.
func Confirm(prompt string) (bool, error) {
	fmt.Fprintf(stdout, "%s [y/N] ", prompt)

	response, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.WithContext(err, "read response")
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
