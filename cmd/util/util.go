package util

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/mdman-dev/mdman/pkg/errors"
)

// HandleFatalError prints the error and exits the process. Friendly errors
// are printed on their own, other errors keep their full context chain.
func HandleFatalError(err error) {
	log.WithError(err).Debug("Fatal error")
	fmt.Fprintln(os.Stderr, errors.GetPrintableMessage(err))
	os.Exit(1)
}

// HandlePanic recovers from panics in the calling goroutine, and logs the
// stack trace before exiting. It should be installed with `defer` at the top
// of every goroutine that doesn't otherwise recover.
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	log.WithField("stack", string(debug.Stack())).Errorf("Panicked: %v", r)
	os.Exit(1)
}
