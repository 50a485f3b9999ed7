// ABOUTME: Entry point for audio-switcher: cycles or selects the default audio output.
// ABOUTME: Intended to be bound to a desktop hotkey.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/777genius/audio-switcher/internal/errorhandler"
	"github.com/777genius/audio-switcher/internal/logging"
)

const version = "0.3.0"

func main() {
	// logToConsole=true, exitOnCritical=false (main decides), recoveryEnabled=true
	errorhandler.Init(true, false, true)

	if err := execute(newRootCmd(defaultDeps(), os.Stdout)); err != nil {
		os.Exit(1)
	}
}

// execute runs cmd and reports a failure while the log file is still open
func execute(cmd *cobra.Command) error {
	defer func() { _ = logging.Close() }()
	defer errorhandler.HandlePanic()

	err := cmd.Execute()
	if err != nil {
		errorhandler.HandleCriticalError(err, "audio-switcher")
	}
	return err
}
