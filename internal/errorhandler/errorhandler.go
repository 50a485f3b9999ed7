package errorhandler

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/777genius/audio-switcher/internal/logging"
)

type handler struct {
	logToConsole    bool
	exitOnCritical  bool
	recoveryEnabled bool
	console         io.Writer
	exit            func(int)
}

var (
	mu     sync.Mutex
	global = &handler{
		logToConsole:    true,
		recoveryEnabled: true,
		console:         os.Stderr,
		exit:            os.Exit,
	}
)

// Init configures the global handler
func Init(logToConsole, exitOnCritical, recoveryEnabled bool) {
	mu.Lock()
	defer mu.Unlock()
	global.logToConsole = logToConsole
	global.exitOnCritical = exitOnCritical
	global.recoveryEnabled = recoveryEnabled
}

func current() handler {
	mu.Lock()
	defer mu.Unlock()
	return *global
}

// HandleError logs a non-fatal error with context
func HandleError(err error, context string) {
	if err == nil {
		return
	}
	h := current()
	logging.Error("%s: %v", context, err)
	if h.logToConsole {
		fmt.Fprintf(h.console, "Warning: %s: %v\n", context, err)
	}
}

// HandleCriticalError logs an error the command cannot recover from.
// Exits with status 1 if the handler was initialized with exitOnCritical.
func HandleCriticalError(err error, context string) {
	if err == nil {
		return
	}
	h := current()
	logging.Error("CRITICAL %s: %v", context, err)
	if h.logToConsole {
		fmt.Fprintf(h.console, "Error: %s: %v\n", context, err)
	}
	if h.exitOnCritical {
		h.exit(1)
	}
}

// HandlePanic recovers a panic in the calling goroutine and logs it.
// Must be invoked via defer.
func HandlePanic() {
	h := current()
	if !h.recoveryEnabled {
		return
	}
	if r := recover(); r != nil {
		logging.Error("PANIC: %v\n%s", r, debug.Stack())
		if h.logToConsole {
			fmt.Fprintf(h.console, "Error: unexpected panic: %v\n", r)
		}
		h.exit(1)
	}
}
