// ABOUTME: Package-level printf-style logger backed by logrus.
// ABOUTME: Writes to a log file under the state dir, optionally mirrored to stderr.

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

const logFileName = "audio-switcher.log"

var (
	mu      sync.Mutex
	logger  = newDiscardLogger()
	logFile *os.File
	prefix  string
	verbose bool
)

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.DebugLevel)
	return l
}

// InitLogger opens (or creates) the log file inside dir and routes all
// package-level logging to it. Calling it again replaces the previous file.
func InitLogger(dir string) (*logrus.Logger, error) {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, logFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f

	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetLevel(logrus.DebugLevel)
	logger = l
	applyOutput()

	return logger, nil
}

// SetOutput routes logging to w instead of the log file. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// SetPrefix sets a tag attached to every entry (e.g. a per-run id)
func SetPrefix(p string) {
	mu.Lock()
	defer mu.Unlock()
	prefix = p
}

// SetVerbose mirrors log output to stderr when enabled
func SetVerbose(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = enabled
	applyOutput()
}

// applyOutput must be called with mu held
func applyOutput() {
	switch {
	case logFile != nil && verbose:
		logger.SetOutput(io.MultiWriter(logFile, os.Stderr))
	case logFile != nil:
		logger.SetOutput(logFile)
	case verbose:
		logger.SetOutput(os.Stderr)
	}
}

// Close flushes and closes the log file
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	logger = newDiscardLogger()
	applyOutput()
	return err
}

func entry() *logrus.Entry {
	mu.Lock()
	defer mu.Unlock()
	if prefix == "" {
		return logrus.NewEntry(logger)
	}
	return logger.WithField("run", prefix)
}

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	entry().Debugf(format, args...)
}

// Info logs an informational message
func Info(format string, args ...interface{}) {
	entry().Infof(format, args...)
}

// Warn logs a warning
func Warn(format string, args ...interface{}) {
	entry().Warnf(format, args...)
}

// Error logs an error
func Error(format string, args ...interface{}) {
	entry().Errorf(format, args...)
}
