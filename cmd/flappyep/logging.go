package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappyep/internal/config"
)

// newLogger builds the process logger at the --log-level threshold.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          appName,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger opens path for appending and returns a logger writing to it.
// When the file cannot be opened logs are discarded.
func fileLogger(path string) (*log.Logger, func()) {
	if path == "" {
		path = config.DefaultPath(appName + ".log")
	}
	path = config.ExpandPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newLogger(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { _ = f.Close() }
}
