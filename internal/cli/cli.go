// Package cli holds the command implementations behind the binaries in cmd/.
// Each command takes its arguments and output streams and returns the process
// exit status.
package cli

import (
	"io"
	"log"

	"github.com/kpauljoseph/pagesplit/internal/config"
	"github.com/kpauljoseph/pagesplit/pkg/logger"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newLogger(w io.Writer, tool string, verbose, debug bool) *logger.Logger {
	level := logger.LevelInfo
	if debug {
		level = logger.LevelTrace
	}

	l := logger.New(
		logger.WithOutput(w),
		logger.WithPrefix("["+tool+"] "),
		logger.WithFlags(log.LstdFlags),
		logger.WithLevel(level),
	)
	if verbose {
		l.SetVerbose(true)
	}
	return l
}
