// Package syntest implements the functionality of the program, the CLI in
// package cmd is simply the entrypoint to exported functions and methods in
// this package.
package syntest

import (
	"io"
	"time"

	"charm.land/log/v2"
)

// Syntest represents the syntest program.
type Syntest struct {
	stdin  io.Reader   // User input is read from here
	stdout io.Writer   // Normal program output is written here
	stderr io.Writer   // Logs and errors are written here
	logger *log.Logger // The logger for the application
}

// New returns a new [Syntest].
func New(debug bool, stdin io.Reader, stdout, stderr io.Writer) Syntest {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(stderr, log.Options{
		TimeFormat:      time.RFC3339Nano,
		Level:           level,
		Prefix:          "syntest",
		ReportTimestamp: true,
	})

	logger.SetStyles(logStyles())

	return Syntest{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
}
