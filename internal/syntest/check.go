package syntest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.followtheprocess.codes/msg"
	"go.followtheprocess.codes/syntest/internal/syntax"
	"go.followtheprocess.codes/syntest/internal/syntax/analyzer"
	"golang.org/x/sync/errgroup"
)

// CheckOptions are the options passed to the check subcommand.
type CheckOptions struct {
	// Debug enables debug logging.
	Debug bool
}

// Check implements the check subcommand: validate that contract source files
// are free of errors.
//
// Unlike the fixture harness, check reads bare contract source, not fixture
// files, and warnings do not make a file invalid.
func (s Syntest) Check(ctx context.Context, path string, options CheckOptions) error {
	logger := s.logger.WithPrefix("check").With("path", path)
	logger.Debug("Checking path")

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("could not get path info: %w", err)
	}

	var paths []string

	if info.IsDir() {
		logger.Debug("Path is a directory")

		err = filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if filepath.Ext(path) == ".ct" {
				paths = append(paths, path)
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("could not walk %s: %w", path, err)
		}
	} else {
		logger.Debug("Path is a file")

		paths = []string{path}
	}

	logger.Debug("Checking contract files given by path", "number", len(paths))

	group := errgroup.Group{}

	for _, path := range paths {
		group.Go(func() error {
			return s.checkFile(path)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	for _, path := range paths {
		msg.Fsuccess(s.stdout, "%s is valid", path)
	}

	return nil
}

// checkFile runs the analysis pipeline over a single contract file.
func (s Syntest) checkFile(path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read file: %w", err)
	}

	diagnostics, err := analyzer.Analyze(string(contents))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	var errs []string

	for _, diag := range diagnostics {
		if diag.Type == syntax.Warning {
			continue
		}

		errs = append(errs, diag.String())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s is invalid:\n  %s", path, strings.Join(errs, "\n  "))
	}

	return nil
}
