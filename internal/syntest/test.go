package syntest

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.followtheprocess.codes/hue"
	"go.followtheprocess.codes/syntest/internal/harness"
	"go.followtheprocess.codes/syntest/internal/report"
	"go.followtheprocess.codes/syntest/internal/syntax/analyzer"
)

// TestOptions are the options passed to the test subcommand.
type TestOptions struct {
	// Editor is the editor command to open failing fixtures with, falls
	// back to $EDITOR if empty.
	Editor string

	// Report is the path to write a machine readable run report to, empty
	// means no report.
	Report string

	// ReportFormat is the format of the report e.g. json, toml, yaml.
	ReportFormat string

	// NoColor disables color output.
	NoColor bool

	// Debug enables debug logging.
	Debug bool
}

// Validate reports whether the TestOptions is valid, returning a non-nil
// error if it's not.
func (t TestOptions) Validate() error {
	if t.Report == "" {
		return nil
	}

	if _, err := report.For(t.ReportFormat); err != nil {
		return err
	}

	return nil
}

// Test implements the test subcommand: run every fixture under path,
// triaging failures through input.
func (s Syntest) Test(ctx context.Context, path string, input harness.InputSource, options TestOptions) error {
	logger := s.logger.WithPrefix("test").With("path", path)
	logger.Debug("Running fixtures")

	if err := options.Validate(); err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("test path not found: %w", err)
	}

	editor := options.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}

	formatted := !options.NoColor

	driver := &harness.Driver{
		Input: input,
		Editor: harness.ExecEditor{
			Stdin:   s.stdin,
			Stdout:  s.stdout,
			Stderr:  s.stderr,
			Command: editor,
		},
		Stdout: s.stdout,
		Runner: harness.Runner{
			Analyze:   analyzer.Analyze,
			Formatted: formatted,
		},
		Formatted: formatted,
	}

	start := time.Now()

	stats, err := driver.RunAll(path)
	if err != nil {
		return err
	}

	logger.Debug("Run complete", "fixtures", stats.Run, "took", time.Since(start))

	counts := fmt.Sprintf("%d/%d", stats.Success, stats.Run)
	if formatted {
		style := hue.Green | hue.Bold
		if !stats.Ok() {
			style = hue.Red | hue.Bold
		}

		counts = style.Text(counts)
	}

	fmt.Fprintf(s.stdout, "Summary: %s tests successful.\n", counts)

	if options.Report != "" {
		if err := s.writeReport(path, stats, driver.Records(), options); err != nil {
			return err
		}
	}

	if !stats.Ok() {
		return fmt.Errorf("%d of %d fixtures failed", stats.Run-stats.Success, stats.Run)
	}

	return nil
}

// writeReport exports the run's results to the report file named in options.
func (s Syntest) writeReport(root string, stats harness.Stats, records []harness.Record, options TestOptions) error {
	exporter, err := report.For(options.ReportFormat)
	if err != nil {
		return err
	}

	summary := report.Summary{
		Root:    root,
		Run:     stats.Run,
		Passed:  stats.Success,
		Success: stats.Ok(),
	}

	for _, record := range records {
		summary.Fixtures = append(summary.Fixtures, report.Fixture{
			Name:    record.Name,
			Outcome: record.Outcome.String(),
		})
	}

	file, err := os.Create(options.Report)
	if err != nil {
		return fmt.Errorf("could not create report file: %w", err)
	}
	defer file.Close()

	if err := exporter.Export(file, summary); err != nil {
		return err
	}

	return nil
}
