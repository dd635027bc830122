package harness

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.followtheprocess.codes/msg"
	"go.followtheprocess.codes/syntest/internal/fixture"
)

// Stats summarises a batch run.
type Stats struct {
	// Success is the number of fixtures that passed.
	Success int

	// Run is the number of fixtures that reached a final outcome.
	Run int
}

// Ok reports whether every fixture that ran passed.
func (s Stats) Ok() bool {
	return s.Success == s.Run
}

// Record is the final outcome of one fixture in a batch run, in the order
// the fixtures were visited.
type Record struct {
	Name    string
	Outcome Outcome
}

// Driver walks a fixture tree, runs every fixture it finds, and triages
// failures interactively.
type Driver struct {
	// Input yields triage decisions for failing fixtures.
	Input InputSource

	// Editor opens fixtures for interactive editing.
	Editor EditorLauncher

	// Stdout is where progress and failure reports are written.
	Stdout io.Writer

	// Runner runs individual fixtures.
	Runner Runner

	// Formatted enables color in progress output.
	Formatted bool

	records []Record
}

// Records returns the per-fixture outcomes of the last [Driver.RunAll], in
// visit order.
func (d *Driver) Records() []Record {
	return d.records
}

// RunAll walks the fixture tree rooted at root breadth first, running every
// file it finds as a fixture.
//
// Each failing fixture stops the walk for a triage decision: move on, open
// the fixture in an editor and rerun it, rewrite its expectations from the
// observed diagnostics and rerun it, or quit. Quitting returns the
// statistics gathered so far with a nil error, aborting is a user decision,
// not a failure of the driver.
func (d *Driver) RunAll(root string) (Stats, error) {
	var stats Stats

	d.records = nil

	// Work queue of paths relative to root. Directories are expanded in
	// place, files run as fixtures. A fixture being rerun stays at the
	// front of the queue.
	queue := []string{"."}

	for len(queue) > 0 {
		current := queue[0]
		full := filepath.Join(root, current)

		name := current
		if current == "." {
			name = root
		}

		info, err := os.Stat(full)
		if err != nil && current == "." {
			// Only a broken root is fatal, anything discovered during the
			// walk that has since vanished is an I/O failure for that one
			// fixture and the batch moves on
			return stats, fmt.Errorf("cannot stat %s: %w", full, err)
		}

		if err == nil && info.IsDir() {
			queue = queue[1:]

			entries, err := os.ReadDir(full)
			if err != nil {
				return stats, fmt.Errorf("cannot read directory %s: %w", full, err)
			}

			for _, entry := range entries {
				queue = append(queue, filepath.Join(current, entry.Name()))
			}

			continue
		}

		stats.Run++

		result := d.Runner.Run(name, full)

		d.show(name, result)

		switch result.Outcome {
		case Passed:
			stats.Success++

			d.records = append(d.records, Record{Name: name, Outcome: result.Outcome})
			queue = queue[1:]

			continue
		case LoadFailed:
			d.records = append(d.records, Record{Name: name, Outcome: result.Outcome})
			queue = queue[1:]

			continue
		}

		// Failed or ParseFailed, triage. Updating expectations only makes
		// sense when the source itself parsed cleanly.
		action, err := d.Input.Choose(name, result.Outcome == Failed)
		if err != nil {
			return stats, err
		}

		switch action {
		case ActionQuit:
			d.records = append(d.records, Record{Name: name, Outcome: result.Outcome})
			return stats, nil
		case ActionSkip:
			d.records = append(d.records, Record{Name: name, Outcome: result.Outcome})
			queue = queue[1:]
		case ActionEdit:
			if err := d.Editor.Open(full); err != nil {
				msg.Fwarn(d.Stdout, "could not open editor: %v", err)
			}

			fmt.Fprintln(d.Stdout, "Re-running fixture...")

			// The rerun replaces this attempt
			stats.Run--
		case ActionUpdate:
			if err := d.update(full, result); err != nil {
				msg.Fwarn(d.Stdout, "could not update fixture: %v", err)
			}

			fmt.Fprintln(d.Stdout, "Re-running fixture...")

			stats.Run--
		}
	}

	return stats, nil
}

// show prints the progress line and, on failure, the full failure report
// for a single fixture result.
func (d *Driver) show(name string, result Result) {
	header := styled(name+": ", nameStyle, d.Formatted)

	switch result.Outcome {
	case Passed:
		fmt.Fprintf(d.Stdout, "%s%s\n", header, styled("OK", successStyle, d.Formatted))
		return
	case LoadFailed:
		fmt.Fprintf(d.Stdout, "%s%s\n", header, styled("FAIL", errorStyle, d.Formatted))
		fmt.Fprintln(d.Stdout, styled("  "+result.Err.Error(), errorStyle, d.Formatted))

		return
	}

	fmt.Fprintf(d.Stdout, "%s%s\n", header, styled("FAIL", errorStyle, d.Formatted))

	fmt.Fprintln(d.Stdout, styled("  Contract:", headerStyle, d.Formatted))

	for line := range strings.Lines(result.Fixture.Source) {
		fmt.Fprintf(d.Stdout, "    %s", line)
	}

	fmt.Fprintln(d.Stdout)

	switch result.Outcome {
	case ParseFailed:
		fmt.Fprintf(d.Stdout, "  %s\n", styled("Parsing failed:", fatalStyle, d.Formatted))
		RenderDiagnostics(d.Stdout, result.Diagnostics, RenderOptions{
			Prefix:      "    ",
			Source:      result.Fixture.Source,
			Formatted:   d.Formatted,
			LineNumbers: true,
		})
		fmt.Fprintln(d.Stdout)
	case Failed:
		fmt.Fprint(d.Stdout, result.Mismatch)
		fmt.Fprintln(d.Stdout)
	}
}

// update rewrites the fixture file at path with its expectation block
// regenerated from the diagnostics the run actually observed.
//
// The regenerated block is plain text: no colors, no line numbers and no
// warning filtering, exactly what a future run must reproduce to pass.
func (d *Driver) update(path string, result Result) error {
	expectations := &strings.Builder{}
	if len(result.Diagnostics) > 0 {
		RenderDiagnostics(expectations, result.Diagnostics, RenderOptions{Prefix: "// "})
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot rewrite fixture %s: %w", path, err)
	}
	defer file.Close()

	if err := fixture.Write(file, result.Fixture.Source, expectations.String()); err != nil {
		return fmt.Errorf("cannot rewrite fixture %s: %w", path, err)
	}

	return nil
}
