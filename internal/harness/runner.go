package harness

import (
	"fmt"
	"io"
	"strings"

	"go.followtheprocess.codes/syntest/internal/fixture"
	"go.followtheprocess.codes/syntest/internal/syntax"
)

// AnalyzeFunc is the contract the harness consumes from the analysis
// pipeline: submit source, receive an ordered list of diagnostics.
//
// A non-nil error means the pipeline itself aborted on structurally broken
// input, which is distinct from returning diagnostics and maps to
// [ParseFailed]. The returned diagnostics are then whatever was gathered
// before the abort.
type AnalyzeFunc func(source string) ([]syntax.Diagnostic, error)

// Outcome is the final state of a single fixture run.
type Outcome int

const (
	// Passed means the produced diagnostics matched the expectations.
	Passed Outcome = iota

	// Failed means analysis succeeded but its diagnostics disagreed with
	// the fixture's golden expectations.
	Failed

	// ParseFailed means the analysis pipeline aborted, the fixture source
	// is structurally broken and nothing well-formed can be written back.
	ParseFailed

	// LoadFailed means the fixture file itself could not be read, a broken
	// fixture rather than a code regression.
	LoadFailed
)

// String returns a human readable name for the [Outcome].
func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case ParseFailed:
		return "parse failed"
	case LoadFailed:
		return "load failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// MarshalText implements [encoding.TextMarshaler] for [Outcome].
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result is the outcome of running a single fixture.
type Result struct {
	// Fixture is the parsed fixture, nil when Outcome is LoadFailed.
	Fixture *fixture.Fixture

	// Err is the underlying failure for LoadFailed and ParseFailed.
	Err error

	// Mismatch is the rendered expected/obtained report, only set when
	// Outcome is Failed.
	Mismatch string

	// Diagnostics is the full unfiltered diagnostic list produced
	// by analysis.
	Diagnostics []syntax.Diagnostic

	// Outcome is the final state of the run.
	Outcome Outcome
}

// Runner runs a single fixture through load, analysis and comparison.
type Runner struct {
	// Analyze is the analysis collaborator.
	Analyze AnalyzeFunc

	// Formatted enables color in rendered mismatch reports.
	Formatted bool
}

// Run executes one fixture: parse the fixture file, submit its source for
// analysis, compare produced diagnostics against the expectations, and on
// mismatch render both sides for human inspection.
//
// name is the stable display name for the fixture (typically its path
// relative to the batch root), path is where to read it from.
func (r Runner) Run(name, path string) Result {
	fix, err := fixture.Load(path)
	if err != nil {
		return Result{Outcome: LoadFailed, Err: err}
	}

	fix.Name = name

	diagnostics, err := r.Analyze(fix.Source)
	if err != nil {
		return Result{
			Outcome:     ParseFailed,
			Fixture:     fix,
			Diagnostics: diagnostics,
			Err:         err,
		}
	}

	if Matches(diagnostics, fix.Expectations) {
		return Result{Outcome: Passed, Fixture: fix, Diagnostics: diagnostics}
	}

	report := &strings.Builder{}
	r.renderMismatch(report, fix, diagnostics, "  ")

	return Result{
		Outcome:     Failed,
		Fixture:     fix,
		Diagnostics: diagnostics,
		Mismatch:    report.String(),
	}
}

// renderMismatch renders the expected and obtained diagnostic blocks side by
// side for a failed comparison. The output explains a failure already decided
// by [Matches], it plays no part in deciding it.
func (r Runner) renderMismatch(w io.Writer, fix *fixture.Fixture, diagnostics []syntax.Diagnostic, prefix string) {
	indent := prefix + "  "

	fmt.Fprintln(w, styled(prefix+"Expected result:", headerStyle, r.Formatted))
	RenderExpectations(w, fix.Expectations, indent, r.Formatted)

	fmt.Fprintln(w, styled(prefix+"Obtained result:", headerStyle, r.Formatted))
	RenderDiagnostics(w, diagnostics, RenderOptions{
		Prefix:    indent,
		Source:    fix.Source,
		Formatted: r.Formatted,
	})
}
