// Package harness implements the fixture test harness: matching produced
// diagnostics against fixture expectations, rendering them for humans,
// running a single fixture end to end, and driving an interactive batch
// run over a fixture tree.
package harness

import (
	"strings"

	"go.followtheprocess.codes/syntest/internal/fixture"
	"go.followtheprocess.codes/syntest/internal/syntax"
)

// Matches reports whether an ordered list of produced diagnostics satisfies
// an ordered list of fixture expectations.
//
// The comparison is strict: lengths must be equal, and each diagnostic must
// match its positional expectation on both type name and rendered message.
// Order is deliberately significant, diagnostic order is a property of the
// pipeline's determinism and the fixture protocol locks it in. Warnings are
// never filtered here, only rendering filters them.
func Matches(diagnostics []syntax.Diagnostic, expectations []fixture.Expectation) bool {
	if len(diagnostics) != len(expectations) {
		return false
	}

	for i, diag := range diagnostics {
		if diag.Type.String() != expectations[i].Type {
			return false
		}

		if Message(diag) != expectations[i].Message {
			return false
		}
	}

	return true
}

// Message returns the rendered message of a diagnostic as it appears in
// fixture expectation lines: the comment with internal newlines escaped to
// a literal '\n', or "NONE" if the diagnostic has no comment.
func Message(diag syntax.Diagnostic) string {
	if diag.Comment == "" {
		return "NONE"
	}

	return strings.ReplaceAll(diag.Comment, "\n", `\n`)
}
