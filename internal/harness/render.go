package harness

import (
	"fmt"
	"io"
	"strings"

	"go.followtheprocess.codes/hue"
	"go.followtheprocess.codes/syntest/internal/fixture"
	"go.followtheprocess.codes/syntest/internal/syntax"
)

// Styles.
const (
	// headerStyle is the style used for section headers like "Expected result:".
	headerStyle = hue.Cyan | hue.Bold

	// successStyle is the style used for the "Success" line and passing fixtures.
	successStyle = hue.Green | hue.Bold

	// errorStyle is the style used for error diagnostics and failing fixtures.
	errorStyle = hue.Red | hue.Bold

	// warningStyle is the style used for warning diagnostics.
	warningStyle = hue.Yellow | hue.Bold

	// fatalStyle is the style used for fatal parse failures.
	fatalStyle = hue.Red | hue.Reverse

	// nameStyle is the style used for fixture names.
	nameStyle = hue.Bold
)

// styled returns s styled if formatted is true, plain otherwise.
//
// Formatting is an explicit capability threaded through from configuration,
// never ambient state, so output degrades cleanly to plain text.
func styled(s string, style hue.Style, formatted bool) string {
	if !formatted {
		return s
	}

	return style.Text(s)
}

// RenderOptions control how a diagnostic list is rendered.
type RenderOptions struct {
	// Prefix is prepended to every rendered line.
	Prefix string

	// Source is the original fixture source (without the analysis preamble),
	// required when LineNumbers is set.
	Source string

	// Formatted enables color/style markup.
	Formatted bool

	// LineNumbers renders a "(<line>): " marker resolved from each
	// diagnostic's offset, where the offset maps into Source.
	LineNumbers bool

	// IgnoreWarnings omits diagnostics whose type is exactly Warning.
	// This affects rendering only, matching always sees the full list.
	IgnoreWarnings bool
}

// RenderExpectations renders a fixture's expectation list to w, one line per
// expectation, or a single "Success" line if there are none.
func RenderExpectations(w io.Writer, expectations []fixture.Expectation, prefix string, formatted bool) {
	if len(expectations) == 0 {
		fmt.Fprintln(w, styled(prefix+"Success", successStyle, formatted))
		return
	}

	for _, expectation := range expectations {
		style := errorStyle
		if expectation.Type == "Warning" {
			style = warningStyle
		}

		fmt.Fprintf(w, "%s%s\n", styled(prefix+expectation.Type+": ", style, formatted), expectation.Message)
	}
}

// RenderDiagnostics renders a diagnostic list to w, one line per diagnostic
// in the shape "<prefix>(<line>): <Type>: <message>", or a single "Success"
// line if nothing remains to render.
func RenderDiagnostics(w io.Writer, diagnostics []syntax.Diagnostic, opts RenderOptions) {
	remaining := diagnostics
	if opts.IgnoreWarnings {
		remaining = make([]syntax.Diagnostic, 0, len(diagnostics))
		for _, diag := range diagnostics {
			if diag.Type != syntax.Warning {
				remaining = append(remaining, diag)
			}
		}
	}

	if len(remaining) == 0 {
		fmt.Fprintln(w, styled(opts.Prefix+"Success", successStyle, opts.Formatted))
		return
	}

	for _, diag := range remaining {
		head := opts.Prefix

		if opts.LineNumbers {
			if line, ok := lineFor(opts.Source, diag.Start); ok {
				head += fmt.Sprintf("(%d): ", line)
			}
		}

		head += diag.Type.String() + ": "

		style := errorStyle
		if diag.Type == syntax.Warning {
			style = warningStyle
		}

		fmt.Fprintf(w, "%s%s\n", styled(head, style, opts.Formatted), Message(diag))
	}
}

// lineFor maps a raw diagnostic offset back to a 1-based line number in the
// original fixture source.
//
// Analysis sees the source with [syntax.Preamble] prepended, so the preamble
// length is subtracted first. Offsets that fall outside the original source
// after correction have no line number.
func lineFor(source string, offset int) (line int, ok bool) {
	offset -= len(syntax.Preamble)

	if offset < 0 || offset >= len(source) {
		return 0, false
	}

	return 1 + strings.Count(source[:offset], "\n"), true
}
