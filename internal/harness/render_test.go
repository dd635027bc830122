package harness_test

import (
	"strings"
	"testing"

	"go.followtheprocess.codes/syntest/internal/fixture"
	"go.followtheprocess.codes/syntest/internal/harness"
	"go.followtheprocess.codes/syntest/internal/syntax"
	"go.followtheprocess.codes/test"
)

func TestRenderExpectations(t *testing.T) {
	tests := []struct {
		name         string                // Name of the test case
		want         string                // Expected rendered output
		prefix       string                // Line prefix
		expectations []fixture.Expectation // Expectations to render
	}{
		{
			name:   "empty is success",
			prefix: "  ",
			want:   "  Success\n",
		},
		{
			name:   "lines in order",
			prefix: "// ",
			expectations: []fixture.Expectation{
				{Type: "TypeError", Message: "bad type"},
				{Type: "Warning", Message: "heads up"},
			},
			want: "// TypeError: bad type\n// Warning: heads up\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &strings.Builder{}
			harness.RenderExpectations(buf, tt.expectations, tt.prefix, false)

			test.Diff(t, buf.String(), tt.want)
		})
	}
}

func TestRenderDiagnostics(t *testing.T) {
	// Two lines of fixture source, analysis sees it with the preamble
	// prepended so diagnostic offsets are shifted by len(syntax.Preamble)
	source := "contract C {\nuint x = 1;\n}\n"

	tests := []struct {
		name        string                // Name of the test case
		want        string                // Expected rendered output
		opts        harness.RenderOptions // Rendering options
		diagnostics []syntax.Diagnostic   // Diagnostics to render
	}{
		{
			name: "empty is success",
			opts: harness.RenderOptions{Prefix: "  "},
			want: "  Success\n",
		},
		{
			name: "plain lines",
			opts: harness.RenderOptions{Prefix: "// "},
			diagnostics: []syntax.Diagnostic{
				{Type: syntax.TypeError, Comment: "bad type"},
				{Type: syntax.Warning, Comment: "heads up"},
			},
			want: "// TypeError: bad type\n// Warning: heads up\n",
		},
		{
			name: "empty comment renders NONE",
			opts: harness.RenderOptions{},
			diagnostics: []syntax.Diagnostic{
				{Type: syntax.ParserError},
			},
			want: "ParserError: NONE\n",
		},
		{
			name: "line numbers corrected for preamble",
			opts: harness.RenderOptions{
				Prefix:      "    ",
				Source:      source,
				LineNumbers: true,
			},
			diagnostics: []syntax.Diagnostic{
				// Offset 23 is the first byte of the real source, offset
				// 36 is on its second line
				{Type: syntax.ParserError, Start: len(syntax.Preamble), Comment: "first line"},
				{Type: syntax.Warning, Start: len(syntax.Preamble) + 13, Comment: "second line"},
			},
			want: "    (1): ParserError: first line\n    (2): Warning: second line\n",
		},
		{
			name: "out of range offsets have no line number",
			opts: harness.RenderOptions{
				Source:      source,
				LineNumbers: true,
			},
			diagnostics: []syntax.Diagnostic{
				// Inside the preamble itself
				{Type: syntax.ParserError, Start: 5, Comment: "too early"},
				// Past the end of the source
				{Type: syntax.ParserError, Start: len(syntax.Preamble) + len(source), Comment: "too late"},
			},
			want: "ParserError: too early\nParserError: too late\n",
		},
		{
			name: "warnings filtered from rendering",
			opts: harness.RenderOptions{IgnoreWarnings: true},
			diagnostics: []syntax.Diagnostic{
				{Type: syntax.Warning, Comment: "heads up"},
				{Type: syntax.TypeError, Comment: "bad type"},
			},
			want: "TypeError: bad type\n",
		},
		{
			name: "all warnings filtered renders success",
			opts: harness.RenderOptions{Prefix: "  ", IgnoreWarnings: true},
			diagnostics: []syntax.Diagnostic{
				{Type: syntax.Warning, Comment: "heads up"},
			},
			want: "  Success\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &strings.Builder{}
			harness.RenderDiagnostics(buf, tt.diagnostics, tt.opts)

			test.Diff(t, buf.String(), tt.want)
		})
	}
}
