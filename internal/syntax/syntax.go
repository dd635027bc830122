// Package syntax implements the analysis front-end for the contract language
// and defines the diagnostic contract consumed by the test harness.
//
// The harness itself never inspects source structure, it only consumes the
// ordered list of diagnostics produced by [Analyze].
package syntax

import (
	"fmt"
)

// Preamble is the version pragma prepended to every fixture source before
// analysis. Fixtures never declare their own pragma, so the pipeline injects
// one; every diagnostic offset is therefore shifted forward by len(Preamble)
// and consumers reporting line numbers must subtract it.
const Preamble = "pragma contract >=0.0;\n"

// Type classifies a diagnostic.
type Type int

const (
	// ParserError is a syntax error raised during scanning or parsing.
	ParserError Type = iota

	// DeclarationError is a semantic error about a declaration, such as a
	// duplicate identifier.
	DeclarationError

	// TypeError is a semantic error about a type mismatch.
	TypeError

	// Warning is a non-fatal semantic diagnostic.
	Warning
)

// String returns the name of the diagnostic type as it appears in
// fixture expectation lines.
func (t Type) String() string {
	switch t {
	case ParserError:
		return "ParserError"
	case DeclarationError:
		return "DeclarationError"
	case TypeError:
		return "TypeError"
	case Warning:
		return "Warning"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// MarshalText implements [encoding.TextMarshaler] for [Type].
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Diagnostic is a single analysis diagnostic.
//
// Start and End are byte offsets into the analysed text, which includes
// the injected [Preamble].
type Diagnostic struct {
	Comment string // Human readable message, may be empty
	Type    Type   // What kind of diagnostic this is
	Start   int    // Byte offset of the start of the offending source
	End     int    // Byte offset of the end of the offending source
}

// String implements [fmt.Stringer] for a [Diagnostic].
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s (%d-%d): %s", d.Type, d.Start, d.End, d.Comment)
}

// ErrorHandler is called with each diagnostic produced during analysis, in
// the order the pipeline produces them.
type ErrorHandler func(d Diagnostic)
