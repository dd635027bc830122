// Package fixture implements the on-disk contract fixture protocol.
//
// A fixture file is contract source followed by a sentinel line and zero or
// more expectation lines:
//
//	contract C { uint x = 1; }
//	// ----
//	// TypeError: some message
//
// Everything before the first line starting with "// ----" is source,
// verbatim. Every non-blank line after it is one expectation, with leading
// slashes and whitespace stripped and the first ':' splitting the diagnostic
// type from its message. An absent sentinel means the whole file is source
// and the fixture expects a clean compile.
package fixture

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// Sentinel is the delimiter between fixture source and the expectation
// block, matched as a line-start prefix.
const Sentinel = "// ----"

// Expectation is a single expected diagnostic parsed from a fixture's
// expectation block.
type Expectation struct {
	Type    string // The expected diagnostic type name e.g. "TypeError"
	Message string // The expected message, "" if the line had no ':'
}

// String implements [fmt.Stringer] for an [Expectation], matching the
// on-disk expectation line format minus the comment prefix.
func (e Expectation) String() string {
	return e.Type + ": " + e.Message
}

// Fixture is a single parsed fixture file.
//
// A fresh Fixture is constructed per run, nothing is cached across runs.
type Fixture struct {
	Name         string        // Stable test name, the path the fixture was loaded from
	Source       string        // The embedded contract source, never contains the sentinel
	Expectations []Expectation // Expected diagnostics, in order
}

// Load reads and parses the fixture file at path.
func Load(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read fixture: %w", err)
	}
	defer file.Close()

	source, expectations, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read fixture %s: %w", path, err)
	}

	return &Fixture{
		Name:         path,
		Source:       source,
		Expectations: expectations,
	}, nil
}

// Parse splits a fixture stream into source text and its expectation list.
func Parse(r io.Reader) (source string, expectations []Expectation, err error) {
	scanner := bufio.NewScanner(r)

	var src strings.Builder

	inExpectations := false

	for scanner.Scan() {
		line := scanner.Text()

		if !inExpectations {
			if strings.HasPrefix(line, Sentinel) {
				inExpectations = true
				continue
			}

			src.WriteString(line)
			src.WriteByte('\n')

			continue
		}

		// An expectation line: strip the comment slashes, then any
		// leading whitespace
		rest := strings.TrimLeft(line, "/")
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)

		if rest == "" {
			// Blank separator line, not an expectation and not a terminator
			continue
		}

		kind, message, found := strings.Cut(rest, ":")
		if !found {
			expectations = append(expectations, Expectation{Type: rest})
			continue
		}

		expectations = append(expectations, Expectation{
			Type:    kind,
			Message: strings.TrimLeftFunc(message, unicode.IsSpace),
		})
	}

	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("reading fixture stream: %w", err)
	}

	return src.String(), expectations, nil
}

// Write writes a fixture file to w: the source verbatim, the sentinel line,
// then one comment line per rendered expectation.
//
// It is the inverse of [Parse] and is used to regenerate a fixture's golden
// expectation block from observed diagnostics. The expectations argument is
// pre-rendered text, one line per expectation including the "// " prefix,
// empty when the fixture should expect a clean compile.
func Write(w io.Writer, source, expectations string) error {
	if _, err := io.WriteString(w, source); err != nil {
		return fmt.Errorf("writing fixture source: %w", err)
	}

	if _, err := io.WriteString(w, Sentinel+"\n"); err != nil {
		return fmt.Errorf("writing fixture sentinel: %w", err)
	}

	if expectations != "" {
		if _, err := io.WriteString(w, expectations); err != nil {
			return fmt.Errorf("writing fixture expectations: %w", err)
		}
	}

	return nil
}
