// Package report implements machine readable exports of a batch run's
// results, for wiring the harness into CI and other tooling.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"go.yaml.in/yaml/v4"
)

// Summary is the exportable result of a batch run.
//
// Fixtures is deliberately the last field, TOML requires scalar keys to be
// encoded before any array of tables.
type Summary struct {
	// Root is the fixture path the run was invoked on.
	Root string `json:"root" toml:"root" yaml:"root"`

	// Run is the number of fixtures that reached a final outcome.
	Run int `json:"run" toml:"run" yaml:"run"`

	// Passed is the number of fixtures that passed.
	Passed int `json:"passed" toml:"passed" yaml:"passed"`

	// Success reports whether every fixture that ran passed.
	Success bool `json:"success" toml:"success" yaml:"success"`

	// Fixtures holds the final outcome of every fixture, in visit order.
	Fixtures []Fixture `json:"fixtures" toml:"fixtures" yaml:"fixtures"`
}

// Fixture is the outcome of a single fixture in a [Summary].
type Fixture struct {
	// Name is the fixture's path relative to the run root.
	Name string `json:"name" toml:"name" yaml:"name"`

	// Outcome is the final outcome, one of "passed", "failed",
	// "parse failed" or "load failed".
	Outcome string `json:"outcome" toml:"outcome" yaml:"outcome"`
}

// Exporter is the interface implemented by the supported report formats.
type Exporter interface {
	// Export writes summary to w.
	Export(w io.Writer, summary Summary) error
}

// For returns the [Exporter] for the named format.
func For(format string) (Exporter, error) {
	switch format {
	case "json":
		return JSON{}, nil
	case "toml":
		return TOML{}, nil
	case "yaml":
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %q, options are json, toml or yaml", format)
	}
}

// JSON is an [Exporter] that exports a summary as pretty printed JSON.
type JSON struct{}

// Export implements [Exporter] for JSON.
func (j JSON) Export(w io.Writer, summary Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(summary); err != nil {
		return fmt.Errorf("could not encode summary to JSON: %w", err)
	}

	return nil
}

// TOML is an [Exporter] that exports a summary as TOML.
type TOML struct{}

// Export implements [Exporter] for TOML.
func (t TOML) Export(w io.Writer, summary Summary) error {
	if err := toml.NewEncoder(w).Encode(summary); err != nil {
		return fmt.Errorf("could not encode summary to TOML: %w", err)
	}

	return nil
}

// YAML is an [Exporter] that exports a summary as YAML.
type YAML struct{}

// Export implements [Exporter] for YAML.
func (y YAML) Export(w io.Writer, summary Summary) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(summary); err != nil {
		return fmt.Errorf("could not encode summary to YAML: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("could not encode summary to YAML: %w", err)
	}

	return nil
}
