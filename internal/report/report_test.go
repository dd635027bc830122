package report_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/BurntSushi/toml"
	"go.followtheprocess.codes/syntest/internal/report"
	"go.followtheprocess.codes/test"
	"go.yaml.in/yaml/v4"
)

// summary returns a representative run summary for export tests.
func summary() report.Summary {
	return report.Summary{
		Root:    "testdata",
		Run:     2,
		Passed:  1,
		Success: false,
		Fixtures: []report.Fixture{
			{Name: "good.ct", Outcome: "passed"},
			{Name: "bad.ct", Outcome: "failed"},
		},
	}
}

func TestFor(t *testing.T) {
	for _, format := range []string{"json", "toml", "yaml"} {
		_, err := report.For(format)
		test.Ok(t, err, test.Context("format %s should be supported", format))
	}

	_, err := report.For("xml")
	test.Err(t, err, test.Context("unsupported formats should error"))
}

func TestExportJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	test.Ok(t, report.JSON{}.Export(buf, summary()))

	want := `{
  "root": "testdata",
  "run": 2,
  "passed": 1,
  "success": false,
  "fixtures": [
    {
      "name": "good.ct",
      "outcome": "passed"
    },
    {
      "name": "bad.ct",
      "outcome": "failed"
    }
  ]
}
`

	test.Diff(t, buf.String(), want)
}

func TestExportTOML(t *testing.T) {
	buf := &bytes.Buffer{}
	test.Ok(t, report.TOML{}.Export(buf, summary()))

	var got report.Summary
	test.Ok(t, toml.Unmarshal(buf.Bytes(), &got))

	test.EqualFunc(t, got, summary(), deepEqual, test.Context("TOML round trip mismatch"))
}

func TestExportYAML(t *testing.T) {
	buf := &bytes.Buffer{}
	test.Ok(t, report.YAML{}.Export(buf, summary()))

	var got report.Summary
	test.Ok(t, yaml.Unmarshal(buf.Bytes(), &got))

	test.EqualFunc(t, got, summary(), deepEqual, test.Context("YAML round trip mismatch"))
}

// deepEqual compares two summaries, needed because Summary contains a slice
// and so isn't comparable.
func deepEqual(a, b report.Summary) bool {
	return reflect.DeepEqual(a, b)
}
