package harness_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.followtheprocess.codes/syntest/internal/harness"
	"go.followtheprocess.codes/syntest/internal/syntax"
	"go.followtheprocess.codes/test"
)

// script is an [harness.InputSource] that plays back a fixed list of
// actions, recording the update flag passed to each call.
type script struct {
	t       *testing.T
	actions []harness.Action
	updates []bool
}

func (s *script) Choose(name string, update bool) (harness.Action, error) {
	s.t.Helper()

	if len(s.actions) == 0 {
		s.t.Fatalf("unexpected Choose(%q, %v): script exhausted", name, update)
	}

	action := s.actions[0]
	s.actions = s.actions[1:]
	s.updates = append(s.updates, update)

	return action, nil
}

// editorFunc adapts a function to [harness.EditorLauncher].
type editorFunc func(path string) error

func (e editorFunc) Open(path string) error {
	return e(path)
}

// stubAnalyze fakes the analysis pipeline based on markers in the source:
// anything containing "bad" produces one diagnostic, anything containing
// "fatal" aborts, everything else is clean.
func stubAnalyze(source string) ([]syntax.Diagnostic, error) {
	if strings.Contains(source, "fatal") {
		diags := []syntax.Diagnostic{{Type: syntax.ParserError, Comment: "boom"}}
		return diags, errors.New("analysis aborted")
	}

	if strings.Contains(source, "bad") {
		return []syntax.Diagnostic{{Type: syntax.ParserError, Comment: "boom"}}, nil
	}

	return nil, nil
}

// driver returns a Driver wired up with the stub analysis pipeline and the
// given input and editor stubs.
func driver(stdout *bytes.Buffer, input harness.InputSource, editor harness.EditorLauncher) *harness.Driver {
	return &harness.Driver{
		Input:  input,
		Editor: editor,
		Stdout: stdout,
		Runner: harness.Runner{Analyze: stubAnalyze},
	}
}

func TestRunAllPass(t *testing.T) {
	root := t.TempDir()
	write(t, root, "good.ct", "contract good {}\n// ----\n")

	sub := filepath.Join(root, "sub")
	test.Ok(t, os.Mkdir(sub, 0o755))
	write(t, sub, "also.ct", "contract good {}\n// ----\n")

	stdout := &bytes.Buffer{}
	input := &script{t: t} // Choose should never be called

	stats, err := driver(stdout, input, nil).RunAll(root)
	test.Ok(t, err)

	test.Equal(t, stats.Run, 2)
	test.Equal(t, stats.Success, 2)
	test.True(t, stats.Ok(), test.Context("all fixtures passed"))

	test.True(t, strings.Contains(stdout.String(), "good.ct: OK"), test.Context("stdout was %q", stdout.String()))
}

func TestRunAllVisitOrder(t *testing.T) {
	// Directories are expanded breadth first, so the root level file runs
	// before anything inside the subdirectory even though "sub" sorts first
	root := t.TempDir()

	sub := filepath.Join(root, "sub")
	test.Ok(t, os.Mkdir(sub, 0o755))
	write(t, sub, "inner.ct", "contract good {}\n// ----\n")
	write(t, root, "z.ct", "contract good {}\n// ----\n")

	stdout := &bytes.Buffer{}
	d := driver(stdout, &script{t: t}, nil)

	_, err := d.RunAll(root)
	test.Ok(t, err)

	records := d.Records()
	test.Equal(t, len(records), 2)
	test.Equal(t, records[0].Name, "z.ct")
	test.Equal(t, records[1].Name, filepath.Join("sub", "inner.ct"))
}

func TestRunAllSkip(t *testing.T) {
	root := t.TempDir()
	write(t, root, "good.ct", "contract good {}\n// ----\n")
	write(t, root, "zbad.ct", "contract bad {}\n// ----\n")

	stdout := &bytes.Buffer{}
	input := &script{t: t, actions: []harness.Action{harness.ActionSkip}}

	d := driver(stdout, input, nil)

	stats, err := d.RunAll(root)
	test.Ok(t, err)

	test.Equal(t, stats.Run, 2)
	test.Equal(t, stats.Success, 1)
	test.Equal(t, stats.Ok(), false)

	// Skipped fixtures are recorded under their actual outcome
	records := d.Records()
	test.Equal(t, len(records), 2)
	test.Equal(t, records[1].Name, "zbad.ct")
	test.Equal(t, records[1].Outcome, harness.Failed)

	// A failure dumps the contract source and both diagnostic lists
	out := stdout.String()
	test.True(t, strings.Contains(out, "zbad.ct: FAIL"), test.Context("stdout was %q", out))
	test.True(t, strings.Contains(out, "  Contract:"), test.Context("stdout was %q", out))
	test.True(t, strings.Contains(out, "    contract bad {}"), test.Context("stdout was %q", out))
	test.True(t, strings.Contains(out, "  Expected result:"), test.Context("stdout was %q", out))
	test.True(t, strings.Contains(out, "    Success"), test.Context("stdout was %q", out))
	test.True(t, strings.Contains(out, "  Obtained result:"), test.Context("stdout was %q", out))
	test.True(t, strings.Contains(out, "    ParserError: boom"), test.Context("stdout was %q", out))

	// Updating is offered for ordinary failures
	test.Equal(t, len(input.updates), 1)
	test.Equal(t, input.updates[0], true)
}

func TestRunAllQuit(t *testing.T) {
	root := t.TempDir()
	write(t, root, "abad.ct", "contract bad {}\n// ----\n")
	write(t, root, "good.ct", "contract good {}\n// ----\n")

	stdout := &bytes.Buffer{}
	input := &script{t: t, actions: []harness.Action{harness.ActionQuit}}

	d := driver(stdout, input, nil)

	stats, err := d.RunAll(root)
	test.Ok(t, err, test.Context("quitting is a user decision, not an error"))

	test.Equal(t, stats.Run, 1)
	test.Equal(t, stats.Success, 0)

	// good.ct was never reached
	records := d.Records()
	test.Equal(t, len(records), 1)
	test.Equal(t, records[0].Name, "abad.ct")
	test.Equal(t, records[0].Outcome, harness.Failed)
}

func TestRunAllUpdate(t *testing.T) {
	root := t.TempDir()
	path := write(t, root, "bad.ct", "contract bad {}\n// ----\n")

	stdout := &bytes.Buffer{}
	input := &script{t: t, actions: []harness.Action{harness.ActionUpdate}}

	stats, err := driver(stdout, input, nil).RunAll(root)
	test.Ok(t, err)

	// The rerun after updating replaces the failed attempt
	test.Equal(t, stats.Run, 1)
	test.Equal(t, stats.Success, 1)

	contents, err := os.ReadFile(path)
	test.Ok(t, err)

	want := "contract bad {}\n// ----\n// ParserError: boom\n"
	test.Diff(t, string(contents), want)
}

func TestRunAllEdit(t *testing.T) {
	root := t.TempDir()
	path := write(t, root, "bad.ct", "contract bad {}\n// ----\n")

	var opened []string

	editor := editorFunc(func(p string) error {
		opened = append(opened, p)

		// Simulate the user fixing the contract source itself
		return os.WriteFile(p, []byte("contract good {}\n// ----\n"), 0o644)
	})

	stdout := &bytes.Buffer{}
	input := &script{t: t, actions: []harness.Action{harness.ActionEdit}}

	stats, err := driver(stdout, input, editor).RunAll(root)
	test.Ok(t, err)

	test.Equal(t, stats.Run, 1)
	test.Equal(t, stats.Success, 1)

	test.Equal(t, len(opened), 1)
	test.Equal(t, opened[0], path)

	test.True(t, strings.Contains(stdout.String(), "Re-running fixture..."), test.Context("stdout was %q", stdout.String()))
}

func TestRunAllFixtureVanishesDuringEdit(t *testing.T) {
	// A fixture deleted out from under the run (here by the edit session)
	// is an I/O failure for that fixture only, the rest of the batch
	// still runs
	root := t.TempDir()
	write(t, root, "bad.ct", "contract bad {}\n// ----\n")
	write(t, root, "zgood.ct", "contract good {}\n// ----\n")

	editor := editorFunc(func(p string) error {
		return os.Remove(p)
	})

	stdout := &bytes.Buffer{}
	input := &script{t: t, actions: []harness.Action{harness.ActionEdit}}

	d := driver(stdout, input, editor)

	stats, err := d.RunAll(root)
	test.Ok(t, err, test.Context("a vanished fixture should not abort the batch"))

	test.Equal(t, stats.Run, 2)
	test.Equal(t, stats.Success, 1)

	records := d.Records()
	test.Equal(t, len(records), 2)
	test.Equal(t, records[0].Name, "bad.ct")
	test.Equal(t, records[0].Outcome, harness.LoadFailed)
	test.Equal(t, records[1].Name, "zgood.ct")
	test.Equal(t, records[1].Outcome, harness.Passed)
}

func TestRunAllMissingRoot(t *testing.T) {
	stdout := &bytes.Buffer{}
	d := driver(stdout, &script{t: t}, nil)

	_, err := d.RunAll(filepath.Join(t.TempDir(), "nope"))
	test.Err(t, err, test.Context("a missing root is still fatal"))
}

func TestRunAllParseFailed(t *testing.T) {
	root := t.TempDir()
	write(t, root, "fatal.ct", "contract fatal {\n// ----\n")

	stdout := &bytes.Buffer{}
	input := &script{t: t, actions: []harness.Action{harness.ActionSkip}}

	d := driver(stdout, input, nil)

	stats, err := d.RunAll(root)
	test.Ok(t, err)

	test.Equal(t, stats.Run, 1)
	test.Equal(t, stats.Success, 0)

	records := d.Records()
	test.Equal(t, records[0].Outcome, harness.ParseFailed)

	// Updating expectations is not offered for broken source
	test.Equal(t, len(input.updates), 1)
	test.Equal(t, input.updates[0], false)

	out := stdout.String()
	test.True(t, strings.Contains(out, "Parsing failed:"), test.Context("stdout was %q", out))
	test.True(t, strings.Contains(out, "ParserError: boom"), test.Context("stdout was %q", out))
}

func TestRunAllSingleFile(t *testing.T) {
	root := t.TempDir()
	path := write(t, root, "solo.ct", "contract good {}\n// ----\n")

	stdout := &bytes.Buffer{}
	d := driver(stdout, &script{t: t}, nil)

	stats, err := d.RunAll(path)
	test.Ok(t, err)

	test.Equal(t, stats.Run, 1)
	test.Equal(t, stats.Success, 1)

	// When the root is itself a file, the record carries the full path
	records := d.Records()
	test.Equal(t, records[0].Name, path)
}
