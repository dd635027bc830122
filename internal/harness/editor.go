package harness

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// EditorLauncher opens a fixture file for interactive editing, blocking
// until the edit session ends.
type EditorLauncher interface {
	// Open launches an editor on the file at path and waits for it
	// to close.
	Open(path string) error
}

// ExecEditor is an [EditorLauncher] that shells out to an external editor
// command, typically resolved from $EDITOR.
type ExecEditor struct {
	// Stdin is connected to the editor process.
	Stdin io.Reader

	// Stdout is connected to the editor process.
	Stdout io.Writer

	// Stderr is connected to the editor process.
	Stderr io.Writer

	// Command is the editor command line, split on whitespace so values
	// like "code --wait" work.
	Command string
}

// Open implements [EditorLauncher] by running the configured command with
// path appended as the final argument.
func (e ExecEditor) Open(path string) error {
	argv := strings.Fields(e.Command)
	if len(argv) == 0 {
		return errors.New("no editor configured, set $EDITOR or pass --editor")
	}

	argv = append(argv, path)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s: %w", argv[0], err)
	}

	return nil
}
