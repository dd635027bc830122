package harness

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
)

// Action is a triage decision for a failing fixture.
type Action int

const (
	// ActionSkip records the failure and moves on to the next fixture.
	ActionSkip Action = iota

	// ActionEdit opens the fixture in an editor, then reruns it.
	ActionEdit

	// ActionUpdate rewrites the fixture's expectations from the observed
	// diagnostics, then reruns it.
	ActionUpdate

	// ActionQuit aborts the batch run, keeping the statistics gathered
	// so far.
	ActionQuit
)

// String returns a human readable name for the [Action].
func (a Action) String() string {
	switch a {
	case ActionSkip:
		return "skip"
	case ActionEdit:
		return "edit"
	case ActionUpdate:
		return "update"
	case ActionQuit:
		return "quit"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// InputSource yields triage decisions for failing fixtures.
//
// The interactive driver consumes one [Action] per failure, it neither knows
// nor cares whether that decision came from a terminal prompt or a script.
type InputSource interface {
	// Choose returns the action to take for the named failing fixture.
	//
	// update reports whether updating the fixture's expectations is a
	// valid choice for this failure. Implementations must not return
	// [ActionUpdate] when update is false.
	Choose(name string, update bool) (Action, error)
}

// TerminalInput is an [InputSource] that prompts the user on the terminal.
type TerminalInput struct {
	// Stdin is where the prompt reads user input from, nil falls back to
	// the process stdin.
	Stdin io.Reader

	// Stdout is where the prompt is drawn, nil falls back to the
	// process stdout.
	Stdout io.Writer
}

// Choose implements [InputSource] by presenting an interactive prompt.
//
// Aborting the prompt (e.g. ctrl+c) is treated as choosing to quit.
func (t TerminalInput) Choose(name string, update bool) (Action, error) {
	options := []huh.Option[Action]{
		huh.NewOption("Next fixture", ActionSkip),
		huh.NewOption("Edit the fixture", ActionEdit),
	}

	if update {
		options = append(options, huh.NewOption("Update expectations and re-run", ActionUpdate))
	}

	options = append(options, huh.NewOption("Quit", ActionQuit))

	action := ActionSkip

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Action]().
				Title(fmt.Sprintf("%s failed, what now?", name)).
				Options(options...).
				Value(&action),
		),
	)

	if t.Stdin != nil {
		form = form.WithInput(t.Stdin)
	}

	if t.Stdout != nil {
		form = form.WithOutput(t.Stdout)
	}

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ActionQuit, nil
		}

		return ActionQuit, fmt.Errorf("reading user input: %w", err)
	}

	return action, nil
}
